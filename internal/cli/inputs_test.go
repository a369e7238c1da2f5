package cli

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ibcompose/internal/classfile/classfiletest"
	"github.com/toyz/ibcompose/internal/errors"
)

type zipEntry struct {
	name string
	data []byte
}

func writeJar(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func inputNames(set *InputSet) []string {
	names := make([]string, len(set.Inputs))
	for i, in := range set.Inputs {
		names[i] = in.Name
	}
	return names
}

func TestInputCollector_Directory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, uikitClasses())
	writeTree(t, dir, map[string][]byte{
		"README.md":                   []byte("ignored"),
		".git/objects/x.class":        []byte("ignored"),
		"com/acme/strings.properties": []byte("ignored"),
	})

	set, err := NewInputCollector().Collect([]string{dir})
	require.NoError(t, err)
	defer set.Close()

	expected := []string{
		filepath.Join(dir, "apple", "uikit", "UIButton.class"),
		filepath.Join(dir, "apple", "uikit", "UILabel.class"),
		filepath.Join(dir, "apple", "uikit", "UIViewController.class"),
		filepath.Join(dir, "com", "acme", "MainController.class"),
	}
	assert.Equal(t, expected, inputNames(set))
	assert.Equal(t, expected, set.Sources)
}

func TestInputCollector_ClassFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.class")
	data := classfiletest.Class("com/acme/Main").Bytes()
	require.NoError(t, os.WriteFile(path, data, 0o644))

	set, err := NewInputCollector().Collect([]string{path})
	require.NoError(t, err)
	defer set.Close()

	require.Len(t, set.Inputs, 1)
	rc, err := set.Inputs[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestInputCollector_Jar(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "bindings.jar")
	main := classfiletest.Class("com/acme/Main").Bytes()
	writeJar(t, jar, []zipEntry{
		{"META-INF/MANIFEST.MF", []byte("Manifest-Version: 1.0\n")},
		{"META-INF/versions/9/com/acme/Main.class", main},
		{"com/acme/", nil},
		{"com/acme/Main.class", main},
		{"com/acme/logo.png", []byte{0x89}},
		{"com/acme/Other.class", classfiletest.Class("com/acme/Other").Bytes()},
	})

	set, err := NewInputCollector().Collect([]string{jar})
	require.NoError(t, err)
	defer set.Close()

	assert.Equal(t, []string{
		jar + "!com/acme/Main.class",
		jar + "!com/acme/Other.class",
	}, inputNames(set))
	assert.Equal(t, []string{jar}, set.Sources)

	rc, err := set.Inputs[0].Open()
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, main, got)
}

func TestInputCollector_PreservesArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{
		"b/B.class": classfiletest.Class("B").Bytes(),
		"a/A.class": classfiletest.Class("A").Bytes(),
	})

	set, err := NewInputCollector().Collect([]string{
		filepath.Join(dir, "b"),
		filepath.Join(dir, "a"),
	})
	require.NoError(t, err)
	defer set.Close()

	assert.Equal(t, []string{
		filepath.Join(dir, "b", "B.class"),
		filepath.Join(dir, "a", "A.class"),
	}, inputNames(set))
}

func TestInputCollector_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	brokenJar := filepath.Join(dir, "broken.jar")
	require.NoError(t, os.WriteFile(brokenJar, []byte("not a zip"), 0o644))

	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{"missing path", filepath.Join(dir, "nope"), errors.FileSystemErrorCode},
		{"unsupported file", txt, errors.ConfigurationErrorCode},
		{"broken archive", brokenJar, errors.FileSystemErrorCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewInputCollector().Collect([]string{tt.path})
			require.Error(t, err)
			assert.Nil(t, set)

			ibErr, ok := err.(errors.IBError)
			require.True(t, ok)
			assert.Equal(t, tt.code, ibErr.ErrorCode())
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}
