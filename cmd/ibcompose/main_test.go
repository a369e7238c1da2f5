package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/toyz/ibcompose/internal/classfile/classfiletest"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{out: &out, errOut: &errOut}
	root := newRootCmd(a)
	root.SetArgs(args)
	err := a.execute(root)
	return out.String(), errOut.String(), err
}

// classesDir writes a bound view controller and one generated controller
func classesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string][]byte{
		"apple/uikit/UIViewController.class": classfiletest.Class("apple/uikit/UIViewController").
			Annotate(classfiletest.Binding(""), classfiletest.Library("UIKit")).
			Bytes(),
		"apple/uikit/UIButton.class": classfiletest.Class("apple/uikit/UIButton").
			Annotate(classfiletest.Binding(""), classfiletest.Library("UIKit")).
			Bytes(),
		"com/acme/MainController.class": classfiletest.Class("com/acme/MainController").
			Super("apple/uikit/UIViewController").
			Annotate(classfiletest.ClassName("MainController")).
			Method(classfiletest.Action("tap", "(Lapple/uikit/UIButton;)V", "tap:")).
			Bytes(),
	}
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	return dir
}

func TestHelp(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Interface Builder")
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "inspect")
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "--config")
}

func TestGenerate(t *testing.T) {
	classes := classesDir(t)
	output := filepath.Join(t.TempDir(), "Generated", "IBBindings.m")

	out, _, err := execute(t, "generate", classes, "-o", output, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "Generation Completed Successfully!")
	assert.Contains(t, out, "Generated 1 interfaces with 1 members")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@interface MainController : UIViewController\n- (IBAction)tap:(UIButton)sender;\n@end")
	assert.FileExists(t, output+".sum")

	out, _, err = execute(t, "generate", classes, "-o", output, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "is up to date")
}

func TestGenerate_NoCache(t *testing.T) {
	classes := classesDir(t)
	output := filepath.Join(t.TempDir(), "IBBindings.m")

	_, _, err := execute(t, "generate", classes, "-o", output, "-q", "--no-cache")
	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.NoFileExists(t, output+".sum")
}

func TestGenerate_Flags(t *testing.T) {
	classes := classesDir(t)
	output := filepath.Join(t.TempDir(), "IBBindings.m")

	_, _, err := execute(t, "generate", classes, "-o", output, "-q",
		"--exclude-library", "UIKit",
		"--additional-code", `#import "Extras.h"`,
		"--include", "Detail.*",
		"--selector-rule", "explicit",
		"-j", "1",
	)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "@import UIKit;")
	assert.NotContains(t, text, "@interface")
	assert.Contains(t, text, "#import \"Extras.h\"\n")
}

func TestGenerate_IncludeWithComma(t *testing.T) {
	classes := classesDir(t)
	output := filepath.Join(t.TempDir(), "IBBindings.m")

	_, _, err := execute(t, "generate", classes, "-o", output, "-q", "--include", `com\.acme\.M.{1,40}`)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@interface MainController")
}

func TestGenerate_IncludeFromEnv(t *testing.T) {
	t.Setenv("IBCOMPOSE_INCLUDES", "com\\.acme\\.M.{1,40}\nDetail.*")
	classes := classesDir(t)
	output := filepath.Join(t.TempDir(), "IBBindings.m")

	_, _, err := execute(t, "generate", classes, "-o", output, "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@interface MainController")
}

func TestGenerate_LogLevel(t *testing.T) {
	classes := classesDir(t)
	output := filepath.Join(t.TempDir(), "IBBindings.m")

	out, _, err := execute(t, "generate", classes, "-o", output, "--log-level", "silent")
	require.NoError(t, err)
	assert.NotContains(t, out, "IB Interface Composer")
	assert.Contains(t, out, "Generation Completed Successfully!")

	_, errOut, err := execute(t, "generate", classes, "-o", output, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, errOut, `unknown diagnostic level "loud"`)
}

func TestGenerate_ConfigFile(t *testing.T) {
	classes := classesDir(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "IBBindings.m")
	config := filepath.Join(dir, "ibcompose.yaml")
	require.NoError(t, os.WriteFile(config, []byte("inputs:\n  - "+classes+"\noutput: "+output+"\ncache: false\n"), 0o644))

	_, _, err := execute(t, "generate", "--config", config, "-q")
	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.NoFileExists(t, output+".sum")
}

func TestGenerate_MissingOutput(t *testing.T) {
	_, errOut, err := execute(t, "generate", classesDir(t), "-q")
	require.Error(t, err)
	assert.Contains(t, errOut, "Configuration Error")
	assert.Contains(t, errOut, "output")
	assert.NotContains(t, errOut, "Error: ", "reported errors are not printed twice")
}

func TestGenerate_MalformedInput(t *testing.T) {
	classes := classesDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(classes, "Junk.class"), []byte("junk"), 0o644))
	output := filepath.Join(t.TempDir(), "IBBindings.m")

	_, errOut, err := execute(t, "generate", classes, "-o", output, "-q")
	require.Error(t, err)
	assert.Contains(t, errOut, "Malformed Class File")
	assert.Contains(t, errOut, "Junk.class")
	assert.NoFileExists(t, output)
}

func TestInspect(t *testing.T) {
	out, _, err := execute(t, "inspect", classesDir(t))
	require.NoError(t, err)

	var records []struct {
		Name            string `yaml:"name"`
		NativeClassName string `yaml:"native_class_name"`
		Methods         []struct {
			Selector string `yaml:"selector"`
			Action   bool   `yaml:"action"`
		} `yaml:"methods"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)

	ctrl := records[2]
	assert.Equal(t, "com/acme/MainController", ctrl.Name)
	assert.Equal(t, "MainController", ctrl.NativeClassName)
	require.Len(t, ctrl.Methods, 1)
	assert.Equal(t, "tap:", ctrl.Methods[0].Selector)
	assert.True(t, ctrl.Methods[0].Action)
}

func TestInspect_NoInputs(t *testing.T) {
	_, errOut, err := execute(t, "inspect")
	require.Error(t, err)
	assert.Contains(t, errOut, "inputs")
}

func TestClean(t *testing.T) {
	classes := classesDir(t)
	output := filepath.Join(t.TempDir(), "IBBindings.m")

	_, _, err := execute(t, "generate", classes, "-o", output, "-q")
	require.NoError(t, err)
	require.FileExists(t, output)

	out, _, err := execute(t, "clean", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "removed "+output)
	assert.NoFileExists(t, output)
	assert.NoFileExists(t, output+".sum")

	out, _, err = execute(t, "clean", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to clean")
}

func TestUnknownCommand(t *testing.T) {
	_, errOut, err := execute(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: unknown command")
}
