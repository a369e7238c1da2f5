package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/ibcompose/internal/classfile/classfiletest"
	"github.com/toyz/ibcompose/internal/utils"
)

// uikitClasses is a minimal bound platform plus one generated controller
func uikitClasses() map[string][]byte {
	bound := func(name string) []byte {
		return classfiletest.Class(name).
			Annotate(classfiletest.Binding(""), classfiletest.Library("UIKit")).
			Bytes()
	}
	return map[string][]byte{
		"apple/uikit/UIViewController.class": bound("apple/uikit/UIViewController"),
		"apple/uikit/UILabel.class":          bound("apple/uikit/UILabel"),
		"apple/uikit/UIButton.class":         bound("apple/uikit/UIButton"),
		"com/acme/MainController.class": classfiletest.Class("com/acme/MainController").
			Super("apple/uikit/UIViewController").
			Annotate(classfiletest.ClassName("MainController")).
			Method(classfiletest.Outlet("titleLabel", "()Lapple/uikit/UILabel;", "titleLabel")).
			Method(classfiletest.Action("tap", "(Lapple/uikit/UIButton;)V", "tap:")).
			Bytes(),
	}
}

const expectedHeader = `/** THIS FILE IS GENERATED AND MAY BE OVERWRITTEN! DO NOT EDIT. **/

@class MainController;

#if TARGET_INTERFACE_BUILDER

@import UIKit;

@interface MainController : UIViewController
- (IBAction)tap:(UIButton)sender;
@property (strong) IBOutlet UILabel titleLabel;
@end

#endif
`

// writeTree writes files relative to dir, creating parent directories
func writeTree(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
}

func quietGenerator() *Generator {
	diagnostics := utils.NewQuietDiagnostics()
	diagnostics.SetOutput(io.Discard, io.Discard)
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(io.Discard, io.Discard)
	return NewGenerator(diagnostics, reporter)
}
