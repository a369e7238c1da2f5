package scanner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ibcompose/internal/annotations"
	"github.com/toyz/ibcompose/internal/classfile/classfiletest"
	"github.com/toyz/ibcompose/internal/errors"
)

func controllerClass() []byte {
	return classfiletest.Class("com/acme/MainController").
		Super("apple/uikit/UIViewController").
		Implements("apple/uikit/protocol/UITableViewDelegate").
		Annotate(classfiletest.ClassName("MainController"), classfiletest.Library("AcmeKit")).
		Method(classfiletest.Outlet("titleLabel", "()Lapple/uikit/UILabel;", "titleLabel")).
		Method(classfiletest.Action("tap", "(Lapple/uikit/UIButton;)V", "tap:")).
		Method(classfiletest.MethodSpec{Access: 0x0001, Name: "helper", Descriptor: "()V"}).
		Method(classfiletest.MethodSpec{
			Access:      0x0009,
			Name:        "reset",
			Descriptor:  "()V",
			Annotations: []classfiletest.Ann{classfiletest.IBAction()},
		}).
		Bytes()
}

func TestScanner_Scan(t *testing.T) {
	rec, err := New().Scan(bytes.NewReader(controllerClass()))
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "com/acme/MainController", rec.Name)
	assert.Equal(t, "apple/uikit/UIViewController", rec.SuperName)
	assert.Equal(t, []string{"apple/uikit/protocol/UITableViewDelegate"}, rec.SuperInterfaces)
	assert.Equal(t, "MainController", rec.NativeClassName)
	assert.Equal(t, "AcmeKit", rec.Library)
	assert.Empty(t, rec.NativeClassBinding)

	require.Len(t, rec.Methods, 3, "helper has no binding role and is dropped")

	outlet := rec.Methods[0]
	assert.Equal(t, "titleLabel", outlet.Selector)
	assert.True(t, outlet.IsProperty)
	assert.True(t, outlet.IsOutlet)
	assert.False(t, outlet.IsAction)
	assert.Equal(t, "apple/uikit/UILabel", outlet.Type.Return.InternalName)

	action := rec.Methods[1]
	assert.Equal(t, "tap:", action.Selector)
	assert.True(t, action.IsAction)
	assert.Equal(t, 1, action.Type.NumArgs())

	reset := rec.Methods[2]
	assert.Equal(t, "reset", reset.Selector, "selector derived from the method name")
	assert.True(t, reset.IsStatic)
}

func TestScanner_ExplicitSelectorRule(t *testing.T) {
	s := New(WithExtractor(annotations.NewExtractor(nil, annotations.ExplicitSelectors)))
	rec, err := s.ScanBytes(controllerClass())
	require.NoError(t, err)

	var selectors []string
	for _, m := range rec.Methods {
		selectors = append(selectors, m.Selector)
	}
	assert.Equal(t, []string{"titleLabel", "tap:"}, selectors)
}

func TestScanner_NonNativeClassSkipsMethods(t *testing.T) {
	data := classfiletest.Class("com/acme/Plain").
		Method(classfiletest.Action("tap", "(Lapple/uikit/UIButton;)V", "tap:")).
		// an invalid descriptor is never looked at on a non-native class
		Method(classfiletest.MethodSpec{Name: "broken", Descriptor: "(X)V"}).
		Bytes()

	rec, err := New().ScanBytes(data)
	require.NoError(t, err)
	assert.Empty(t, rec.Methods)
}

func TestScanner_BindingClassKeepsMethods(t *testing.T) {
	data := classfiletest.Class("apple/uikit/UIButton").
		Super("apple/uikit/UIControl").
		Annotate(classfiletest.Binding(""), classfiletest.Library("UIKit")).
		Method(classfiletest.Action("sendAction", "()V", "sendAction")).
		Bytes()

	rec, err := New().ScanBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "UIButton", rec.NativeClassBinding)
	assert.Len(t, rec.Methods, 1)
}

func TestScanner_ProtocolRecord(t *testing.T) {
	data := classfiletest.Class("apple/uikit/protocol/UITableViewDelegate").
		Access(0x0601).
		Annotate(classfiletest.ProtocolName("UITableViewDelegate"), classfiletest.Library("UIKit")).
		Bytes()

	rec, err := New().ScanBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "UITableViewDelegate", rec.NativeProtocolName)
	assert.Equal(t, "UIKit", rec.Library)
	assert.Empty(t, rec.Methods)
}

func TestScanner_ModuleInfo(t *testing.T) {
	data := classfiletest.Class("module-info").Super("").Access(0x8000).Bytes()
	rec, err := New().ScanBytes(data)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestScanner_MalformedDescriptorOnNativeClass(t *testing.T) {
	data := classfiletest.Class("com/acme/Bad").
		Annotate(classfiletest.ClassName("Bad")).
		Method(classfiletest.MethodSpec{Name: "broken", Descriptor: "(X)V"}).
		Bytes()

	_, err := New().ScanInput(BytesInput("Bad.class", data))
	require.Error(t, err)

	var malformed *errors.MalformedClassError
	require.True(t, stderrors.As(err, &malformed))
	assert.Equal(t, "Bad.class", malformed.Location().Input)
}

func TestScanner_ScanAll_PreservesOrder(t *testing.T) {
	var inputs []Input
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("com/acme/C%02d", i)
		inputs = append(inputs, BytesInput(name+".class", classfiletest.Class(name).Bytes()))
	}
	inputs = append(inputs, BytesInput("module-info.class", classfiletest.Class("module-info").Super("").Access(0x8000).Bytes()))

	records, err := New(WithJobs(4)).ScanAll(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, records, 50)
	for i, rec := range records {
		assert.Equal(t, fmt.Sprintf("com/acme/C%02d", i), rec.Name)
	}
}

func TestScanner_ScanAll_MalformedAborts(t *testing.T) {
	inputs := []Input{
		BytesInput("ok.class", classfiletest.Class("com/acme/Ok").Bytes()),
		BytesInput("junk.class", []byte("not a class file")),
	}

	records, err := New().ScanAll(context.Background(), inputs)
	require.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "junk.class")
}

func TestScanner_ScanAll_OpenFailure(t *testing.T) {
	inputs := []Input{{
		Name: "missing.class",
		Open: func() (io.ReadCloser, error) { return nil, io.ErrUnexpectedEOF },
	}}

	_, err := New().ScanAll(context.Background(), inputs)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "missing.class")
}
