package models

import (
	"sort"
	"strings"

	"github.com/toyz/ibcompose/internal/descriptor"
)

// ClassRecord is the raw binding metadata scanned from one class file.
// Optional string fields are empty when absent.
type ClassRecord struct {
	Name            string   `yaml:"name"`
	SuperName       string   `yaml:"super_name,omitempty"`
	SuperInterfaces []string `yaml:"super_interfaces,omitempty"`

	NativeClassName          string `yaml:"native_class_name,omitempty"`
	NativeClassBinding       string `yaml:"native_class_binding,omitempty"`
	NativeProtocolName       string `yaml:"native_protocol_name,omitempty"`
	NativeProtocolSourceName string `yaml:"native_protocol_source_name,omitempty"`
	Library                  string `yaml:"library,omitempty"`

	// Methods is only populated for classes with a native class name or binding
	Methods []MethodRecord `yaml:"methods,omitempty"`
}

// HasNativeClassName reports whether the class should get a generated interface
func (c *ClassRecord) HasNativeClassName() bool {
	return c.NativeClassName != ""
}

// HasNativeClassBinding reports whether the class is bound to an existing native type
func (c *ClassRecord) HasNativeClassBinding() bool {
	return c.NativeClassBinding != ""
}

// HasSuper reports whether the class names a super class
func (c *ClassRecord) HasSuper() bool {
	return c.SuperName != ""
}

// IsProtocol reports whether the class declares native protocol metadata
func (c *ClassRecord) IsProtocol() bool {
	return c.NativeProtocolName != ""
}

// ProtocolName returns the protocol name to use in conformance lists
func (c *ClassRecord) ProtocolName() string {
	if c.NativeProtocolSourceName != "" {
		return c.NativeProtocolSourceName
	}
	return c.NativeProtocolName
}

// HasLibrary reports whether the class declares a native library
func (c *ClassRecord) HasLibrary() bool {
	return c.Library != ""
}

// PrettyName returns the dotted class name used in diagnostics
func (c *ClassRecord) PrettyName() string {
	return PrettyName(c.Name)
}

// SortedMethods returns a copy of the methods ordered by selector, keeping
// declaration order for ties
func (c *ClassRecord) SortedMethods() []MethodRecord {
	methods := make([]MethodRecord, len(c.Methods))
	copy(methods, c.Methods)
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].Selector < methods[j].Selector
	})
	return methods
}

// MethodRecord is one method with a binding role
type MethodRecord struct {
	Name       string            `yaml:"name"`
	Descriptor string            `yaml:"descriptor"`
	Type       descriptor.Method `yaml:"-"`
	IsStatic   bool              `yaml:"static,omitempty"`
	Selector   string            `yaml:"selector"`
	IsProperty bool              `yaml:"property,omitempty"`
	IsAction   bool              `yaml:"action,omitempty"`
	IsOutlet   bool              `yaml:"outlet,omitempty"`
}

// Signature renders "ret Class.name(args)" for diagnostics
func (m MethodRecord) Signature(className string) string {
	return m.Type.Return.ClassName() + " " + PrettyName(className) + "." + m.Name +
		"(" + strings.Join(m.Type.ArgClassNames(), ", ") + ")"
}

// PrettyName converts an internal name to dotted form
func PrettyName(internalName string) string {
	return strings.ReplaceAll(internalName, "/", ".")
}
