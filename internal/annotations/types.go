package annotations

import (
	"fmt"

	"github.com/toyz/ibcompose/internal/classfile"
)

// AnnotationType represents the binding role of a recognized annotation
type AnnotationType int

const (
	ClassNameAnnotation AnnotationType = iota
	ClassBindingAnnotation
	ProtocolNameAnnotation
	ProtocolSourceNameAnnotation
	LibraryAnnotation
	SelectorAnnotation
	PropertyAnnotation
	IBActionAnnotation
	IBOutletAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ClassNameAnnotation:
		return "class_name"
	case ClassBindingAnnotation:
		return "class_binding"
	case ProtocolNameAnnotation:
		return "protocol_name"
	case ProtocolSourceNameAnnotation:
		return "protocol_source_name"
	case LibraryAnnotation:
		return "library"
	case SelectorAnnotation:
		return "selector"
	case PropertyAnnotation:
		return "property"
	case IBActionAnnotation:
		return "ib_action"
	case IBOutletAnnotation:
		return "ib_outlet"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "class_name":
		return ClassNameAnnotation, nil
	case "class_binding":
		return ClassBindingAnnotation, nil
	case "protocol_name":
		return ProtocolNameAnnotation, nil
	case "protocol_source_name":
		return ProtocolSourceNameAnnotation, nil
	case "library":
		return LibraryAnnotation, nil
	case "selector":
		return SelectorAnnotation, nil
	case "property":
		return PropertyAnnotation, nil
	case "ib_action":
		return IBActionAnnotation, nil
	case "ib_outlet":
		return IBOutletAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// Target tells where an annotation type is meaningful
type Target int

const (
	ClassTarget Target = iota
	MethodTarget
)

// Target returns where the annotation type applies
func (a AnnotationType) Target() Target {
	switch a {
	case SelectorAnnotation, PropertyAnnotation, IBActionAnnotation, IBOutletAnnotation:
		return MethodTarget
	default:
		return ClassTarget
	}
}

// ClassMetadata is the native binding information attached to a class
type ClassMetadata struct {
	NativeClassName          string
	NativeClassBinding       string
	NativeProtocolName       string
	NativeProtocolSourceName string
	Library                  string
}

// IsNative reports whether methods of the class should be inspected
func (c ClassMetadata) IsNative() bool {
	return c.NativeClassName != "" || c.NativeClassBinding != ""
}

// MethodInfo is everything the extractor may look at for one method
type MethodInfo struct {
	Name        string
	Descriptor  string
	NumArgs     int
	IsStatic    bool
	Annotations []classfile.Annotation
}

// MethodMetadata is the derived binding role of one method
type MethodMetadata struct {
	Selector    string
	HasSelector bool
	IsProperty  bool
	IsAction    bool
	IsOutlet    bool
}

// IsBinding reports whether the method should be retained
func (m MethodMetadata) IsBinding() bool {
	return m.HasSelector && (m.IsProperty || m.IsAction || m.IsOutlet)
}
