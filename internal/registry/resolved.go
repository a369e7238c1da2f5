package registry

import (
	"sync"

	"github.com/toyz/ibcompose/internal/models"
)

// SuperKind classifies the outcome of a superclass walk
type SuperKind int

const (
	// SuperRoot means the class names no superclass at all
	SuperRoot SuperKind = iota
	// SuperUnresolved means the walk ended without finding a native ancestor
	SuperUnresolved
	// SuperFound means an ancestor exposing a binding type name was found
	SuperFound
)

// String returns the string representation of the kind
func (k SuperKind) String() string {
	switch k {
	case SuperRoot:
		return "root"
	case SuperUnresolved:
		return "unresolved"
	case SuperFound:
		return "found"
	default:
		return "unknown"
	}
}

// SuperResolution is the result of walking a class's superclass chain
type SuperResolution struct {
	Kind SuperKind
	// NativeName is the ancestor's binding type name when Kind is SuperFound
	NativeName string
	// Missing is the first link that has no registered record when Kind is
	// SuperUnresolved. It is empty when the chain ended without a native
	// ancestor or looped back on itself.
	Missing string
}

// Found returns the native superclass name, if any
func (s SuperResolution) Found() (string, bool) {
	return s.NativeName, s.Kind == SuperFound
}

// ResolvedClass is the registry's derived view of one ClassRecord. Its
// computed fields are filled on first use and never change afterwards.
type ResolvedClass struct {
	Record *models.ClassRecord

	reg       *Registry
	superOnce sync.Once
	super     SuperResolution
}

// BindingTypeName returns the literal native type name of the class
func (rc *ResolvedClass) BindingTypeName() (string, bool) {
	if rc.Record.HasNativeClassBinding() {
		return rc.Record.NativeClassBinding, true
	}
	if rc.Record.HasNativeClassName() {
		return rc.Record.NativeClassName, true
	}
	return "", false
}

// IsValidNativeType reports whether the class can appear as a native type
func (rc *ResolvedClass) IsValidNativeType() bool {
	_, ok := rc.BindingTypeName()
	return ok
}

// PrettyName returns the dotted class name for diagnostics
func (rc *ResolvedClass) PrettyName() string {
	return rc.Record.PrettyName()
}

// Super returns the registered record of the immediate superclass
func (rc *ResolvedClass) Super() (*ResolvedClass, bool) {
	if !rc.Record.HasSuper() {
		return nil, false
	}
	return rc.reg.Get(rc.Record.SuperName)
}

// SuperNativeName walks the superclass chain to the first ancestor with a
// binding type name
func (rc *ResolvedClass) SuperNativeName() SuperResolution {
	rc.superOnce.Do(func() {
		rc.super = rc.walkSuper()
	})
	return rc.super
}

func (rc *ResolvedClass) walkSuper() SuperResolution {
	name := rc.Record.SuperName
	if name == "" {
		return SuperResolution{Kind: SuperRoot}
	}

	seen := map[string]bool{rc.Record.Name: true}
	for name != "" {
		if seen[name] {
			return SuperResolution{Kind: SuperUnresolved}
		}
		seen[name] = true

		ancestor, ok := rc.reg.Get(name)
		if !ok {
			return SuperResolution{Kind: SuperUnresolved, Missing: name}
		}
		if native, ok := ancestor.BindingTypeName(); ok {
			return SuperResolution{Kind: SuperFound, NativeName: native}
		}
		name = ancestor.Record.SuperName
	}
	return SuperResolution{Kind: SuperUnresolved}
}
