package composer

import (
	"fmt"

	"github.com/toyz/ibcompose/internal/utils"
)

// SkipReason classifies why a class or member was left out of the output
type SkipReason int

const (
	// NotGenerated covers classes that are not slated for generation
	NotGenerated SkipReason = iota
	// IncludeMismatch means no include pattern matched the class name
	IncludeMismatch
	// MissingSuperclass means the class names no superclass
	MissingSuperclass
	// UnresolvedSuperclass means no native ancestor could be found
	UnresolvedSuperclass
	// InvalidMember means a property or action failed validation
	InvalidMember
	// NonBindingMember means a method has neither a property nor an action role
	NonBindingMember
)

// String returns the string representation of the reason
func (r SkipReason) String() string {
	switch r {
	case NotGenerated:
		return "not generated"
	case IncludeMismatch:
		return "include mismatch"
	case MissingSuperclass:
		return "missing superclass"
	case UnresolvedSuperclass:
		return "unresolved superclass"
	case InvalidMember:
		return "invalid member"
	case NonBindingMember:
		return "non-binding member"
	default:
		return "unknown"
	}
}

// Level returns the diagnostic level a skip of this kind is reported at
func (r SkipReason) Level() utils.DiagnosticLevel {
	switch r {
	case IncludeMismatch:
		return utils.DiagnosticInfo
	case MissingSuperclass, UnresolvedSuperclass, InvalidMember:
		return utils.DiagnosticWarn
	default:
		return utils.DiagnosticDebug
	}
}

// Skip is the failed outcome of a class or member check
type Skip struct {
	Reason  SkipReason
	Message string
}

func skip(reason SkipReason, format string, args ...interface{}) *Skip {
	return &Skip{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Diagnostic records one skip of a Compose run
type Diagnostic struct {
	Level   utils.DiagnosticLevel
	Reason  SkipReason
	Subject string // dotted class name or method signature
	Message string
}

// String renders the diagnostic the way it is logged
func (d Diagnostic) String() string {
	return fmt.Sprintf("Skipping %s: %s", d.Subject, d.Message)
}
