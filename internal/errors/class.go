package errors

import "fmt"

// MalformedClassError reports an input that is not a valid class file.
// It always aborts the generation run.
type MalformedClassError struct {
	*BaseError
	Reason string
}

// NewMalformedClassError creates a malformed class error at the given offset
func NewMalformedClassError(input string, offset int, reason string) *MalformedClassError {
	err := &MalformedClassError{
		BaseError: New(MalformedClassErrorCode, fmt.Sprintf("malformed class file: %s", reason)).
			WithLocation(InputLocation{Input: input, Offset: offset}).
			WithSuggestions(
				"Make sure the input was produced by a Java compiler and is not truncated",
				"Exclude non-class resources from the input set",
			),
		Reason: reason,
	}
	return err
}

// WithInput sets the input name on an error that was raised before the name was known
func (e *MalformedClassError) WithInput(input string) *MalformedClassError {
	e.Loc.Input = input
	return e
}
