package platform

import (
	"errors"
	"fmt"
)

// Common resolution errors that can be checked with errors.Is.
var (
	// ErrEmptyInput is returned when the input is blank after trimming.
	// Callers usually treat this as "nothing entered" rather than a
	// validation failure.
	ErrEmptyInput = errors.New("platform: empty input")

	// ErrUnrecognized is returned when the input matches none of the
	// accepted grammars of the targeted platform. A well-formed URL on the
	// wrong host is reported the same way as garbage.
	ErrUnrecognized = errors.New("platform: unrecognized input")

	// ErrUnknownPlatform is returned when no resolver is registered under
	// the requested name or alias.
	ErrUnknownPlatform = errors.New("platform: unknown platform")
)

// LinkError wraps a resolution failure with the platform and the raw input.
type LinkError struct {
	// Platform is the requested platform name; empty for detection.
	Platform string

	// Input is the raw input as given by the caller.
	Input string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("%s: %q: %v", e.Platform, e.Input, e.Err)
	}
	return fmt.Sprintf("%q: %v", e.Input, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *LinkError) Unwrap() error {
	return e.Err
}

// NewEmptyInputError creates a LinkError for blank input.
func NewEmptyInputError(platform, input string) error {
	return &LinkError{Platform: platform, Input: input, Err: ErrEmptyInput}
}

// NewUnrecognizedError creates a LinkError for input that matches no grammar.
func NewUnrecognizedError(platform, input string) error {
	return &LinkError{Platform: platform, Input: input, Err: ErrUnrecognized}
}

// NewUnknownPlatformError creates a LinkError for an unregistered platform.
func NewUnknownPlatformError(platform, input string) error {
	return &LinkError{Platform: platform, Input: input, Err: ErrUnknownPlatform}
}
