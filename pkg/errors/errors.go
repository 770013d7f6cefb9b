// Unified error handling for flow-scale
//
// Copyright (C) 2026  flow-scale authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import "fmt"

// ErrorCode represents the category of error
type ErrorCode string

const (
	// Configuration errors
	ErrConfigRatio       ErrorCode = "CONFIG_RATIO"
	ErrConfigRange       ErrorCode = "CONFIG_RANGE"
	ErrConfigLayerSpec   ErrorCode = "CONFIG_LAYER_SPEC"
	ErrConfigLayerHeight ErrorCode = "CONFIG_LAYER_HEIGHT"
	ErrConfigInput       ErrorCode = "CONFIG_INPUT"
	ErrConfigOutput      ErrorCode = "CONFIG_OUTPUT"

	// Safety validation errors
	ErrSafetyNoReset ErrorCode = "SAFETY_NO_RESET"

	// I/O errors
	ErrIORead  ErrorCode = "IO_READ"
	ErrIOWrite ErrorCode = "IO_WRITE"
)

// RunError is the unified error type for a flow-scale run
type RunError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Path is the file the error relates to (if any)
	Path string

	// Line is the 1-based input line number (if applicable)
	Line int

	// Err wraps the underlying error
	Err error
}

// Error implements the error interface
func (e *RunError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *RunError) Unwrap() error {
	return e.Err
}

// SetPath sets the related file path
func (e *RunError) SetPath(path string) *RunError {
	e.Path = path
	return e
}

// SetLine sets the input line number
func (e *RunError) SetLine(line int) *RunError {
	e.Line = line
	return e
}

// New creates a new RunError
func New(code ErrorCode, message string) *RunError {
	return &RunError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode, message string) *RunError {
	return &RunError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Config errors

// ConfigRatioError creates an error for a missing or invalid flow ratio
func ConfigRatioError(reason string) *RunError {
	return New(ErrConfigRatio, fmt.Sprintf("flow ratio: %s", reason))
}

// ConfigRangeError creates an error for an invalid Z or layer window
func ConfigRangeError(reason string) *RunError {
	return New(ErrConfigRange, reason)
}

// ConfigLayerSpecError creates an error for an unparsable layer spec
func ConfigLayerSpecError(spec string, err error) *RunError {
	return Wrap(err, ErrConfigLayerSpec, fmt.Sprintf("invalid layer range %q (expected N or N:M)", spec))
}

// ConfigLayerHeightError creates an error for a missing or invalid layer height
func ConfigLayerHeightError(reason string) *RunError {
	return New(ErrConfigLayerHeight, fmt.Sprintf("layer height: %s", reason))
}

// ConfigInputError creates an error for an unresolvable input source
func ConfigInputError(reason string) *RunError {
	return New(ErrConfigInput, reason)
}

// ConfigOutputError creates an error for an unusable output destination
func ConfigOutputError(reason string) *RunError {
	return New(ErrConfigOutput, reason)
}

// Safety errors

// SafetyNoResetError creates an error for a missing G92 E0 baseline before
// the first scaled line
func SafetyNoResetError(line int) *RunError {
	return New(ErrSafetyNoReset,
		"no G92 E0 reset seen before the first scaled line; "+
			"scaling absolute E values from an unknown baseline may over- or under-extrude "+
			"(use --force to override)").SetLine(line)
}

// I/O errors

// ReadError creates an error for an input read failure
func ReadError(path string, err error) *RunError {
	return Wrap(err, ErrIORead, fmt.Sprintf("reading %s: %v", path, err)).SetPath(path)
}

// WriteError creates an error for an output write failure
func WriteError(path string, err error) *RunError {
	return Wrap(err, ErrIOWrite, fmt.Sprintf("writing %s: %v", path, err)).SetPath(path)
}

// Is checks if error matches the given error code
func Is(err error, code ErrorCode) bool {
	if runErr, ok := err.(*RunError); ok {
		return runErr.Code == code
	}
	return false
}

// IsConfig checks if error is a configuration error
func IsConfig(err error) bool {
	return Is(err, ErrConfigRatio) ||
		Is(err, ErrConfigRange) ||
		Is(err, ErrConfigLayerSpec) ||
		Is(err, ErrConfigLayerHeight) ||
		Is(err, ErrConfigInput) ||
		Is(err, ErrConfigOutput)
}

// IsSafety checks if error is a safety validation error
func IsSafety(err error) bool {
	return Is(err, ErrSafetyNoReset)
}

// IsIO checks if error is an I/O error
func IsIO(err error) bool {
	return Is(err, ErrIORead) || Is(err, ErrIOWrite)
}
