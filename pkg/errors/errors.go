// Package errors defines the coded errors shared by the layout engine, the
// catalog client, the pipeline and the HTTP API.
//
// Every rejection carries a [Code]. The engine never falls back to a default
// when handed an unknown orientation, reference class or a non-positive
// dimension; it returns one of the configuration codes instead, which
// [IsConfig] groups together. Failures talking to the catalog service carry
// the upstream codes grouped by [IsUpstream].
//
//	if _, err := layout.Measure(cfg, 5, rect, "north", layout.Base); errors.Is(err, errors.ErrCodeInvalidOrientation) {
//	    // reject the request
//	}
//
//	return errors.Wrap(errors.ErrCodeNetwork, err, "generate %s wall", o)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code. The HTTP API returns it verbatim.
type Code string

const (
	// Configuration: the engine refuses to compute.
	ErrCodeInvalidConfig         Code = "INVALID_CONFIG"
	ErrCodeInvalidOrientation    Code = "INVALID_ORIENTATION"
	ErrCodeInvalidReferenceClass Code = "INVALID_REFERENCE_CLASS"
	ErrCodeInvalidDimension      Code = "INVALID_DIMENSION"
	ErrCodeCornerOffsetMismatch  Code = "CORNER_OFFSET_MISMATCH"

	// Input: malformed requests, room files or flags.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Upstream: the catalog service failed or answered nonsense.
	ErrCodeInvalidResponse Code = "INVALID_RESPONSE"
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeNetwork         Code = "NETWORK_ERROR"
	ErrCodeTimeout         Code = "TIMEOUT"

	// ErrCodeSuperseded marks a wall fetch whose result was discarded
	// because a newer fetch for the same wall started.
	ErrCodeSuperseded Code = "SUPERSEDED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" or "CODE: message: cause".
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsConfig reports whether err is a rejected computation: the caller passed
// parameters the engine will not interpret.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig,
		ErrCodeInvalidOrientation,
		ErrCodeInvalidReferenceClass,
		ErrCodeInvalidDimension,
		ErrCodeCornerOffsetMismatch:
		return true
	}
	return false
}

// IsUpstream reports whether err came from the catalog service rather than
// from the caller's input.
func IsUpstream(err error) bool {
	switch GetCode(err) {
	case ErrCodeNetwork, ErrCodeTimeout, ErrCodeInvalidResponse:
		return true
	}
	return false
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for any other error.
func UserMessage(err error) string {
	if e := asError(err); e != nil {
		return e.Message
	}
	return err.Error()
}
