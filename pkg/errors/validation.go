package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePositive rejects values that are not finite and strictly positive.
// name identifies the offending parameter in the message.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDimension, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidDimension, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative rejects values that are not finite or below zero.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDimension, "%s must be a finite number, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidDimension, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// ValidateModuleName validates a cabinet name received from the catalog.
//
// Names end up in SVG text nodes and cache keys, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters
func ValidateModuleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "module name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "module name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "module name contains invalid control characters")
		}
	}

	return nil
}
