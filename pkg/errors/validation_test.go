package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"positive", 120, false},
		{"fraction", 0.5, false},
		{"zero", 0, true},
		{"negative", -5, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("length", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePositive(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimension) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidDimension)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("margin", 0); err != nil {
		t.Errorf("zero should pass: %v", err)
	}
	if err := ValidateNonNegative("margin", -1); err == nil {
		t.Error("negative should fail")
	}
	if err := ValidateNonNegative("margin", math.NaN()); err == nil {
		t.Error("NaN should fail")
	}
}

func TestValidateModuleName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"base", "B36", false},
		{"corner", "BC36", false},
		{"filler", "F3.5", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control", "B3\x006", true},
		{"too long", strings.Repeat("U", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModuleName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModuleName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
