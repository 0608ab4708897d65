package errors

import (
	"math"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "field.json", false},
		{"valid nested", "data/field.csv", false},
		{"valid absolute", "/tmp/field.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLevels(t *testing.T) {
	tests := []struct {
		name    string
		input   []float64
		wantErr bool
	}{
		{"single level", []float64{0.5}, false},
		{"increasing", []float64{-1, 0, 0.5, 2}, false},

		{"empty", nil, true},
		{"NaN", []float64{0, math.NaN()}, true},
		{"infinite", []float64{math.Inf(1)}, true},
		{"duplicate", []float64{0.5, 0.5}, true},
		{"decreasing", []float64{1, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLevels(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLevels(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGridDims(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		samples    int
		wantErr    bool
	}{
		{"valid", 3, 2, 6, false},
		{"single sample", 1, 1, 1, false},

		{"zero cols", 0, 2, 0, true},
		{"negative rows", 2, -1, 0, true},
		{"count mismatch", 3, 2, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGridDims(tt.cols, tt.rows, tt.samples)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGridDims(%d, %d, %d) error = %v, wantErr %v", tt.cols, tt.rows, tt.samples, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("json", "json", "geojson"); err != nil {
		t.Errorf("ValidateFormat(json) error = %v, want nil", err)
	}
	if err := ValidateFormat("svg", "json", "geojson"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(svg) = %v, want INVALID_FORMAT", err)
	}
	if err := ValidateFormat("", "json"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(\"\") = %v, want INVALID_FORMAT", err)
	}
}
