package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal out of the working tree and ensures
// reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateLevels validates a threshold list: it must be non-empty, every
// value finite, and the values strictly increasing. Sorted input keeps
// level indices meaningful in the output.
func ValidateLevels(levels []float64) error {
	if len(levels) == 0 {
		return New(ErrCodeInvalidLevels, "at least one level is required")
	}
	for i, v := range levels {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidLevels, "level %d is not finite: %v", i, v)
		}
		if i > 0 && v <= levels[i-1] {
			return New(ErrCodeInvalidLevels, "levels must be strictly increasing, got %v after %v", v, levels[i-1])
		}
	}
	return nil
}

// ValidateGridDims validates grid dimensions against the sample count.
func ValidateGridDims(cols, rows, samples int) error {
	if cols < 1 || rows < 1 {
		return New(ErrCodeInvalidGrid, "grid must have at least one column and one row, got %dx%d", cols, rows)
	}
	if samples != cols*rows {
		return New(ErrCodeInvalidGrid, "got %d samples for a %dx%d grid, want %d", samples, cols, rows, cols*rows)
	}
	return nil
}

// ValidateFormat checks a format name against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)", format, strings.Join(allowed, ", "))
}
