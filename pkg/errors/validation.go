package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches a 6-digit hex color with an optional leading "#".
var hexColorRegex = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ValidateHexColor validates a 6-digit hex color string.
// Both "aabbcc" and "#aabbcc" forms are accepted.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", s)
	}
	return nil
}

// ValidateWeights validates a palette weight distribution.
// Weights are relative and need not sum to one, but every weight must be
// strictly positive and at least one weight must be present.
func ValidateWeights(weights []float64) error {
	if len(weights) == 0 {
		return New(ErrCodeInvalidInput, "distribution cannot be empty")
	}
	for i, w := range weights {
		if w <= 0 {
			return New(ErrCodeInvalidInput, "weight %d must be positive, got %v", i, w)
		}
	}
	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
