package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeName validates a node or tree name before it enters a graph.
// It rejects names that could not round-trip through a snapshot token or
// that would collide with the envelope marker.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No occurrence of the token marker "__NR"
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "node name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "node name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name contains control characters")
		}
	}

	if strings.Contains(name, "__NR") {
		return New(ErrCodeInvalidInput, "node name must not contain the token marker %q", "__NR")
	}

	return nil
}
