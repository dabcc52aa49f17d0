package errors

import (
	"strings"
	"unicode"
)

// Limits applied to record fields.
const (
	MaxNodeIDLength = 256
	MaxLabelLength  = 1024
)

// ValidateNodeID validates a node identifier taken from a record line.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters (tabs and newlines are field separators)
//   - No ';' (the neighbour list separator)
//   - No bare "-" (the empty-list marker)
//   - Maximum length of MaxNodeIDLength bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRecord, "node id cannot be empty")
	}

	if id == "-" {
		return New(ErrCodeInvalidRecord, "node id cannot be the empty-list marker %q", id)
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidRecord, "node id too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "node id contains invalid control characters")
		}
	}

	if strings.Contains(id, ";") {
		return New(ErrCodeInvalidRecord, "node id cannot contain the list separator %q", ";")
	}

	return nil
}

// ValidateLabel validates a node label. Labels may be empty.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidRecord, "label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "label contains invalid control characters")
		}
	}

	return nil
}
