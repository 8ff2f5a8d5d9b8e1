package utils

import (
	"strings"

	"github.com/google/uuid"
)

// referenceLen is the length of the random fragment in a business reference.
const referenceLen = 10

// NewBusinessRef builds a human-readable business reference such as
// "INV-9F3A2C41D0" from a display prefix and a UUID fragment. The storage layer's
// unique constraint remains the backstop against the (negligible) collision chance.
func NewBusinessRef(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(raw[:referenceLen])
}
