package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTxid generates a globally-unique opaque transaction identifier:
// the 32 hex characters of a random UUID without separators.
func GenerateTxid() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
