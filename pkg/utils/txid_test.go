package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTxid(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		txid := GenerateTxid()
		assert.Regexp(t, pattern, txid)
		_, dup := seen[txid]
		assert.False(t, dup, "txid %s generated twice", txid)
		seen[txid] = struct{}{}
	}
}
