package box

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// UUID is the 16-byte extended type identifier carried by 'uuid' boxes.
type UUID [16]byte

// String renders the identifier as 32 lowercase hex digits without dashes,
// the form used throughout the JSON output.
func (u UUID) String() string {
	return hex.EncodeToString(u[:])
}

// ParseUUID parses a full 16-byte identifier from hex. Dashes are optional
// and hex digits are case-insensitive.
func ParseUUID(s string) (UUID, error) {
	var u UUID
	h := normalizeHex(s)
	if len(h) != 32 {
		return u, fmt.Errorf("box: uuid must be 32 hex digits, got %d", len(h))
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return u, fmt.Errorf("box: bad uuid %q: %w", s, err)
	}
	copy(u[:], b)
	return u, nil
}

// HasHexPrefix reports whether the identifier's hex form starts with the
// given hex fragment. The fragment may use dashes and mixed case, and may
// have odd length (a trailing half byte).
func (u UUID) HasHexPrefix(prefix string) bool {
	h := normalizeHex(prefix)
	if h == "" || len(h) > 32 {
		return false
	}
	return strings.HasPrefix(u.String(), h)
}

func normalizeHex(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}
