package box

import (
	"fmt"
	"io"

	"github.com/boxtools/boxkit/internal/format"
)

// Query selects nodes either by exact FourCC or by a uuid hex string. A hex
// query shorter than 32 digits matches any uuid box whose id starts with
// those digits.
type Query struct {
	Type    FourCC
	ByUUID  bool
	HexUUID string
}

// ParseQuery interprets a user-supplied search term. A term of exactly four
// characters is taken as a FourCC; anything longer must be hex (dashes
// allowed, case-insensitive) naming a uuid box id or a prefix of one.
func ParseQuery(s string) (Query, error) {
	if cc, ok := ParseFourCC(s); ok {
		return Query{Type: cc}, nil
	}
	hex := normalizeHex(s)
	if len(hex) == 0 || len(hex) > 32 {
		return Query{}, fmt.Errorf("query %q: uuid hex must be 1 to 32 digits, got %d", s, len(hex))
	}
	for _, c := range hex {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Query{}, fmt.Errorf("query %q is neither a four-character type nor uuid hex", s)
		}
	}
	return Query{ByUUID: true, HexUUID: hex}, nil
}

// Matches reports whether q selects n.
func (q Query) Matches(n *Node) bool {
	if q.ByUUID {
		return n.HasUUID && n.UUID.HasHexPrefix(q.HexUUID)
	}
	return !n.HasUUID && n.Type == q.Type
}

// FindFirst walks the trees in document order and returns the first node
// the query matches, at any depth. It returns an error wrapping
// format.ErrNotFound when nothing matches.
func FindFirst(roots []*Node, q Query) (*Node, error) {
	for _, root := range roots {
		if n := findFirst(root, q); n != nil {
			return n, nil
		}
	}
	if q.ByUUID {
		return nil, fmt.Errorf("no box with uuid %s*: %w", q.HexUUID, format.ErrNotFound)
	}
	return nil, fmt.Errorf("no box of type %s: %w", q.Type, format.ErrNotFound)
}

func findFirst(n *Node, q Query) *Node {
	if q.Matches(n) {
		return n
	}
	for _, child := range n.Children {
		if m := findFirst(child, q); m != nil {
			return m
		}
	}
	return nil
}

// Walk visits every node in document order, parents before children,
// stopping early when fn returns false.
func Walk(roots []*Node, fn func(n *Node, depth int) bool) {
	for _, root := range roots {
		if !walk(root, 0, fn) {
			return
		}
	}
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// RawPayload reads up to max bytes of a node's payload from r. A max of 0
// means the whole payload. The returned slice is exactly as long as what
// was read.
func RawPayload(r io.ReadSeeker, n *Node, max uint64) ([]byte, error) {
	size := n.PayloadSize()
	if max > 0 && size > max {
		size = max
	}
	if size == 0 {
		return nil, nil
	}
	if _, err := r.Seek(int64(n.PayloadStart()), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to payload of %s at %#x: %w", n.DisplayType(), n.PayloadStart(), err)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read %d payload bytes of %s: %w", size, n.DisplayType(), err)
	}
	return buf, nil
}
