package box

import (
	"errors"
	"fmt"
	"io"

	"github.com/boxtools/boxkit/internal/format"
)

const (
	// DefaultMaxDepth is the container recursion ceiling. Real files nest
	// maybe a dozen levels; anything deeper is crafted to blow the stack.
	DefaultMaxDepth = 64

	// maxDecodePayload caps how many payload bytes a decoder is handed.
	// No decodable table box comes anywhere near this; a box that does is
	// declaring a hostile size.
	maxDecodePayload = 16 << 20
)

// Options configures a parse.
type Options struct {
	// Decode enables payload decoding through the registry.
	Decode bool
	// Registry supplies decoders and uuid-container declarations. Nil
	// means DefaultRegistry.
	Registry *Registry
	// MaxDepth overrides the recursion ceiling. Zero means DefaultMaxDepth.
	MaxDepth int
}

// GetBoxes parses the box tree covering [0, size) of the reader and returns
// the ordered top-level boxes, each with its full subtree. The default
// registry is used when decode is set.
//
// The function holds no state between calls; independent parses over
// distinct readers may run in parallel.
func GetBoxes(r io.ReadSeeker, size uint64, decode bool) ([]*Node, error) {
	return Parse(r, size, Options{Decode: decode})
}

// Parse is the configurable form of GetBoxes.
func Parse(r io.ReadSeeker, size uint64, opts Options) ([]*Node, error) {
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := &parser{r: r, opts: opts}
	return p.parseRange(0, size, 0)
}

type parser struct {
	r    io.ReadSeeker
	opts Options
}

// parseRange parses the boxes covering [start, end) contiguously. Boxes must
// tile the range exactly: gaps and overlaps are structural errors.
func (p *parser) parseRange(start, end uint64, depth int) ([]*Node, error) {
	var nodes []*Node
	cursor := start
	for cursor < end {
		if end-cursor < format.CompactHeaderSize {
			return nodes, fmt.Errorf("box: %d undecodable bytes at %#x: %w",
				end-cursor, cursor, format.ErrTrailingBytes)
		}
		if _, err := p.r.Seek(int64(cursor), io.SeekStart); err != nil {
			return nodes, fmt.Errorf("box: seek to %#x: %w", cursor, err)
		}
		h, err := ParseHeader(p.r, end)
		if err != nil {
			return nodes, err
		}

		n := &Node{Header: h}
		if name, ok := Name(h.Type); ok {
			n.FullName = name
		}
		if err := p.classify(n, depth); err != nil {
			return nodes, err
		}
		if p.opts.Decode {
			if err := p.decode(n); err != nil {
				return nodes, err
			}
		}

		nodes = append(nodes, n)
		cursor = h.End()
	}
	return nodes, nil
}

// classify assigns the node's kind and, for containers, its children.
// The returned error is always an I/O failure; structural trouble inside a
// child range is contained on the node instead.
func (p *parser) classify(n *Node, depth int) error {
	switch {
	case n.HasUUID:
		n.Kind = KindUUID
		if p.opts.Registry.IsContainerUUID(n.UUID) {
			return p.parseChildren(n, depth)
		}
	case IsContainer(n.Type):
		n.Kind = KindContainer
		return p.parseChildren(n, depth)
	case IsFullBox(n.Type) && n.PayloadSize() >= format.FullBoxPrefixSize:
		n.Kind = KindFullBox
		var prefix [format.FullBoxPrefixSize]byte
		if _, err := p.r.Seek(int64(n.PayloadStart()), io.SeekStart); err != nil {
			return fmt.Errorf("box: seek to %q payload: %w", n.Type, err)
		}
		if _, err := io.ReadFull(p.r, prefix[:]); err != nil {
			return fmt.Errorf("box: %q version/flags: %w", n.Type, err)
		}
		n.Version = prefix[0]
		n.Flags = uint32(prefix[1])<<16 | uint32(prefix[2])<<8 | uint32(prefix[3])
	default:
		n.Kind = KindLeaf
	}
	return nil
}

// parseChildren recurses into a container's interior. A corrupt child range
// must not hide the rest of the file, so structural errors downgrade the
// node to an opaque leaf with the error attached; only I/O failures abort.
func (p *parser) parseChildren(n *Node, depth int) error {
	// A failed uuid container stays a uuid box, just an opaque one.
	opaque := KindLeaf
	if n.HasUUID {
		opaque = KindUUID
	}
	if depth+1 > p.opts.MaxDepth {
		n.Kind = opaque
		n.Err = fmt.Errorf("box: %q at %#x nested %d levels: %w",
			n.Type, n.Start, depth+1, format.ErrDepthExceeded)
		return nil
	}
	children, err := p.parseRange(n.PayloadStart(), n.End(), depth+1)
	if err != nil {
		if !isStructural(err) {
			return err
		}
		n.Kind = opaque
		n.Children = nil
		n.Err = err
		return nil
	}
	if children == nil {
		children = []*Node{}
	}
	n.Children = children
	return nil
}

// decode attaches a decoded value when a decoder matches. Decoding is
// best-effort: a decoder failure lands on the node, never aborts the parse.
func (p *parser) decode(n *Node) error {
	dec, ok := p.opts.Registry.Lookup(n.Header)
	if !ok {
		return nil
	}
	size := n.PayloadSize()
	if size == 0 {
		return nil
	}
	if size > maxDecodePayload {
		n.DecodeErr = fmt.Errorf("box: %q payload of %d bytes exceeds decode limit", n.Type, size)
		return nil
	}
	payload := make([]byte, size)
	if _, err := p.r.Seek(int64(n.PayloadStart()), io.SeekStart); err != nil {
		return fmt.Errorf("box: seek to %q payload: %w", n.Type, err)
	}
	if _, err := io.ReadFull(p.r, payload); err != nil {
		return fmt.Errorf("box: read %q payload: %w", n.Type, err)
	}
	v, err := dec.Decode(payload, n.Header)
	if err != nil {
		n.DecodeErr = err
		return nil
	}
	n.Decoded = &v
	return nil
}

// isStructural distinguishes malformed-file errors, which are contained per
// subtree, from I/O failures, which are fatal to the whole parse.
func isStructural(err error) bool {
	return errors.Is(err, format.ErrTruncated) ||
		errors.Is(err, format.ErrInvalidSize) ||
		errors.Is(err, format.ErrOutOfBounds) ||
		errors.Is(err, format.ErrTrailingBytes) ||
		errors.Is(err, format.ErrDepthExceeded)
}
