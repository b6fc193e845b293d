package printer

import (
	"encoding/json"
	"io"

	"github.com/boxtools/boxkit/box"
)

// JSONBox is the serializable form of one parsed box. Optional fields are
// pointers so absent values render as JSON null.
type JSONBox struct {
	Offset     uint64 `json:"offset"`
	Size       uint64 `json:"size"`
	HeaderSize uint64 `json:"header_size"`

	PayloadOffset *uint64 `json:"payload_offset"`
	PayloadSize   *uint64 `json:"payload_size"`

	Typ      string     `json:"typ"`
	UUID     *string    `json:"uuid"`
	Version  *uint8     `json:"version"`
	Flags    *uint32    `json:"flags"`
	Kind     string     `json:"kind"`
	FullName string     `json:"full_name"`
	Decoded  *string    `json:"decoded"`
	Error    *string    `json:"error,omitempty"`
	Children []*JSONBox `json:"children"`
}

// JSON writes the trees as a JSON array of JSONBox objects.
func JSON(w io.Writer, roots []*box.Node, opts Options) error {
	out := make([]*JSONBox, 0, len(roots))
	for _, n := range roots {
		out = append(out, BuildJSON(n, opts))
	}
	enc := json.NewEncoder(w)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	return enc.Encode(out)
}

// BuildJSON converts one node (and its subtree) to the serializable form.
func BuildJSON(n *box.Node, opts Options) *JSONBox {
	return buildJSON(n, 1, opts)
}

func buildJSON(n *box.Node, depth int, opts Options) *JSONBox {
	j := &JSONBox{
		Offset:     n.Start,
		Size:       n.Size,
		HeaderSize: n.HeaderSize,
		Typ:        n.Type.String(),
		Kind:       n.Kind.String(),
		FullName:   n.FullName,
	}

	if n.HasUUID {
		u := n.UUID.String()
		j.UUID = &u
	}

	switch n.Kind {
	case box.KindFullBox:
		v, fl := n.Version, n.Flags
		j.Version = &v
		j.Flags = &fl
	}

	// A box parsed into children owns no payload of its own; those bytes
	// belong to the children. Everything else exposes its payload geometry
	// when non-empty.
	if n.Children == nil && n.PayloadSize() > 0 {
		off, size := n.PayloadStart(), n.PayloadSize()
		j.PayloadOffset = &off
		j.PayloadSize = &size
	}

	if opts.ShowDecoded {
		if n.Decoded != nil {
			s := n.Decoded.String()
			j.Decoded = &s
		} else if n.DecodeErr != nil {
			s := "[decode error: " + n.DecodeErr.Error() + "]"
			j.Decoded = &s
		}
	}
	if n.Err != nil {
		s := n.Err.Error()
		j.Error = &s
	}

	if n.Children != nil {
		j.Children = make([]*JSONBox, 0, len(n.Children))
		if opts.MaxDepth <= 0 || depth < opts.MaxDepth {
			for _, child := range n.Children {
				j.Children = append(j.Children, buildJSON(child, depth+1, opts))
			}
		}
	}
	return j
}
