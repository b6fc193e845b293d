package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/boxtools/boxkit/box"
)

// Text writes an indented tree, one box per line: offset, total size, type,
// and kind annotations. Decoded summaries follow on their own line when
// requested.
func Text(w io.Writer, roots []*box.Node, opts Options) error {
	for _, n := range roots {
		if err := writeText(w, n, 0, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, n *box.Node, depth int, opts Options) error {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%8s %10d %s", indent, fmt.Sprintf("%#x", n.Start), n.Size, displayType(n))

	switch n.Kind {
	case box.KindContainer:
		line += " (container)"
	case box.KindFullBox:
		line += fmt.Sprintf(" (ver=%d, flags=0x%06x)", n.Version, n.Flags)
	}
	if n.Err != nil {
		line += fmt.Sprintf(" [error: %v]", n.Err)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	if opts.ShowDecoded {
		if n.Decoded != nil {
			if _, err := fmt.Fprintf(w, "%s        -> %s\n", indent, n.Decoded.String()); err != nil {
				return err
			}
		} else if n.DecodeErr != nil {
			if _, err := fmt.Fprintf(w, "%s        -> [decode error: %v]\n", indent, n.DecodeErr); err != nil {
				return err
			}
		}
	}

	if opts.MaxDepth > 0 && depth+1 > opts.MaxDepth {
		return nil
	}
	for _, child := range n.Children {
		if err := writeText(w, child, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

func displayType(n *box.Node) string {
	if n.HasUUID {
		return "uuid:" + n.UUID.String()
	}
	return n.Type.String()
}
