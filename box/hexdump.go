package box

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders b as a classic 16-bytes-per-row hex dump with an ASCII
// gutter. base is the absolute offset printed for the first byte.
func Dump(b []byte, base uint64) string {
	var sb strings.Builder
	for row := 0; row < len(b); row += 16 {
		end := row + 16
		if end > len(b) {
			end = len(b)
		}
		line := b[row:end]

		var hexCol strings.Builder
		var asciiCol strings.Builder
		for i, c := range line {
			if i == 8 {
				hexCol.WriteByte(' ')
			}
			fmt.Fprintf(&hexCol, "%02x ", c)
			if c >= 0x20 && c < 0x7f {
				asciiCol.WriteByte(c)
			} else {
				asciiCol.WriteByte('.')
			}
		}
		fmt.Fprintf(&sb, "%08x  %-49s |%s|\n", base+uint64(row), hexCol.String(), asciiCol.String())
	}
	return sb.String()
}

// HexRange reads up to maxLen bytes starting at offset from r, stopping at
// the end of the readable range, and returns the bytes actually read. size
// is the total readable length of r; an offset at or past it yields an
// empty slice, not an error.
func HexRange(r io.ReadSeeker, size, offset, maxLen uint64) ([]byte, error) {
	if offset >= size {
		return nil, nil
	}
	n := size - offset
	if maxLen > 0 && n > maxLen {
		n = maxLen
	}
	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %#x: %w", offset, err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes at %#x: %w", n, offset, err)
	}
	return buf, nil
}
