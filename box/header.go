package box

import (
	"fmt"
	"io"

	"github.com/boxtools/boxkit/internal/format"
)

// ParseHeader reads one box header at the reader's current position.
// rangeEnd is the exclusive end of the enclosing range (the file length for
// top-level boxes, the parent's interior end for nested ones); it resolves
// size-0 boxes and bounds every read.
//
// On success the reader is positioned just past the header. Sizes are never
// clamped: a box that lies about its extent fails loudly, because clamping
// would silently corrupt every sibling offset after it.
func ParseHeader(r io.ReadSeeker, rangeEnd uint64) (Header, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Header{}, fmt.Errorf("box: header position: %w", err)
	}
	start := uint64(pos)

	h := Header{Start: start, HeaderSize: format.CompactHeaderSize}
	if start+format.CompactHeaderSize > rangeEnd {
		return Header{}, fmt.Errorf("box: header at %#x needs %d bytes, %d remain: %w",
			start, format.CompactHeaderSize, rangeEnd-start, format.ErrTruncated)
	}

	var compact [format.CompactHeaderSize]byte
	if _, err := io.ReadFull(r, compact[:]); err != nil {
		return Header{}, fmt.Errorf("box: header at %#x: %w", start, err)
	}
	size32 := format.ReadU32(compact[:], format.SizeFieldOffset)
	copy(h.Type[:], compact[format.TypeFieldOffset:])
	h.DeclaredSize = uint64(size32)

	switch size32 {
	case format.SizeIn64Bit:
		if start+h.HeaderSize+format.LargeSizeFieldSize > rangeEnd {
			return Header{}, fmt.Errorf("box: large size of %q at %#x: %w",
				h.Type, start, format.ErrTruncated)
		}
		var large [format.LargeSizeFieldSize]byte
		if _, err := io.ReadFull(r, large[:]); err != nil {
			return Header{}, fmt.Errorf("box: large size of %q at %#x: %w", h.Type, start, err)
		}
		h.Size = format.ReadU64(large[:], 0)
		h.HeaderSize += format.LargeSizeFieldSize
	case format.SizeToEnd:
		h.Size = rangeEnd - start
	default:
		h.Size = uint64(size32)
	}

	if string(h.Type[:]) == string(format.UUIDType) {
		if start+h.HeaderSize+format.UUIDSize > rangeEnd {
			return Header{}, fmt.Errorf("box: extended type at %#x: %w", start, format.ErrTruncated)
		}
		if _, err := io.ReadFull(r, h.UUID[:]); err != nil {
			return Header{}, fmt.Errorf("box: extended type at %#x: %w", start, err)
		}
		h.HasUUID = true
		h.HeaderSize += format.UUIDSize
	}

	if h.Size < h.HeaderSize {
		return Header{}, fmt.Errorf("box: %q at %#x declares %d bytes, header alone is %d: %w",
			h.Type, start, h.Size, h.HeaderSize, format.ErrInvalidSize)
	}
	if h.End() > rangeEnd {
		return Header{}, fmt.Errorf("box: %q at %#x ends at %#x past range end %#x: %w",
			h.Type, start, h.End(), rangeEnd, format.ErrOutOfBounds)
	}
	return h, nil
}
