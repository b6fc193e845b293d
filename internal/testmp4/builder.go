// Package testmp4 builds synthetic ISOBMFF byte sequences for tests.
package testmp4

import (
	"github.com/boxtools/boxkit/internal/format"
)

// Box frames payload fragments as a box with a compact 32-bit size.
func Box(typ string, payload ...[]byte) []byte {
	body := Concat(payload...)
	out := make([]byte, format.CompactHeaderSize, format.CompactHeaderSize+len(body))
	format.PutU32(out, format.SizeFieldOffset, uint32(format.CompactHeaderSize+len(body)))
	copy(out[format.TypeFieldOffset:], typ)
	return append(out, body...)
}

// LargeBox frames payload as a box using the 64-bit large-size form.
func LargeBox(typ string, payload ...[]byte) []byte {
	body := Concat(payload...)
	head := format.CompactHeaderSize + format.LargeSizeFieldSize
	out := make([]byte, head, head+len(body))
	format.PutU32(out, format.SizeFieldOffset, format.SizeIn64Bit)
	copy(out[format.TypeFieldOffset:], typ)
	format.PutU64(out, format.CompactHeaderSize, uint64(head+len(body)))
	return append(out, body...)
}

// ToEndBox frames payload as a box whose size field is zero, extending to
// the end of whatever range it is parsed in.
func ToEndBox(typ string, payload ...[]byte) []byte {
	body := Concat(payload...)
	out := make([]byte, format.CompactHeaderSize, format.CompactHeaderSize+len(body))
	format.PutU32(out, format.SizeFieldOffset, format.SizeToEnd)
	copy(out[format.TypeFieldOffset:], typ)
	return append(out, body...)
}

// UUIDBox frames payload as a 'uuid' box carrying the 16-byte extended id.
func UUIDBox(id [16]byte, payload ...[]byte) []byte {
	body := Concat(payload...)
	head := format.CompactHeaderSize + format.UUIDSize
	out := make([]byte, head, head+len(body))
	format.PutU32(out, format.SizeFieldOffset, uint32(head+len(body)))
	copy(out[format.TypeFieldOffset:], "uuid")
	copy(out[format.CompactHeaderSize:], id[:])
	return append(out, body...)
}

// FullBox frames body as a box with a version/flags prefix.
func FullBox(typ string, version byte, flags uint32, body []byte) []byte {
	prefix := []byte{version, byte(flags >> 16), byte(flags >> 8), byte(flags)}
	return Box(typ, prefix, body)
}

// Ftyp builds a well-formed file type box.
func Ftyp(major string, minor uint32, compatible ...string) []byte {
	body := make([]byte, 0, 2*format.BrandSize+len(compatible)*format.BrandSize)
	body = append(body, major...)
	body = append(body, U32(minor)...)
	for _, b := range compatible {
		body = append(body, b...)
	}
	return Box("ftyp", body)
}

// Concat joins byte fragments into one slice.
func Concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// U16 encodes v big-endian.
func U16(v uint16) []byte {
	b := make([]byte, 2)
	format.PutU16(b, 0, v)
	return b
}

// U32 encodes v big-endian.
func U32(v uint32) []byte {
	b := make([]byte, 4)
	format.PutU32(b, 0, v)
	return b
}

// U64 encodes v big-endian.
func U64(v uint64) []byte {
	b := make([]byte, 8)
	format.PutU64(b, 0, v)
	return b
}

// Nest wraps inner boxes in a chain of containers, outermost type first.
func Nest(types []string, inner []byte) []byte {
	out := inner
	for i := len(types) - 1; i >= 0; i-- {
		out = Box(types[i], out)
	}
	return out
}

// DeepNest wraps inner in depth containers of the same type.
func DeepNest(typ string, depth int, inner []byte) []byte {
	out := inner
	for i := 0; i < depth; i++ {
		out = Box(typ, out)
	}
	return out
}
