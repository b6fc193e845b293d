// Package format houses low-level decoders for the ISOBMFF/MP4 box wire
// format. The goal is to keep the byte-level parsing focused and independent
// from the public API so higher-level packages can orchestrate the data in a
// more ergonomic form.
package format

var (
	// UUIDType is the reserved four-byte type code signalling that a box
	// carries a 16-byte extended type identifier after its size fields.
	// Layout:
	//   0x00  'u' 'u' 'i' 'd'
	UUIDType = []byte{'u', 'u', 'i', 'd'}
)

const (
	// CompactHeaderSize is the size of the smallest box header: a 4-byte
	// big-endian size followed by a 4-byte type code.
	CompactHeaderSize = 8

	// LargeSizeFieldSize is the size of the optional 64-bit size field that
	// follows the compact header when the 32-bit size is the sentinel 1.
	LargeSizeFieldSize = 8

	// UUIDSize is the size of the extended type identifier carried by
	// 'uuid' boxes.
	UUIDSize = 16

	// FullBoxPrefixSize is the version byte plus 3-byte flags field that
	// opens every FullBox payload.
	FullBoxPrefixSize = 4

	// SizeFieldOffset and TypeFieldOffset locate the two compact header
	// fields relative to the box start.
	SizeFieldOffset = 0
	TypeFieldOffset = 4

	// SizeToEnd is the 32-bit size sentinel meaning "box extends to the end
	// of its enclosing range".
	SizeToEnd = 0

	// SizeIn64Bit is the 32-bit size sentinel meaning "actual size follows
	// as a 64-bit field".
	SizeIn64Bit = 1

	// FourCCSize is the size of a four-character type code.
	FourCCSize = 4

	// BrandSize is the size of an ftyp brand entry.
	BrandSize = 4
)
