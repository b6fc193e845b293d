package box

// Kind classifies a parsed box.
type Kind uint8

const (
	// KindLeaf is a box with an opaque payload.
	KindLeaf Kind = iota
	// KindFullBox is a box whose payload opens with a version byte and a
	// 3-byte flags field.
	KindFullBox
	// KindContainer is a box whose payload is a sequence of child boxes.
	KindContainer
	// KindUUID is a box using a 16-byte extended type identifier.
	KindUUID
)

// String returns the wire-level kind name used in JSON output.
func (k Kind) String() string {
	switch k {
	case KindFullBox:
		return "fullbox"
	case KindContainer:
		return "container"
	case KindUUID:
		return "uuid"
	default:
		return "leaf"
	}
}

// Header is one parsed box header.
type Header struct {
	// Type is the four-byte code. For extended boxes it is the literal
	// "uuid" sentinel; the real identifier is in UUID.
	Type FourCC
	// UUID is the 16-byte extended identifier. Valid only when HasUUID.
	UUID UUID
	// HasUUID reports whether the box used the extended type form.
	HasUUID bool
	// Start is the absolute offset of the box's first header byte.
	Start uint64
	// DeclaredSize is the 32-bit size field as encoded (0 = to range end,
	// 1 = size in the 64-bit large-size field).
	DeclaredSize uint64
	// Size is the resolved total box size including the header.
	Size uint64
	// HeaderSize is the bytes consumed by the header: 8, 16, 24 or 32.
	HeaderSize uint64
}

// End returns the absolute offset one past the last byte of the box.
func (h Header) End() uint64 { return h.Start + h.Size }

// PayloadStart returns the absolute offset of the first payload byte.
func (h Header) PayloadStart() uint64 { return h.Start + h.HeaderSize }

// PayloadSize returns the number of payload bytes.
func (h Header) PayloadSize() uint64 { return h.Size - h.HeaderSize }

// DisplayType returns the identifier to show for the box: the hex uuid for
// extended boxes, the FourCC for everything else.
func (h Header) DisplayType() string {
	if h.HasUUID {
		return h.UUID.String()
	}
	return h.Type.String()
}

// Node is one box in the parsed tree. Nodes are built once during a parse
// and owned exclusively by the caller afterwards; nothing in this package
// retains them.
type Node struct {
	Header

	// Kind is the structural classification of the box.
	Kind Kind

	// Version and Flags are the FullBox prefix fields. Meaningful only
	// when Kind == KindFullBox.
	Version uint8
	Flags   uint32

	// FullName is the human-readable box name, empty when the type is not
	// in the name table.
	FullName string

	// Decoded is the structured payload value when decoding was requested
	// and a decoder matched. DecodeErr carries a decoder failure; both are
	// nil for undecoded boxes.
	Decoded   *Value
	DecodeErr error

	// Children are the parsed child boxes, in file order. Non-nil exactly
	// when the node is a container (or a uuid box registered as
	// container-like).
	Children []*Node

	// Err marks a structural parse failure contained inside this box.
	// A node with Err set has been downgraded to a leaf: the rest of the
	// file still parses, only this subtree is opaque.
	Err error
}
