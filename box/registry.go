package box

import "fmt"

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// ValueText is a plain one-line summary.
	ValueText ValueKind = iota
	// ValueBytes is an opaque byte payload.
	ValueBytes
	// ValueStruct is a typed table struct plus a text summary.
	ValueStruct
)

// Value is the polymorphic output of a decoder: a text rendering, raw
// bytes, or a structured table with a text summary alongside.
type Value struct {
	Kind   ValueKind
	Text   string
	Bytes  []byte
	Struct any
}

// TextValue builds a text-only value.
func TextValue(format string, args ...any) Value {
	return Value{Kind: ValueText, Text: fmt.Sprintf(format, args...)}
}

// BytesValue builds a raw-bytes value.
func BytesValue(b []byte) Value {
	return Value{Kind: ValueBytes, Bytes: b}
}

// StructValue builds a structured value carrying both the typed table and a
// one-line summary for display.
func StructValue(s any, summary string) Value {
	return Value{Kind: ValueStruct, Struct: s, Text: summary}
}

// String returns the display form of the value.
func (v Value) String() string {
	if v.Kind == ValueBytes {
		return fmt.Sprintf("%d bytes", len(v.Bytes))
	}
	return v.Text
}

// Decoder turns a box's raw payload bytes into a structured value. The
// payload starts immediately after the box header; FullBox decoders parse
// the version and flags prefix themselves.
type Decoder interface {
	Decode(payload []byte, hdr Header) (Value, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(payload []byte, hdr Header) (Value, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(payload []byte, hdr Header) (Value, error) {
	return f(payload, hdr)
}

// Registry maps box type identifiers to payload decoders. Build it before a
// parse and treat it as read-only while any parse that holds it is running;
// concurrent registration during an in-flight parse is not supported.
type Registry struct {
	byType         map[FourCC]Decoder
	byUUID         map[UUID]Decoder
	containerUUIDs map[UUID]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:         make(map[FourCC]Decoder),
		byUUID:         make(map[UUID]Decoder),
		containerUUIDs: make(map[UUID]struct{}),
	}
}

// Register installs a decoder for a four-character type. The last
// registration for a given code wins.
func (reg *Registry) Register(cc FourCC, dec Decoder) *Registry {
	reg.byType[cc] = dec
	return reg
}

// RegisterUUID installs a decoder for a 16-byte extended type identifier.
func (reg *Registry) RegisterUUID(u UUID, dec Decoder) *Registry {
	reg.byUUID[u] = dec
	return reg
}

// MarkUUIDContainer declares that boxes with this extended identifier hold
// child boxes. There is no way to infer this from content, so it is
// registration-time configuration.
func (reg *Registry) MarkUUIDContainer(u UUID) *Registry {
	reg.containerUUIDs[u] = struct{}{}
	return reg
}

// Lookup resolves the decoder for a header: exact four-character match
// first, then the full 16-byte identifier for uuid boxes.
func (reg *Registry) Lookup(hdr Header) (Decoder, bool) {
	if reg == nil {
		return nil, false
	}
	if dec, ok := reg.byType[hdr.Type]; ok {
		return dec, true
	}
	if hdr.HasUUID {
		if dec, ok := reg.byUUID[hdr.UUID]; ok {
			return dec, true
		}
	}
	return nil, false
}

// IsContainerUUID reports whether the identifier was declared container-like.
func (reg *Registry) IsContainerUUID(u UUID) bool {
	if reg == nil {
		return false
	}
	_, ok := reg.containerUUIDs[u]
	return ok
}
