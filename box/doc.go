// Package box parses the ISOBMFF (MP4/MOV) box structure.
//
// # Overview
//
// This package reads the box tree of an ISO Base Media File Format file:
// the nested size/type framing shared by MP4, MOV, HEIF and fragmented
// streaming formats. It builds an explicit tree of Node values describing
// every box's offsets, kind and children, and can optionally run payload
// decoders for well-known box types.
//
// # Key Types
//
//   - Header: One parsed box header (type, offsets, resolved size)
//   - Node: A box in the parsed tree, with classification and children
//   - FourCC: A four-character box type code
//   - UUID: The 16-byte extended type of 'uuid' boxes
//   - Registry: Pluggable decoder table keyed by FourCC or UUID
//   - Value: A decoded payload (text, bytes, or typed struct)
//   - File: An opened file, memory-mapped where the platform allows
//
// # File Structure
//
// An ISOBMFF file is a flat sequence of boxes, each opening with a 32-bit
// big-endian size and a four-character type:
//
//	[size][type][payload...] [size][type][payload...] ...
//
// A size of 1 moves the real size to a following 64-bit field; a size of 0
// means the box extends to the end of its enclosing range. Container boxes
// (moov, trak, mdia, ...) hold further boxes in their payload, giving the
// tree shape.
//
// # Parsing
//
//	f, err := box.Open("movie.mp4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	roots, err := f.Boxes(true)
//
// GetBoxes and Parse accept any io.ReadSeeker for callers that already hold
// the data. Structural damage inside a box is contained: the damaged box
// becomes an opaque leaf with Err set, and its siblings still parse.
//
// # Decoding
//
// DefaultRegistry carries decoders for the common metadata boxes (ftyp,
// mvhd, tkhd, the sample tables, ...). Callers add their own with
// Registry.Register and Registry.RegisterUUID and pass the registry through
// Options.
package box
