package format

import (
	"encoding/binary"
	"fmt"
)

// Binary encoding utilities for big-endian integers.
//
// ISOBMFF stores every multi-byte integer in network byte order, so this
// package wraps encoding/binary.BigEndian. The checked variants are for
// payload parsing where the buffer length is attacker-controlled.

// ReadU16 reads a uint16 from the buffer at the given offset in big-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 from the buffer at the given offset in big-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// ReadI32 reads an int32 from the buffer at the given offset in big-endian format.
func ReadI32(b []byte, off int) int32 {
	return int32(binary.BigEndian.Uint32(b[off : off+4]))
}

// ReadU64 reads a uint64 from the buffer at the given offset in big-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.BigEndian.Uint64(b[off : off+8])
}

// PutU16 writes a uint16 to the buffer at the given offset in big-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 to the buffer at the given offset in big-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 to the buffer at the given offset in big-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.BigEndian.PutUint64(b[off:off+8], v)
}

// CheckedReadU16 reads a uint16 with bounds checking.
func CheckedReadU16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, fmt.Errorf("read u16 at %d (len=%d): %w", off, len(b), ErrTruncated)
	}
	return ReadU16(b, off), nil
}

// CheckedReadU32 reads a uint32 with bounds checking.
func CheckedReadU32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, fmt.Errorf("read u32 at %d (len=%d): %w", off, len(b), ErrTruncated)
	}
	return ReadU32(b, off), nil
}

// CheckedReadI32 reads an int32 with bounds checking.
func CheckedReadI32(b []byte, off int) (int32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, fmt.Errorf("read i32 at %d (len=%d): %w", off, len(b), ErrTruncated)
	}
	return ReadI32(b, off), nil
}

// CheckedReadU64 reads a uint64 with bounds checking.
func CheckedReadU64(b []byte, off int) (uint64, error) {
	if off < 0 || off+8 > len(b) {
		return 0, fmt.Errorf("read u64 at %d (len=%d): %w", off, len(b), ErrTruncated)
	}
	return ReadU64(b, off), nil
}
