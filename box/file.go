package box

import (
	"bytes"
)

// File is an ISOBMFF file opened for parsing. On unix platforms the file is
// memory-mapped read-only; elsewhere it is read fully into memory. Either
// way the bytes behind Reader stay valid until Close.
type File struct {
	path  string
	data  []byte
	unmap func() error
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Size returns the file length in bytes.
func (f *File) Size() uint64 { return uint64(len(f.data)) }

// Reader returns a fresh seekable reader over the whole file.
func (f *File) Reader() *bytes.Reader { return bytes.NewReader(f.data) }

// Boxes parses the full box tree. When decode is set, registered decoders
// run on matching payloads.
func (f *File) Boxes(decode bool) ([]*Node, error) {
	return GetBoxes(f.Reader(), f.Size(), decode)
}

// BoxesWith parses the full box tree with explicit options.
func (f *File) BoxesWith(opts Options) ([]*Node, error) {
	return Parse(f.Reader(), f.Size(), opts)
}

// Close releases the mapping or buffer. The File must not be used after.
func (f *File) Close() error {
	f.data = nil
	if f.unmap != nil {
		u := f.unmap
		f.unmap = nil
		return u()
	}
	return nil
}
