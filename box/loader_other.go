//go:build !linux && !darwin

package box

import (
	"io"
	"os"
)

// Open loads the file into memory on platforms without the mmap loader.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, st.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return &File{path: path, data: buf}, nil
}
