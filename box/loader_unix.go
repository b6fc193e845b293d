//go:build linux || darwin

package box

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open memory-maps the file read-only.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		return &File{path: path, data: []byte{}}, nil
	}
	if sz > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("box: file too large to map (%d bytes)", sz)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	unmap := func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return &File{path: path, data: data, unmap: unmap}, nil
}
