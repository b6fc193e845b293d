package box

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxtools/boxkit/internal/testmp4"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.mp4")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenAndParse(t *testing.T) {
	data := testmp4.Concat(
		testmp4.Ftyp("isom", 512, "isom", "iso2"),
		testmp4.Box("moov", testmp4.Box("trak")),
		testmp4.Box("mdat", make([]byte, 32)),
	)
	path := writeTempFile(t, data)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, path, f.Path())
	assert.Equal(t, uint64(len(data)), f.Size())

	roots, err := f.Boxes(true)
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, CC("ftyp"), roots[0].Type)
	require.NotNil(t, roots[0].Decoded)

	// Reader hands out independent cursors over the same bytes.
	buf := make([]byte, 4)
	_, err = f.Reader().Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 24}, buf)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.mp4"))
	assert.Error(t, err)
}

func TestOpenEmptyFile(t *testing.T) {
	path := writeTempFile(t, nil)
	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, uint64(0), f.Size())
	roots, err := f.Boxes(false)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestFileCloseIsIdempotent(t *testing.T) {
	path := writeTempFile(t, testmp4.Box("free"))
	f, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.NoError(t, f.Close())
}
