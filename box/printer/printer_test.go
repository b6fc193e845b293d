package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxtools/boxkit/box"
	"github.com/boxtools/boxkit/internal/testmp4"
)

func parseFixture(t *testing.T, decode bool) []*box.Node {
	t.Helper()
	data := testmp4.Concat(
		testmp4.Ftyp("isom", 512, "isom", "iso2"),
		testmp4.Box("moov",
			testmp4.FullBox("mvhd", 0, 0,
				testmp4.Concat(testmp4.U32(0), testmp4.U32(0), testmp4.U32(600), testmp4.U32(7200), make([]byte, 80))),
		),
		testmp4.Box("mdat", make([]byte, 16)),
	)
	roots, err := box.GetBoxes(bytes.NewReader(data), uint64(len(data)), decode)
	require.NoError(t, err)
	return roots
}

func TestTextTree(t *testing.T) {
	roots := parseFixture(t, false)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, roots, Options{}))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ftyp")
	assert.Contains(t, lines[1], "moov (container)")
	assert.Contains(t, lines[2], "mvhd (ver=0, flags=0x000000)")
	assert.True(t, strings.HasPrefix(lines[2], "  "), "children are indented")
	assert.Contains(t, lines[3], "mdat")
}

func TestTextShowDecoded(t *testing.T) {
	roots := parseFixture(t, true)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, roots, Options{ShowDecoded: true}))
	out := buf.String()
	assert.Contains(t, out, "-> major=isom minor=512 compatible=[isom iso2]")
	assert.Contains(t, out, "-> timescale=600 duration=7200")
}

func TestTextMaxDepth(t *testing.T) {
	roots := parseFixture(t, false)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, roots, Options{MaxDepth: 1}))
	assert.NotContains(t, buf.String(), "mvhd")
}

func TestJSONShape(t *testing.T) {
	roots := parseFixture(t, true)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, roots, Options{ShowDecoded: true}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	ftyp := got[0]
	assert.Equal(t, "ftyp", ftyp["typ"])
	assert.Equal(t, "leaf", ftyp["kind"])
	assert.Equal(t, "File Type Box", ftyp["full_name"])
	assert.Equal(t, float64(0), ftyp["offset"])
	assert.Equal(t, float64(8), ftyp["header_size"])
	assert.Nil(t, ftyp["uuid"])
	assert.Nil(t, ftyp["version"])
	assert.Nil(t, ftyp["children"], "leaves have null children")
	assert.Equal(t, "major=isom minor=512 compatible=[isom iso2]", ftyp["decoded"])

	moov := got[1]
	assert.Equal(t, "container", moov["kind"])
	assert.Nil(t, moov["payload_offset"], "containers own no payload")
	children, ok := moov["children"].([]any)
	require.True(t, ok, "containers carry a children array")
	require.Len(t, children, 1)

	mvhd := children[0].(map[string]any)
	assert.Equal(t, "fullbox", mvhd["kind"])
	assert.Equal(t, float64(0), mvhd["version"])
	assert.Equal(t, float64(0), mvhd["flags"])
	assert.NotNil(t, mvhd["payload_offset"])
}

func TestJSONUUIDBox(t *testing.T) {
	id := box.UUID{0xbe, 0x7a, 0xcf, 0xcb, 0x97, 0xa9, 0x42, 0xe8,
		0x9c, 0x71, 0x99, 0x94, 0x91, 0xe3, 0xaf, 0xac}
	data := testmp4.UUIDBox(id, []byte("<xmp/>"))
	roots, err := box.GetBoxes(bytes.NewReader(data), uint64(len(data)), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, roots, Options{}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "uuid", got[0]["kind"])
	assert.Equal(t, "uuid", got[0]["typ"])
	assert.Equal(t, "be7acfcb97a942e89c71999491e3afac", got[0]["uuid"])
}

func TestJSONEmptyContainerHasEmptyArray(t *testing.T) {
	data := testmp4.Box("udta")
	roots, err := box.GetBoxes(bytes.NewReader(data), uint64(len(data)), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, roots, Options{}))
	assert.Contains(t, buf.String(), `"children":[]`)
}

func TestJSONContainedError(t *testing.T) {
	trakBody := testmp4.Concat(testmp4.Box("free", make([]byte, 4)), []byte{1, 2, 3})
	data := testmp4.Box("moov", testmp4.Box("trak", trakBody))
	roots, err := box.GetBoxes(bytes.NewReader(data), uint64(len(data)), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, roots, Options{}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	trak := got[0]["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "leaf", trak["kind"])
	assert.NotNil(t, trak["error"])
}
