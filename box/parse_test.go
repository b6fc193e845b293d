package box

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxtools/boxkit/internal/format"
	"github.com/boxtools/boxkit/internal/testmp4"
)

func parseBytes(t *testing.T, data []byte, decode bool) []*Node {
	t.Helper()
	roots, err := GetBoxes(bytes.NewReader(data), uint64(len(data)), decode)
	require.NoError(t, err)
	return roots
}

func TestGetBoxesSiblingsAreContiguous(t *testing.T) {
	data := testmp4.Concat(
		testmp4.Ftyp("isom", 512, "isom", "iso2"),
		testmp4.Box("free", make([]byte, 12)),
		testmp4.Box("mdat", make([]byte, 40)),
	)
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 3)

	for i := 1; i < len(roots); i++ {
		assert.Equal(t, roots[i-1].End(), roots[i].Start,
			"box %d must start where box %d ends", i, i-1)
	}
	assert.Equal(t, uint64(len(data)), roots[len(roots)-1].End(),
		"top-level boxes must cover the whole input")
}

func TestGetBoxesContainerTree(t *testing.T) {
	stbl := testmp4.Box("stbl",
		testmp4.FullBox("stsz", 0, 0, testmp4.Concat(testmp4.U32(1024), testmp4.U32(10))),
	)
	data := testmp4.Concat(
		testmp4.Ftyp("isom", 0, "isom"),
		testmp4.Box("moov",
			testmp4.Box("trak",
				testmp4.Box("mdia",
					testmp4.Box("minf", stbl),
				),
			),
		),
	)
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 2)

	moov := roots[1]
	assert.Equal(t, KindContainer, moov.Kind)
	require.Len(t, moov.Children, 1)

	trak := moov.Children[0]
	assert.Equal(t, "Track Box", trak.FullName)
	require.Len(t, trak.Children, 1)

	minf := trak.Children[0].Children[0]
	require.Len(t, minf.Children, 1)
	stblNode := minf.Children[0]
	assert.Equal(t, KindContainer, stblNode.Kind)
	require.Len(t, stblNode.Children, 1)

	stsz := stblNode.Children[0]
	assert.Equal(t, KindFullBox, stsz.Kind)
	assert.Equal(t, uint8(0), stsz.Version)
	assert.Equal(t, uint32(0), stsz.Flags)

	// Children start inside the parent payload and end at the parent end.
	assert.Equal(t, moov.PayloadStart(), trak.Start)
	assert.Equal(t, moov.End(), trak.End())
}

func TestGetBoxesEmptyContainerHasNonNilChildren(t *testing.T) {
	data := testmp4.Box("udta")
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)
	assert.Equal(t, KindContainer, roots[0].Kind)
	assert.NotNil(t, roots[0].Children)
	assert.Len(t, roots[0].Children, 0)
}

func TestGetBoxesLeafChildrenAreNil(t *testing.T) {
	data := testmp4.Box("mdat", make([]byte, 16))
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)
	assert.Equal(t, KindLeaf, roots[0].Kind)
	assert.Nil(t, roots[0].Children)
}

func TestGetBoxesFullBoxVersionFlags(t *testing.T) {
	data := testmp4.FullBox("tfdt", 1, 0x000003, testmp4.U64(90000))
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)

	n := roots[0]
	assert.Equal(t, KindFullBox, n.Kind)
	assert.Equal(t, uint8(1), n.Version)
	assert.Equal(t, uint32(3), n.Flags)
}

func TestGetBoxesFullBoxTypeWithShortPayloadIsLeaf(t *testing.T) {
	// A 2-byte payload cannot hold version/flags.
	data := testmp4.Box("stco", []byte{0, 0})
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)
	assert.Equal(t, KindLeaf, roots[0].Kind)
}

func TestGetBoxesSizeToEndSpansRemainder(t *testing.T) {
	data := make([]byte, 1024)
	copy(data, testmp4.Box("free", make([]byte, 892)))
	copy(data[900:], testmp4.ToEndBox("mdat", make([]byte, 116)))

	roots := parseBytes(t, data, false)
	require.Len(t, roots, 2)
	mdat := roots[1]
	assert.Equal(t, uint64(900), mdat.Start)
	assert.Equal(t, uint64(124), mdat.Size)
	assert.Equal(t, uint64(1024), mdat.End())
}

func TestGetBoxesLargeSize(t *testing.T) {
	data := testmp4.LargeBox("mdat", make([]byte, 256))
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)

	n := roots[0]
	assert.Equal(t, uint64(16), n.HeaderSize)
	assert.Equal(t, uint64(272), n.Size)
	assert.Equal(t, uint64(256), n.PayloadSize())
}

func TestGetBoxesUUIDBox(t *testing.T) {
	data := testmp4.UUIDBox(testUUID, []byte("opaque payload"))
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)

	n := roots[0]
	assert.Equal(t, KindUUID, n.Kind)
	assert.True(t, n.HasUUID)
	assert.Equal(t, testUUID, n.UUID)
	assert.Equal(t, uint64(24), n.HeaderSize)
	assert.Nil(t, n.Children, "uuid boxes are opaque unless registered as containers")
}

func TestGetBoxesUUIDContainer(t *testing.T) {
	inner := testmp4.Box("free", make([]byte, 4))
	data := testmp4.UUIDBox(testUUID, inner)

	reg := NewRegistry().MarkUUIDContainer(testUUID)
	roots, err := Parse(bytes.NewReader(data), uint64(len(data)), Options{Registry: reg})
	require.NoError(t, err)
	require.Len(t, roots, 1)

	n := roots[0]
	assert.Equal(t, KindUUID, n.Kind)
	require.Len(t, n.Children, 1)
	assert.Equal(t, CC("free"), n.Children[0].Type)
	assert.Equal(t, n.PayloadStart(), n.Children[0].Start)
}

func TestGetBoxesTrailingBytesAtTopLevelFail(t *testing.T) {
	data := testmp4.Concat(testmp4.Box("free", make([]byte, 4)), []byte{0, 0, 0})
	_, err := GetBoxes(bytes.NewReader(data), uint64(len(data)), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, format.ErrTrailingBytes)
}

func TestGetBoxesCorruptChildIsContained(t *testing.T) {
	// The trak declares more space than its children fill, leaving a
	// 5-byte remainder that cannot hold a header.
	trakBody := testmp4.Concat(testmp4.Box("free", make([]byte, 4)), []byte{1, 2, 3, 4, 5})
	data := testmp4.Concat(
		testmp4.Box("moov", testmp4.Box("trak", trakBody)),
		testmp4.Box("mdat", make([]byte, 8)),
	)

	roots := parseBytes(t, data, false)
	require.Len(t, roots, 2, "siblings after the damaged subtree still parse")

	moov := roots[0]
	require.Len(t, moov.Children, 1)
	trak := moov.Children[0]
	assert.Equal(t, KindLeaf, trak.Kind, "damaged container degrades to a leaf")
	assert.Nil(t, trak.Children)
	require.Error(t, trak.Err)
	assert.ErrorIs(t, trak.Err, format.ErrTrailingBytes)
	assert.NoError(t, moov.Err, "the error stays on the box that owns the bad range")
}

func TestGetBoxesChildOverrunIsContained(t *testing.T) {
	// Child declares a size past its parent's end.
	bad := testmp4.Concat(testmp4.U32(4096), []byte("free"), make([]byte, 8))
	data := testmp4.Box("moov", bad)

	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)
	moov := roots[0]
	assert.Equal(t, KindLeaf, moov.Kind)
	require.Error(t, moov.Err)
	assert.ErrorIs(t, moov.Err, format.ErrOutOfBounds)
}

func TestGetBoxesDamagedUUIDContainerStaysUUID(t *testing.T) {
	data := testmp4.UUIDBox(testUUID, []byte{1, 2, 3})
	reg := NewRegistry().MarkUUIDContainer(testUUID)
	roots, err := Parse(bytes.NewReader(data), uint64(len(data)), Options{Registry: reg})
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, KindUUID, roots[0].Kind)
	assert.ErrorIs(t, roots[0].Err, format.ErrTrailingBytes)
}

func TestGetBoxesDepthCeiling(t *testing.T) {
	data := testmp4.DeepNest("moov", 100, testmp4.Box("free"))
	roots := parseBytes(t, data, false)
	require.Len(t, roots, 1)

	// Walk down: exactly DefaultMaxDepth container levels parse, then one
	// node carries the depth marker instead of recursing.
	n := roots[0]
	depth := 1
	for n.Err == nil {
		require.Len(t, n.Children, 1, "depth %d", depth)
		n = n.Children[0]
		depth++
	}
	assert.Equal(t, DefaultMaxDepth+1, depth)
	assert.ErrorIs(t, n.Err, format.ErrDepthExceeded)
	assert.Equal(t, KindLeaf, n.Kind)
	assert.Nil(t, n.Children)
}

func TestGetBoxesMaxDepthOption(t *testing.T) {
	data := testmp4.DeepNest("moov", 5, testmp4.Box("free"))
	roots, err := Parse(bytes.NewReader(data), uint64(len(data)), Options{MaxDepth: 3})
	require.NoError(t, err)

	n := roots[0]
	for n.Err == nil {
		require.Len(t, n.Children, 1)
		n = n.Children[0]
	}
	assert.ErrorIs(t, n.Err, format.ErrDepthExceeded)
}

func TestGetBoxesDecodeFtyp(t *testing.T) {
	data := testmp4.Ftyp("isom", 512, "isom", "iso2", "avc1", "mp41")
	require.Len(t, data, 32)

	roots := parseBytes(t, data, true)
	require.Len(t, roots, 1)

	n := roots[0]
	require.NotNil(t, n.Decoded)
	assert.NoError(t, n.DecodeErr)

	ft, ok := n.Decoded.Struct.(*FileType)
	require.True(t, ok)
	assert.Equal(t, "isom", ft.MajorBrand)
	assert.Equal(t, uint32(512), ft.MinorVersion)
	assert.Equal(t, []string{"isom", "iso2", "avc1", "mp41"}, ft.CompatibleBrands)
}

func TestGetBoxesDecodeFailureIsContained(t *testing.T) {
	// A brand list that is not a multiple of 4 fails the ftyp decoder but
	// not the parse.
	data := testmp4.Box("ftyp", testmp4.Concat([]byte("isom"), testmp4.U32(0), []byte("is")))
	roots := parseBytes(t, data, true)
	require.Len(t, roots, 1)

	n := roots[0]
	assert.Nil(t, n.Decoded)
	assert.Error(t, n.DecodeErr)
	assert.NoError(t, n.Err)
}

func TestGetBoxesUnregisteredTypeDecodesToNil(t *testing.T) {
	data := testmp4.Box("wxyz", make([]byte, 8))
	roots := parseBytes(t, data, true)
	require.Len(t, roots, 1)
	assert.Nil(t, roots[0].Decoded)
	assert.NoError(t, roots[0].DecodeErr)
}

func TestGetBoxesDecodeDoesNotChangeStructure(t *testing.T) {
	data := testmp4.Concat(
		testmp4.Ftyp("isom", 512, "isom"),
		testmp4.Box("moov",
			testmp4.FullBox("mvhd", 0, 0, make([]byte, 96)),
		),
	)
	plain := parseBytes(t, data, false)
	decoded := parseBytes(t, data, true)

	require.Equal(t, len(plain), len(decoded))
	var flatA, flatB []*Node
	Walk(plain, func(n *Node, _ int) bool { flatA = append(flatA, n); return true })
	Walk(decoded, func(n *Node, _ int) bool { flatB = append(flatB, n); return true })
	require.Equal(t, len(flatA), len(flatB))
	for i := range flatA {
		assert.Equal(t, flatA[i].Header, flatB[i].Header)
		assert.Equal(t, flatA[i].Kind, flatB[i].Kind)
	}
}

func TestGetBoxesEmptyInput(t *testing.T) {
	roots, err := GetBoxes(bytes.NewReader(nil), 0, false)
	require.NoError(t, err)
	assert.Empty(t, roots)
}
