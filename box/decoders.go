package box

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/boxtools/boxkit/internal/format"
)

// Typed tables produced by the built-in decoders. These mirror the wire
// structures closely enough that the samples package can reconstruct
// per-sample timing and offsets from them.

// FileType is the decoded 'ftyp' payload.
type FileType struct {
	MajorBrand       string
	MinorVersion     uint32
	CompatibleBrands []string
}

// MovieHeader is the decoded 'mvhd' payload, reduced to the fields callers
// actually want.
type MovieHeader struct {
	Version   uint8
	Timescale uint32
	Duration  uint64
}

// TrackHeader is the decoded 'tkhd' payload. Width and Height are the
// 16.16 fixed-point dimensions converted to float; zero when the payload is
// too short to carry them.
type TrackHeader struct {
	Version  uint8
	TrackID  uint32
	Duration uint64
	Width    float64
	Height   float64
}

// MediaHeader is the decoded 'mdhd' payload. Language is the unpacked
// ISO-639-2/T code, "???" when missing.
type MediaHeader struct {
	Version   uint8
	Timescale uint32
	Duration  uint64
	Language  string
}

// Handler is the decoded 'hdlr' payload.
type Handler struct {
	HandlerType string
	Name        string
}

// SegmentIndex is the decoded 'sidx' payload summary.
type SegmentIndex struct {
	Timescale                uint32
	EarliestPresentationTime uint64
	FirstOffset              uint64
	ReferenceCount           uint16
}

// SampleEntry is one entry of a sample description table.
type SampleEntry struct {
	Format string
	Size   uint32
	Width  uint16
	Height uint16
}

// SampleDescription is the decoded 'stsd' payload.
type SampleDescription struct {
	Entries []SampleEntry
}

// TimeToSampleEntry is one run of equal-duration samples.
type TimeToSampleEntry struct {
	Count uint32
	Delta uint32
}

// TimeToSample is the decoded 'stts' payload.
type TimeToSample struct {
	Entries []TimeToSampleEntry
}

// CompositionOffsetEntry is one run of equal composition offsets.
type CompositionOffsetEntry struct {
	Count  uint32
	Offset int32
}

// CompositionOffsets is the decoded 'ctts' payload. Version 0 stores
// unsigned offsets, version 1 signed; both land in Offset.
type CompositionOffsets struct {
	Version uint8
	Entries []CompositionOffsetEntry
}

// SampleToChunkEntry is one 'stsc' run.
type SampleToChunkEntry struct {
	FirstChunk       uint32
	SamplesPerChunk  uint32
	DescriptionIndex uint32
}

// SampleToChunk is the decoded 'stsc' payload.
type SampleToChunk struct {
	Entries []SampleToChunkEntry
}

// SampleSizes is the decoded 'stsz' payload. SampleSize non-zero means all
// samples share that size and Sizes is empty.
type SampleSizes struct {
	SampleSize  uint32
	SampleCount uint32
	Sizes       []uint32
}

// SyncSamples is the decoded 'stss' payload. Numbers are 1-based.
type SyncSamples struct {
	SampleNumbers []uint32
}

// ChunkOffsets is the decoded 'stco' or 'co64' payload, widened to 64 bits
// either way.
type ChunkOffsets struct {
	Is64    bool
	Offsets []uint64
}

// EditListEntry is one 'elst' edit.
type EditListEntry struct {
	Duration  uint64
	MediaTime int64
	RateInt   int16
	RateFrac  int16
}

// EditList is the decoded 'elst' payload.
type EditList struct {
	Version uint8
	Entries []EditListEntry
}

// UserDataText is a decoded QuickTime international-text user-data atom.
type UserDataText struct {
	Text     string
	Language string
}

// DefaultRegistry returns a registry with all built-in decoders installed.
// Each call builds a fresh registry, so callers may extend it freely.
func DefaultRegistry() *Registry {
	reg := NewRegistry().
		Register(CC("ftyp"), DecoderFunc(decodeFtyp)).
		Register(CC("styp"), DecoderFunc(decodeFtyp)).
		Register(CC("mvhd"), DecoderFunc(decodeMvhd)).
		Register(CC("tkhd"), DecoderFunc(decodeTkhd)).
		Register(CC("mdhd"), DecoderFunc(decodeMdhd)).
		Register(CC("hdlr"), DecoderFunc(decodeHdlr)).
		Register(CC("sidx"), DecoderFunc(decodeSidx)).
		Register(CC("stsd"), DecoderFunc(decodeStsd)).
		Register(CC("stts"), DecoderFunc(decodeStts)).
		Register(CC("stss"), DecoderFunc(decodeStss)).
		Register(CC("ctts"), DecoderFunc(decodeCtts)).
		Register(CC("stsc"), DecoderFunc(decodeStsc)).
		Register(CC("stsz"), DecoderFunc(decodeStsz)).
		Register(CC("stco"), DecoderFunc(decodeStco)).
		Register(CC("co64"), DecoderFunc(decodeCo64)).
		Register(CC("elst"), DecoderFunc(decodeElst))
	for _, cc := range []string{"\xa9nam", "\xa9ART", "\xa9alb", "\xa9cmt", "\xa9day", "\xa9gen", "\xa9too", "cprt"} {
		reg.Register(CC(cc), DecoderFunc(decodeUserDataText))
	}
	return reg
}

// fullBoxPrefix splits a FullBox payload into its version, flags, and body.
func fullBoxPrefix(p []byte, typ FourCC) (uint8, uint32, []byte, error) {
	if len(p) < format.FullBoxPrefixSize {
		return 0, 0, nil, fmt.Errorf("%s: payload too short for version/flags (%d bytes)", typ, len(p))
	}
	flags := uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
	return p[0], flags, p[format.FullBoxPrefixSize:], nil
}

// langFromU16 unpacks the 15-bit packed ISO-639-2/T language code used by
// mdhd and the copyright box.
func langFromU16(code uint16) string {
	return string([]byte{
		byte((code>>10)&0x1f) + 0x60,
		byte((code>>5)&0x1f) + 0x60,
		byte(code&0x1f) + 0x60,
	})
}

// entryCap bounds a table preallocation by what the payload can actually
// hold, so a hostile entry count cannot force a giant allocation.
func entryCap(declared uint32, remaining, entrySize int) int {
	most := remaining / entrySize
	if int(declared) < most {
		return int(declared)
	}
	return most
}

func decodeFtyp(p []byte, hdr Header) (Value, error) {
	if len(p) < 2*format.BrandSize {
		return Value{}, fmt.Errorf("%s: payload too short (%d bytes)", hdr.Type, len(p))
	}
	if (len(p)-2*format.BrandSize)%format.BrandSize != 0 {
		return Value{}, fmt.Errorf("%s: compatible brand list of %d bytes is not a multiple of %d",
			hdr.Type, len(p)-2*format.BrandSize, format.BrandSize)
	}
	ft := FileType{
		MajorBrand:   string(p[:format.BrandSize]),
		MinorVersion: format.ReadU32(p, format.BrandSize),
	}
	for off := 2 * format.BrandSize; off < len(p); off += format.BrandSize {
		ft.CompatibleBrands = append(ft.CompatibleBrands, string(p[off:off+format.BrandSize]))
	}
	return StructValue(&ft, fmt.Sprintf("major=%s minor=%d compatible=%v",
		ft.MajorBrand, ft.MinorVersion, ft.CompatibleBrands)), nil
}

func decodeMvhd(p []byte, hdr Header) (Value, error) {
	version, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	mh := MovieHeader{Version: version}
	if version == 1 {
		// creation(8) modification(8) timescale(4) duration(8)
		if mh.Timescale, err = format.CheckedReadU32(body, 16); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		if mh.Duration, err = format.CheckedReadU64(body, 20); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
	} else {
		// creation(4) modification(4) timescale(4) duration(4)
		if mh.Timescale, err = format.CheckedReadU32(body, 8); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		d32, err := format.CheckedReadU32(body, 12)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		mh.Duration = uint64(d32)
	}
	return StructValue(&mh, fmt.Sprintf("timescale=%d duration=%d", mh.Timescale, mh.Duration)), nil
}

func decodeTkhd(p []byte, hdr Header) (Value, error) {
	version, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	th := TrackHeader{Version: version}
	var off int
	if version == 1 {
		// creation(8) modification(8) track_id(4) reserved(4) duration(8)
		if th.TrackID, err = format.CheckedReadU32(body, 16); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		if th.Duration, err = format.CheckedReadU64(body, 24); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		off = 32
	} else {
		// creation(4) modification(4) track_id(4) reserved(4) duration(4)
		if th.TrackID, err = format.CheckedReadU32(body, 8); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		d32, err := format.CheckedReadU32(body, 16)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		th.Duration = uint64(d32)
		off = 20
	}

	// reserved(8) layer(2) alternate_group(2) volume(2) reserved(2) matrix(36)
	off += 8 + 8 + 36
	w, werr := format.CheckedReadU32(body, off)
	h, herr := format.CheckedReadU32(body, off+4)
	if werr != nil || herr != nil {
		// Track and duration are still usable on a short payload.
		return StructValue(&th, fmt.Sprintf("track_id=%d duration=%d (no width/height, short payload)",
			th.TrackID, th.Duration)), nil
	}
	th.Width = float64(w) / 65536.0
	th.Height = float64(h) / 65536.0
	return StructValue(&th, fmt.Sprintf("track_id=%d duration=%d width=%g height=%g",
		th.TrackID, th.Duration, th.Width, th.Height)), nil
}

func decodeMdhd(p []byte, hdr Header) (Value, error) {
	version, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	mh := MediaHeader{Version: version, Language: "???"}
	var off int
	if version == 1 {
		if mh.Timescale, err = format.CheckedReadU32(body, 16); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		if mh.Duration, err = format.CheckedReadU64(body, 20); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		off = 28
	} else {
		if mh.Timescale, err = format.CheckedReadU32(body, 8); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		d32, err := format.CheckedReadU32(body, 12)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		mh.Duration = uint64(d32)
		off = 16
	}
	if lang, err := format.CheckedReadU16(body, off); err == nil {
		mh.Language = langFromU16(lang)
	}
	return StructValue(&mh, fmt.Sprintf("timescale=%d duration=%d language=%s",
		mh.Timescale, mh.Duration, mh.Language)), nil
}

func decodeHdlr(p []byte, hdr Header) (Value, error) {
	_, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	// pre_defined(4) handler_type(4) reserved(12) name(cstring)
	if len(body) < 8 {
		return Value{}, fmt.Errorf("%s: payload too short (%d bytes)", hdr.Type, len(p))
	}
	h := Handler{HandlerType: string(body[4:8])}
	if len(body) > 20 {
		name := body[20:]
		for len(name) > 0 && name[len(name)-1] == 0 {
			name = name[:len(name)-1]
		}
		h.Name = string(name)
	}
	return StructValue(&h, fmt.Sprintf("handler=%s name=%q", h.HandlerType, h.Name)), nil
}

func decodeSidx(p []byte, hdr Header) (Value, error) {
	version, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	si := SegmentIndex{}
	// reference_id(4) timescale(4)
	if si.Timescale, err = format.CheckedReadU32(body, 4); err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	off := 8
	if version == 1 {
		if si.EarliestPresentationTime, err = format.CheckedReadU64(body, off); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		if si.FirstOffset, err = format.CheckedReadU64(body, off+8); err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		off += 16
	} else {
		e32, err := format.CheckedReadU32(body, off)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		f32, err := format.CheckedReadU32(body, off+4)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
		}
		si.EarliestPresentationTime = uint64(e32)
		si.FirstOffset = uint64(f32)
		off += 8
	}
	// reserved(2) reference_count(2)
	if si.ReferenceCount, err = format.CheckedReadU16(body, off+2); err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	return StructValue(&si, fmt.Sprintf(
		"timescale=%d earliest_presentation_time=%d first_offset=%d references=%d",
		si.Timescale, si.EarliestPresentationTime, si.FirstOffset, si.ReferenceCount)), nil
}

func decodeStsd(p []byte, hdr Header) (Value, error) {
	_, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	count, err := format.CheckedReadU32(body, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	sd := SampleDescription{Entries: make([]SampleEntry, 0, entryCap(count, len(body)-4, 16))}
	off := 4
	for i := uint32(0); i < count; i++ {
		size, err := format.CheckedReadU32(body, off)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		if size < 8 || off+int(size) > len(body) {
			return Value{}, fmt.Errorf("%s entry %d: bad entry size %d", hdr.Type, i, size)
		}
		entry := SampleEntry{Size: size, Format: FourCC{body[off+4], body[off+5], body[off+6], body[off+7]}.String()}
		// VisualSampleEntry keeps width/height at fixed offsets:
		// reserved(6) data_reference_index(2) pre_defined(2+2+4+4+4) then WxH.
		if size >= 86 {
			entry.Width = format.ReadU16(body, off+8+24)
			entry.Height = format.ReadU16(body, off+8+26)
		}
		sd.Entries = append(sd.Entries, entry)
		off += int(size)
	}
	descs := make([]string, 0, len(sd.Entries))
	for _, e := range sd.Entries {
		if e.Width > 0 && e.Height > 0 {
			descs = append(descs, fmt.Sprintf("%s %dx%d (size=%d)", e.Format, e.Width, e.Height, e.Size))
		} else {
			descs = append(descs, fmt.Sprintf("%s (size=%d)", e.Format, e.Size))
		}
	}
	return StructValue(&sd, fmt.Sprintf("entries=%d: %v", count, descs)), nil
}

func decodeStts(p []byte, hdr Header) (Value, error) {
	_, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	count, err := format.CheckedReadU32(body, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	tt := TimeToSample{Entries: make([]TimeToSampleEntry, 0, entryCap(count, len(body)-4, 8))}
	off := 4
	for i := uint32(0); i < count; i++ {
		c, err := format.CheckedReadU32(body, off)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		d, err := format.CheckedReadU32(body, off+4)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		tt.Entries = append(tt.Entries, TimeToSampleEntry{Count: c, Delta: d})
		off += 8
	}
	if len(tt.Entries) == 0 {
		return StructValue(&tt, "entries=0"), nil
	}
	return StructValue(&tt, fmt.Sprintf("entries=%d first: count=%d delta=%d",
		count, tt.Entries[0].Count, tt.Entries[0].Delta)), nil
}

func decodeStss(p []byte, hdr Header) (Value, error) {
	_, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	count, err := format.CheckedReadU32(body, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	ss := SyncSamples{SampleNumbers: make([]uint32, 0, entryCap(count, len(body)-4, 4))}
	off := 4
	for i := uint32(0); i < count; i++ {
		n, err := format.CheckedReadU32(body, off)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		ss.SampleNumbers = append(ss.SampleNumbers, n)
		off += 4
	}
	return StructValue(&ss, fmt.Sprintf("sync_sample_count=%d", count)), nil
}

func decodeCtts(p []byte, hdr Header) (Value, error) {
	version, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	count, err := format.CheckedReadU32(body, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	co := CompositionOffsets{Version: version, Entries: make([]CompositionOffsetEntry, 0, entryCap(count, len(body)-4, 8))}
	off := 4
	for i := uint32(0); i < count; i++ {
		c, err := format.CheckedReadU32(body, off)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		o, err := format.CheckedReadI32(body, off+4)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		co.Entries = append(co.Entries, CompositionOffsetEntry{Count: c, Offset: o})
		off += 8
	}
	return StructValue(&co, fmt.Sprintf("version=%d entries=%d", version, count)), nil
}

func decodeStsc(p []byte, hdr Header) (Value, error) {
	_, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	count, err := format.CheckedReadU32(body, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	sc := SampleToChunk{Entries: make([]SampleToChunkEntry, 0, entryCap(count, len(body)-4, 12))}
	off := 4
	for i := uint32(0); i < count; i++ {
		fc, err := format.CheckedReadU32(body, off)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		spc, err := format.CheckedReadU32(body, off+4)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		sdi, err := format.CheckedReadU32(body, off+8)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		sc.Entries = append(sc.Entries, SampleToChunkEntry{
			FirstChunk: fc, SamplesPerChunk: spc, DescriptionIndex: sdi,
		})
		off += 12
	}
	if len(sc.Entries) == 0 {
		return StructValue(&sc, fmt.Sprintf("entries=%d", count)), nil
	}
	return StructValue(&sc, fmt.Sprintf("entries=%d first: first_chunk=%d samples_per_chunk=%d",
		count, sc.Entries[0].FirstChunk, sc.Entries[0].SamplesPerChunk)), nil
}

func decodeStsz(p []byte, hdr Header) (Value, error) {
	_, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	sz := SampleSizes{}
	if sz.SampleSize, err = format.CheckedReadU32(body, 0); err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	if sz.SampleCount, err = format.CheckedReadU32(body, 4); err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	if sz.SampleSize == 0 {
		sz.Sizes = make([]uint32, 0, entryCap(sz.SampleCount, len(body)-8, 4))
		off := 8
		for i := uint32(0); i < sz.SampleCount; i++ {
			s, err := format.CheckedReadU32(body, off)
			if err != nil {
				return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
			}
			sz.Sizes = append(sz.Sizes, s)
			off += 4
		}
	}
	return StructValue(&sz, fmt.Sprintf("sample_size=%d sample_count=%d", sz.SampleSize, sz.SampleCount)), nil
}

func decodeChunkOffsets(p []byte, hdr Header, is64 bool) (Value, error) {
	_, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	count, err := format.CheckedReadU32(body, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	entrySize := 4
	if is64 {
		entrySize = 8
	}
	co := ChunkOffsets{Is64: is64, Offsets: make([]uint64, 0, entryCap(count, len(body)-4, entrySize))}
	off := 4
	for i := uint32(0); i < count; i++ {
		var v uint64
		if is64 {
			if v, err = format.CheckedReadU64(body, off); err != nil {
				return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
			}
		} else {
			v32, err := format.CheckedReadU32(body, off)
			if err != nil {
				return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
			}
			v = uint64(v32)
		}
		co.Offsets = append(co.Offsets, v)
		off += entrySize
	}
	first := co.Offsets
	if len(first) > 3 {
		first = first[:3]
	}
	return StructValue(&co, fmt.Sprintf("entries=%d first_offsets=%v", count, first)), nil
}

func decodeStco(p []byte, hdr Header) (Value, error) { return decodeChunkOffsets(p, hdr, false) }
func decodeCo64(p []byte, hdr Header) (Value, error) { return decodeChunkOffsets(p, hdr, true) }

func decodeElst(p []byte, hdr Header) (Value, error) {
	version, _, body, err := fullBoxPrefix(p, hdr.Type)
	if err != nil {
		return Value{}, err
	}
	count, err := format.CheckedReadU32(body, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	entrySize := 12
	if version == 1 {
		entrySize = 20
	}
	el := EditList{Version: version, Entries: make([]EditListEntry, 0, entryCap(count, len(body)-4, entrySize))}
	off := 4
	for i := uint32(0); i < count; i++ {
		var entry EditListEntry
		if version == 1 {
			d, err := format.CheckedReadU64(body, off)
			if err != nil {
				return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
			}
			mt, err := format.CheckedReadU64(body, off+8)
			if err != nil {
				return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
			}
			entry.Duration = d
			entry.MediaTime = int64(mt)
			off += 16
		} else {
			d, err := format.CheckedReadU32(body, off)
			if err != nil {
				return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
			}
			mt, err := format.CheckedReadI32(body, off+4)
			if err != nil {
				return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
			}
			entry.Duration = uint64(d)
			entry.MediaTime = int64(mt)
			off += 8
		}
		ri, err := format.CheckedReadU16(body, off)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		rf, err := format.CheckedReadU16(body, off+2)
		if err != nil {
			return Value{}, fmt.Errorf("%s entry %d: %w", hdr.Type, i, err)
		}
		entry.RateInt = int16(ri)
		entry.RateFrac = int16(rf)
		off += 4
		el.Entries = append(el.Entries, entry)
	}
	if len(el.Entries) == 0 {
		return StructValue(&el, fmt.Sprintf("version=%d entries=0", version)), nil
	}
	first := el.Entries[0]
	return StructValue(&el, fmt.Sprintf(
		"version=%d entries=%d first: duration=%d media_time=%d rate=%d/%d",
		version, count, first.Duration, first.MediaTime, first.RateInt, first.RateFrac)), nil
}

// decodeUserDataText handles classic QuickTime international-text atoms
// (©nam, ©too, cprt, ...): a 16-bit size, a 16-bit language code, then text
// encoded in Mac Roman.
func decodeUserDataText(p []byte, hdr Header) (Value, error) {
	size, err := format.CheckedReadU16(p, 0)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	lang, err := format.CheckedReadU16(p, 2)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", hdr.Type, err)
	}
	if int(size) > len(p)-4 {
		return Value{}, fmt.Errorf("%s: text length %d exceeds payload (%d bytes)", hdr.Type, size, len(p)-4)
	}
	raw := p[4 : 4+int(size)]
	text, err := charmap.Macintosh.NewDecoder().Bytes(raw)
	if err != nil {
		return Value{}, fmt.Errorf("%s: decode text: %w", hdr.Type, err)
	}
	ud := UserDataText{Text: string(text)}
	if lang >= 0x400 {
		ud.Language = langFromU16(lang)
	}
	if ud.Language != "" {
		return StructValue(&ud, fmt.Sprintf("%q (%s)", ud.Text, ud.Language)), nil
	}
	return StructValue(&ud, fmt.Sprintf("%q", ud.Text)), nil
}
