// Package samples reconstructs per-sample timing and file placement from a
// track's sample tables (stts, ctts, stsc, stsz, stss, stco/co64).
package samples

import (
	"fmt"
	"io"

	"github.com/boxtools/boxkit/box"
)

// SampleInfo describes one sample of a track.
type SampleInfo struct {
	// Index is the 0-based sample index.
	Index uint32 `json:"index"`
	// DTS is the decode timestamp in track timescale units.
	DTS uint64 `json:"dts"`
	// PTS is the presentation timestamp: DTS plus the composition offset.
	PTS uint64 `json:"pts"`
	// StartTime is the PTS in seconds.
	StartTime float64 `json:"start_time"`
	// Duration is the sample duration in timescale units.
	Duration uint32 `json:"duration"`
	// RenderedOffset is the composition offset, zero when no ctts exists.
	RenderedOffset int64 `json:"rendered_offset"`
	// FileOffset is the sample's absolute byte position in the file.
	FileOffset uint64 `json:"file_offset"`
	// Size is the sample length in bytes.
	Size uint32 `json:"size"`
	// Sync marks sync samples (keyframes). All samples are sync when the
	// track has no stss box.
	Sync bool `json:"is_sync"`
}

// TrackSamples is the full sample map of one track.
type TrackSamples struct {
	TrackID     uint32       `json:"track_id"`
	HandlerType string       `json:"handler_type"`
	Timescale   uint32       `json:"timescale"`
	Duration    uint64       `json:"duration"`
	SampleCount uint32       `json:"sample_count"`
	Samples     []SampleInfo `json:"samples"`
}

// FromReader parses the box tree covering [0, size) and extracts sample
// information for every track under every moov box.
func FromReader(r io.ReadSeeker, size uint64) ([]TrackSamples, error) {
	roots, err := box.GetBoxes(r, size, true)
	if err != nil {
		return nil, fmt.Errorf("samples: parse box tree: %w", err)
	}

	var out []TrackSamples
	for _, root := range roots {
		if root.Type != box.CC("moov") {
			continue
		}
		for _, child := range root.Children {
			if child.Type != box.CC("trak") {
				continue
			}
			ts, err := ExtractTrack(child)
			if err != nil {
				return nil, err
			}
			out = append(out, ts)
		}
	}
	return out, nil
}

// FromFile opens path and extracts sample information for every track.
func FromFile(path string) ([]TrackSamples, error) {
	f, err := box.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f.Reader(), f.Size())
}

// ExtractTrack builds the sample map for one trak subtree. The subtree must
// have been parsed with decoding enabled, since the sample tables are read
// from the decoded values.
func ExtractTrack(trak *box.Node) (TrackSamples, error) {
	trackID, err := findTrackID(trak)
	if err != nil {
		return TrackSamples{}, err
	}
	handler, timescale, duration := findMediaInfo(trak)

	tables := collectTables(findStbl(trak))
	built := buildSamples(tables, timescale)

	return TrackSamples{
		TrackID:     trackID,
		HandlerType: handler,
		Timescale:   timescale,
		Duration:    duration,
		SampleCount: uint32(len(built)),
		Samples:     built,
	}, nil
}

func childByType(n *box.Node, typ string) *box.Node {
	if n == nil {
		return nil
	}
	cc := box.CC(typ)
	for _, child := range n.Children {
		if child.Type == cc {
			return child
		}
	}
	return nil
}

func decodedStruct(n *box.Node) any {
	if n == nil || n.Decoded == nil {
		return nil
	}
	return n.Decoded.Struct
}

func findTrackID(trak *box.Node) (uint32, error) {
	if th, ok := decodedStruct(childByType(trak, "tkhd")).(*box.TrackHeader); ok {
		return th.TrackID, nil
	}
	return 0, fmt.Errorf("samples: trak at %#x has no decodable tkhd", trak.Start)
}

// findMediaInfo reads the handler type, timescale and duration from
// mdia/hdlr and mdia/mdhd, falling back to a video track at 1000 units per
// second when either is missing.
func findMediaInfo(trak *box.Node) (string, uint32, uint64) {
	handler := "vide"
	timescale := uint32(1000)
	duration := uint64(0)

	mdia := childByType(trak, "mdia")
	if mh, ok := decodedStruct(childByType(mdia, "mdhd")).(*box.MediaHeader); ok {
		timescale = mh.Timescale
		duration = mh.Duration
	}
	if h, ok := decodedStruct(childByType(mdia, "hdlr")).(*box.Handler); ok {
		handler = h.HandlerType
	}
	return handler, timescale, duration
}

func findStbl(trak *box.Node) *box.Node {
	return childByType(childByType(childByType(trak, "mdia"), "minf"), "stbl")
}

// tables holds the decoded sample table boxes of one track. Any of them may
// be nil.
type tables struct {
	stts *box.TimeToSample
	ctts *box.CompositionOffsets
	stsc *box.SampleToChunk
	stsz *box.SampleSizes
	stss *box.SyncSamples
	offs *box.ChunkOffsets
}

func collectTables(stbl *box.Node) tables {
	var t tables
	if stbl == nil {
		return t
	}
	for _, child := range stbl.Children {
		switch v := decodedStruct(child).(type) {
		case *box.TimeToSample:
			t.stts = v
		case *box.CompositionOffsets:
			t.ctts = v
		case *box.SampleToChunk:
			t.stsc = v
		case *box.SampleSizes:
			t.stsz = v
		case *box.SyncSamples:
			t.stss = v
		case *box.ChunkOffsets:
			// co64 wins over stco when both are present.
			if t.offs == nil || v.Is64 {
				t.offs = v
			}
		}
	}
	return t
}

// buildSamples derives one SampleInfo per stsz entry. Without an stsz there
// is no sample count and the track maps to nothing.
func buildSamples(t tables, timescale uint32) []SampleInfo {
	if t.stsz == nil {
		return nil
	}
	count := t.stsz.SampleCount

	defaultDuration := uint32(1000)
	if timescale > 0 {
		defaultDuration = timescale / 24
	}

	samples := make([]SampleInfo, 0, count)
	var dts uint64
	for i := uint32(0); i < count; i++ {
		duration := defaultDuration
		if d, ok := durationAt(t.stts, i); ok {
			duration = d
		}
		offset := compositionOffsetAt(t.ctts, i)

		pts := dts
		if offset >= 0 {
			pts += uint64(offset)
		} else if neg := uint64(-offset); neg <= pts {
			pts -= neg
		} else {
			pts = 0
		}

		samples = append(samples, SampleInfo{
			Index:          i,
			DTS:            dts,
			PTS:            pts,
			StartTime:      float64(pts) / float64(timescale),
			Duration:       duration,
			RenderedOffset: int64(offset),
			FileOffset:     fileOffsetAt(t, i),
			Size:           sizeAt(t.stsz, i),
			Sync:           isSyncSample(t.stss, i+1),
		})
		dts += uint64(duration)
	}
	return samples
}

// durationAt resolves the stts run covering the sample. Samples past the
// table's coverage reuse the last run's delta.
func durationAt(stts *box.TimeToSample, index uint32) (uint32, bool) {
	if stts == nil || len(stts.Entries) == 0 {
		return 0, false
	}
	var covered uint32
	for _, e := range stts.Entries {
		if index < covered+e.Count {
			return e.Delta, true
		}
		covered += e.Count
	}
	return stts.Entries[len(stts.Entries)-1].Delta, true
}

func compositionOffsetAt(ctts *box.CompositionOffsets, index uint32) int32 {
	if ctts == nil {
		return 0
	}
	var covered uint32
	for _, e := range ctts.Entries {
		if index < covered+e.Count {
			return e.Offset
		}
		covered += e.Count
	}
	return 0
}

func sizeAt(stsz *box.SampleSizes, index uint32) uint32 {
	if stsz == nil {
		return 0
	}
	if stsz.SampleSize > 0 {
		return stsz.SampleSize
	}
	if int(index) < len(stsz.Sizes) {
		return stsz.Sizes[index]
	}
	return 0
}

// isSyncSample checks the 1-based stss table; a track without one is all
// sync samples.
func isSyncSample(stss *box.SyncSamples, sampleNumber uint32) bool {
	if stss == nil {
		return true
	}
	for _, n := range stss.SampleNumbers {
		if n == sampleNumber {
			return true
		}
	}
	return false
}

// fileOffsetAt maps a sample to its absolute byte position: stsc places the
// sample in a chunk, stco/co64 gives the chunk base, and the sizes of the
// preceding samples in the chunk give the offset inside it.
func fileOffsetAt(t tables, index uint32) uint64 {
	if t.stsc == nil || t.stsz == nil || t.offs == nil || len(t.offs.Offsets) == 0 {
		return 0
	}
	chunkCount := uint32(len(t.offs.Offsets))

	target := index + 1 // chunk math is 1-based
	firstInRange := uint32(1)
	var chunkIndex uint32
	var samplesPerChunk uint32
	var chunkInRange uint32
	found := false

	for i, e := range t.stsc.Entries {
		nextFirst := chunkCount + 1
		if i+1 < len(t.stsc.Entries) {
			nextFirst = t.stsc.Entries[i+1].FirstChunk
		}
		if e.SamplesPerChunk == 0 || nextFirst <= e.FirstChunk {
			return 0
		}
		samplesPerChunk = e.SamplesPerChunk
		rangeSamples := uint64(nextFirst-e.FirstChunk) * uint64(samplesPerChunk)

		if uint64(firstInRange)+rangeSamples > uint64(target) {
			inRange := target - firstInRange
			chunkInRange = inRange / samplesPerChunk
			chunkIndex = e.FirstChunk - 1 + chunkInRange
			found = true
			break
		}
		next := uint64(firstInRange) + rangeSamples
		if next > uint64(^uint32(0)) {
			next = uint64(^uint32(0))
		}
		firstInRange = uint32(next)
	}
	if !found || chunkIndex >= chunkCount {
		return 0
	}

	chunkOffset := t.offs.Offsets[chunkIndex]
	sampleInChunk := (target - firstInRange) % samplesPerChunk
	chunkStartSample := firstInRange - 1 + chunkInRange*samplesPerChunk

	var within uint64
	if t.stsz.SampleSize > 0 {
		within = uint64(sampleInChunk) * uint64(t.stsz.SampleSize)
	} else {
		for i := uint32(0); i < sampleInChunk; i++ {
			idx := chunkStartSample + i
			if int(idx) < len(t.stsz.Sizes) {
				within += uint64(t.stsz.Sizes[idx])
			}
		}
	}
	return chunkOffset + within
}
