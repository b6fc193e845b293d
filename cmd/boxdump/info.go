package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boxtools/boxkit/box"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize file brands, movie timing and tracks",
		Long: `The info command prints a one-screen summary of a file: its brands,
the movie timescale and duration, and the codec, dimensions and language of
each track.

Example:
  boxdump info movie.mp4
  boxdump info movie.mp4 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
}

type trackInfo struct {
	TrackID   uint32   `json:"track_id"`
	Handler   string   `json:"handler"`
	Codecs    []string `json:"codecs,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Timescale uint32   `json:"timescale"`
	Duration  uint64   `json:"duration"`
	Language  string   `json:"language,omitempty"`
}

type fileInfo struct {
	Path             string      `json:"path"`
	SizeBytes        uint64      `json:"size_bytes"`
	MajorBrand       string      `json:"major_brand,omitempty"`
	MinorVersion     uint32      `json:"minor_version"`
	CompatibleBrands []string    `json:"compatible_brands,omitempty"`
	MovieTimescale   uint32      `json:"movie_timescale"`
	MovieDuration    uint64      `json:"movie_duration"`
	Tracks           []trackInfo `json:"tracks"`
}

func runInfo(args []string) error {
	path := args[0]

	f, err := box.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	roots, err := f.Boxes(true)
	if err != nil {
		return fmt.Errorf("failed to parse box tree: %w", err)
	}

	info := buildFileInfo(path, f.Size(), roots)

	if jsonOut {
		return printJSON(info)
	}

	printInfo("File: %s (%d bytes)\n", info.Path, info.SizeBytes)
	if info.MajorBrand != "" {
		printInfo("Brand: %s/%d", info.MajorBrand, info.MinorVersion)
		if len(info.CompatibleBrands) > 0 {
			printInfo(" compatible [%s]", strings.Join(info.CompatibleBrands, " "))
		}
		printInfo("\n")
	}
	if info.MovieTimescale > 0 {
		printInfo("Movie: timescale=%d duration=%d (%.3fs)\n",
			info.MovieTimescale, info.MovieDuration,
			float64(info.MovieDuration)/float64(info.MovieTimescale))
	}
	for _, tr := range info.Tracks {
		printInfo("Track %d: %s", tr.TrackID, tr.Handler)
		if len(tr.Codecs) > 0 {
			printInfo(" %s", strings.Join(tr.Codecs, ","))
		}
		if tr.Width > 0 && tr.Height > 0 {
			printInfo(" %gx%g", tr.Width, tr.Height)
		}
		if tr.Timescale > 0 {
			printInfo(" timescale=%d duration=%d", tr.Timescale, tr.Duration)
		}
		// Elide the unknown-language sentinels ("???" and the all-zero code).
		if tr.Language != "" && tr.Language != "???" && tr.Language != "\x60\x60\x60" {
			printInfo(" lang=%s", tr.Language)
		}
		printInfo("\n")
	}
	return nil
}

func buildFileInfo(path string, size uint64, roots []*box.Node) fileInfo {
	info := fileInfo{Path: path, SizeBytes: size, Tracks: []trackInfo{}}

	for _, n := range roots {
		switch {
		case n.Type == box.CC("ftyp") && n.Decoded != nil:
			if ft, ok := n.Decoded.Struct.(*box.FileType); ok {
				info.MajorBrand = ft.MajorBrand
				info.MinorVersion = ft.MinorVersion
				info.CompatibleBrands = ft.CompatibleBrands
			}
		case n.Type == box.CC("moov"):
			collectMovieInfo(n, &info)
		}
	}
	return info
}

func collectMovieInfo(moov *box.Node, info *fileInfo) {
	for _, child := range moov.Children {
		switch child.Type {
		case box.CC("mvhd"):
			if mh, ok := decodedAs[*box.MovieHeader](child); ok {
				info.MovieTimescale = mh.Timescale
				info.MovieDuration = mh.Duration
			}
		case box.CC("trak"):
			info.Tracks = append(info.Tracks, collectTrackInfo(child))
		}
	}
}

func collectTrackInfo(trak *box.Node) trackInfo {
	var tr trackInfo

	for _, child := range trak.Children {
		switch child.Type {
		case box.CC("tkhd"):
			if th, ok := decodedAs[*box.TrackHeader](child); ok {
				tr.TrackID = th.TrackID
				tr.Width = th.Width
				tr.Height = th.Height
			}
		case box.CC("mdia"):
			collectMediaInfo(child, &tr)
		}
	}
	return tr
}

func collectMediaInfo(mdia *box.Node, tr *trackInfo) {
	for _, child := range mdia.Children {
		switch child.Type {
		case box.CC("mdhd"):
			if mh, ok := decodedAs[*box.MediaHeader](child); ok {
				tr.Timescale = mh.Timescale
				tr.Duration = mh.Duration
				tr.Language = mh.Language
			}
		case box.CC("hdlr"):
			if h, ok := decodedAs[*box.Handler](child); ok {
				tr.Handler = h.HandlerType
			}
		case box.CC("minf"):
			for _, mc := range child.Children {
				if mc.Type != box.CC("stbl") {
					continue
				}
				for _, sc := range mc.Children {
					if sc.Type != box.CC("stsd") {
						continue
					}
					if sd, ok := decodedAs[*box.SampleDescription](sc); ok {
						for _, e := range sd.Entries {
							tr.Codecs = append(tr.Codecs, e.Format)
						}
					}
				}
			}
		}
	}
}

func decodedAs[T any](n *box.Node) (T, bool) {
	var zero T
	if n == nil || n.Decoded == nil {
		return zero, false
	}
	v, ok := n.Decoded.Struct.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
