package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxtools/boxkit/samples"
)

var (
	samplesTrackID uint32
	samplesLimit   int
)

func init() {
	cmd := newSamplesCmd()
	cmd.Flags().Uint32Var(&samplesTrackID, "track-id", 0, "Only this track (0 = all tracks)")
	cmd.Flags().IntVar(&samplesLimit, "limit", 0, "Samples printed per track (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples <file>",
		Short: "Print per-sample timing and placement for each track",
		Long: `The samples command reconstructs every track's sample map from its
sample tables and prints timing (DTS/PTS), sizes, sync flags and file
offsets.

Example:
  boxdump samples movie.mp4
  boxdump samples movie.mp4 --track-id 1 --limit 20
  boxdump samples movie.mp4 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSamples(args)
		},
	}
}

func runSamples(args []string) error {
	path := args[0]
	printVerbose("Opening file: %s\n", path)

	tracks, err := samples.FromFile(path)
	if err != nil {
		return fmt.Errorf("failed to extract samples: %w", err)
	}

	if samplesTrackID != 0 {
		filtered := tracks[:0]
		for _, tr := range tracks {
			if tr.TrackID == samplesTrackID {
				filtered = append(filtered, tr)
			}
		}
		tracks = filtered
		if len(tracks) == 0 {
			return fmt.Errorf("no track with id %d", samplesTrackID)
		}
	}

	if jsonOut {
		return printJSON(tracks)
	}

	for _, tr := range tracks {
		seconds := float64(0)
		if tr.Timescale > 0 {
			seconds = float64(tr.Duration) / float64(tr.Timescale)
		}
		printInfo("Track %d (%s): %d samples, timescale=%d, duration=%d (%.3fs)\n",
			tr.TrackID, tr.HandlerType, tr.SampleCount, tr.Timescale, tr.Duration, seconds)

		shown := tr.Samples
		if samplesLimit > 0 && len(shown) > samplesLimit {
			shown = shown[:samplesLimit]
		}
		for _, s := range shown {
			sync := " "
			if s.Sync {
				sync = "K"
			}
			printInfo("  #%-6d %s dts=%-10d pts=%-10d dur=%-6d size=%-8d @%#x\n",
				s.Index, sync, s.DTS, s.PTS, s.Duration, s.Size, s.FileOffset)
		}
		if len(shown) < len(tr.Samples) {
			printInfo("  ... %d more samples\n", len(tr.Samples)-len(shown))
		}
	}
	return nil
}
