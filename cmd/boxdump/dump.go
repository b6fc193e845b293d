package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxtools/boxkit/box"
)

var (
	dumpOffset uint64
	dumpLength uint64
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Uint64Var(&dumpOffset, "offset", 0, "Byte offset to start from")
	cmd.Flags().Uint64Var(&dumpLength, "length", 256, "Bytes to dump (0 = to end of file)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex-dump an arbitrary byte range",
		Long: `The dump command hex-dumps file bytes without interpreting the box
structure, which helps when a file is too damaged to parse.

Example:
  boxdump dump movie.mp4 --offset 0x20 --length 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	path := args[0]

	f, err := box.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := box.HexRange(f.Reader(), f.Size(), dumpOffset, dumpLength)
	if err != nil {
		return fmt.Errorf("failed to read range: %w", err)
	}
	if len(data) == 0 {
		printInfo("offset %#x is at or past end of file (%d bytes)\n", dumpOffset, f.Size())
		return nil
	}

	printInfo("%s", box.Dump(data, dumpOffset))
	return nil
}
