package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxtools/boxkit/box"
)

var rawBytes uint64

func init() {
	cmd := newRawCmd()
	cmd.Flags().Uint64Var(&rawBytes, "bytes", 0, "Limit dumped payload bytes (0 = entire payload)")
	rootCmd.AddCommand(cmd)
}

func newRawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "raw <file> <box>",
		Short: "Hex-dump the payload of the first matching box",
		Long: `The raw command finds the first box matching a four-character type or
a uuid hex string (full id or prefix, dashes optional) and hex-dumps its
payload.

Example:
  boxdump raw movie.mp4 stsd
  boxdump raw movie.mp4 d4807ef2ca3946958e5426cb9e46a79f
  boxdump raw movie.mp4 mdat --bytes 256`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(args)
		},
	}
}

func runRaw(args []string) error {
	path, sel := args[0], args[1]

	query, err := box.ParseQuery(sel)
	if err != nil {
		return err
	}

	f, err := box.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	roots, err := f.Boxes(false)
	if err != nil {
		return fmt.Errorf("failed to parse box tree: %w", err)
	}

	n, err := box.FindFirst(roots, query)
	if err != nil {
		return err
	}
	logger.Debug("matched box", "type", n.DisplayType(), "offset", n.Start, "size", n.Size)

	payload, err := box.RawPayload(f.Reader(), n, rawBytes)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	printInfo("%s at %#x, %d payload bytes (showing %d):\n",
		n.DisplayType(), n.Start, n.PayloadSize(), len(payload))
	printInfo("%s", box.Dump(payload, n.PayloadStart()))
	return nil
}
