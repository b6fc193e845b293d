package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boxtools/boxkit/box"
	"github.com/boxtools/boxkit/box/printer"
)

var (
	treeDepth  int
	treeDecode bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeDecode, "decode", false, "Decode well-known payloads")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Display the box tree",
		Long: `The tree command prints the nested box structure of a file, one box
per line with its offset, size and type.

Example:
  boxdump tree movie.mp4
  boxdump tree movie.mp4 --decode --depth 3
  boxdump tree movie.mp4 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
}

func runTree(args []string) error {
	path := args[0]
	printVerbose("Opening file: %s\n", path)

	f, err := box.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	logger.Debug("mapped file", "path", path, "size", f.Size())

	roots, err := f.Boxes(treeDecode)
	if err != nil {
		return fmt.Errorf("failed to parse box tree: %w", err)
	}

	opts := printer.Options{
		MaxDepth:    treeDepth,
		ShowDecoded: treeDecode,
		Indent:      "  ",
	}
	if jsonOut {
		return printer.JSON(os.Stdout, roots, opts)
	}
	return printer.Text(os.Stdout, roots, opts)
}
