package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stlgate/internal/source"
	"stlgate/internal/stl"
)

var detectCmd = &cobra.Command{
	Use:   "detect [flags] <file.stl>...",
	Short: "Print the detected encoding of STL files without validating them",
	Long:  `Detect applies the size heuristic only: a file whose length matches the binary record equation is binary, everything else is treated as ASCII`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fs := source.NewFileSet()
	results := make(map[string]string, len(args))
	failed := false
	for _, path := range args {
		fileID, loadErr := fs.Load(path)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "stlgate: failed to read %s: %v\n", path, loadErr)
			failed = true
			continue
		}
		detected := stl.Detect(fs.Get(fileID).Content)
		results[path] = detected.String()
		if format == "pretty" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, detected)
		}
	}

	if format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("failed to encode detection output: %w", err)
		}
	}

	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - failures already printed
	}
	return nil
}
