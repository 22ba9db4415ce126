package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stlgate/internal/diagfmt"
	"stlgate/internal/driver"
	"stlgate/internal/project"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file.stl>...",
	Short: "Validate STL files and report a pass/fail verdict per file",
	Long:  `Validate checks each file against the STL format rules: ASCII grammar, binary record layout, counterclockwise winding, positive vertex coordinates and zero attribute byte counts`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

// init registers CLI flags for the validate command used by runValidate.
func init() {
	validateCmd.Flags().Bool("tolerant", false, "demote geometry violations to warnings")
	validateCmd.Flags().BoolP("verbose", "v", false, "print individual warning lines")
	validateCmd.Flags().String("format", "report", "output format (report|pretty|json)")
	validateCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	validateCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	validateCmd.Flags().Bool("disk-cache", false, "cache verdicts on disk keyed by file content")
}

// runValidate executes the "validate" command: it merges project config
// with explicit flags, validates every argument (in parallel for
// batches), renders the results in the chosen format, and exits with a
// non-zero status when any file fails or cannot be read.
func runValidate(cmd *cobra.Command, args []string) error {
	tolerant, err := cmd.Flags().GetBool("tolerant")
	if err != nil {
		return fmt.Errorf("failed to get tolerant flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	diskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	switch format {
	case "report", "pretty", "json":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	// Значения из stlgate.toml проигрывают явно заданным флагам.
	if manifest, set, ok, cfgErr := project.Load("."); cfgErr != nil {
		return cfgErr
	} else if ok {
		if set.Tolerant && !cmd.Flags().Changed("tolerant") {
			tolerant = manifest.Config.Validate.Tolerant
		}
		if set.Verbose && !cmd.Flags().Changed("verbose") {
			verbose = manifest.Config.Validate.Verbose
		}
		if set.Jobs && !cmd.Flags().Changed("jobs") {
			jobs = manifest.Config.Validate.Jobs
		}
		if set.Cache && !cmd.Flags().Changed("disk-cache") {
			diskCache = manifest.Config.Cache.Enabled
		}
	}

	opts := driver.Options{
		Tolerant:       tolerant,
		Verbose:        verbose,
		MaxDiagnostics: maxDiagnostics,
	}
	if diskCache {
		cache, cacheErr := driver.OpenResultCache("stlgate")
		if cacheErr != nil {
			return fmt.Errorf("failed to open result cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	var items []driver.BatchItem
	if shouldUseTUI(mode) && len(args) > 1 {
		items, err = runValidateWithUI(cmd.Context(), args, opts, jobs)
	} else {
		items, err = driver.ValidateAll(cmd.Context(), args, opts, jobs, nil)
	}
	if err != nil {
		return err
	}

	exit, err := renderItems(cmd, format, items)
	if err != nil {
		return err
	}
	if exit != 0 {
		// Suppress cobra usage output on validation failures
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - verdicts already printed
	}
	return nil
}

func renderItems(cmd *cobra.Command, format string, items []driver.BatchItem) (int, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return 0, err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	exit := 0
	switch format {
	case "report":
		for _, item := range items {
			if item.Err != nil {
				fmt.Fprintf(os.Stderr, "stlgate: %v\n", item.Err)
				exit = 1
				continue
			}
			if item.Warnings != "" {
				fmt.Fprint(os.Stdout, item.Warnings)
			}
			// Verdicts route by outcome: passes to stdout, failures to
			// stderr, so a pipeline can collect clean reports alone.
			report := diagfmt.BuildReport(item.Path, item.Result.Outcome)
			dest := os.Stdout
			if !item.Result.Outcome.Pass {
				dest = os.Stderr
				exit = 1
			}
			if err := diagfmt.WriteReport(dest, report); err != nil {
				return 0, fmt.Errorf("failed to write report: %w", err)
			}
		}
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{Color: useColor, Context: 1}
		for idx, item := range items {
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if item.Err != nil {
				fmt.Fprintf(os.Stderr, "stlgate: %v\n", item.Err)
				exit = 1
				continue
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", item.Path)
			diagfmt.Pretty(os.Stdout, item.Result.Bag, item.Result.FileSet, prettyOpts)
			outcome := item.Result.Outcome
			if outcome.Pass {
				fmt.Fprintf(os.Stdout, "pass (%s, warnings: %d)\n", outcome.Format, outcome.Warnings)
			} else {
				fmt.Fprintf(os.Stdout, "fail (%s, errors: %d, warnings: %d)\n", outcome.Format, outcome.Errors, outcome.Warnings)
				exit = 1
			}
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(items))
		for _, item := range items {
			if item.Err != nil {
				fmt.Fprintf(os.Stderr, "stlgate: %v\n", item.Err)
				exit = 1
				continue
			}
			var buf diagfmt.DiagnosticsOutput
			if buf, err = diagfmt.Build(item.Result.Bag, item.Result.FileSet); err != nil {
				return 0, fmt.Errorf("failed to build diagnostics output: %w", err)
			}
			output[item.Path] = buf
			if !item.Result.Outcome.Pass {
				exit = 1
			}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}
	return exit, nil
}
