package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"l5cond/internal/driver"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] [payload-list...]",
	Short: "Generate source for many payloads in parallel",
	Long: `Read one base64 payload per line from each file (or stdin), decode and
generate them concurrently, and print the results in input order. Blank lines
and lines starting with '#' are skipped.`,
	RunE: runBatch,
}

func init() {
	addDecodeFlags(batchCmd)
	addGenerateFlags(batchCmd)
	batchCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	batchCmd.Flags().String("progress", "auto", "show progress view on stderr (auto|on|off)")
	batchCmd.Flags().Bool("timings", false, "print per-payload stage timings to stderr")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	progressStr, _ := cmd.Flags().GetString("progress")
	mode, err := readUIMode(progressStr)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0")
	}
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	items, err := readBatchItems(cmd, args)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no payloads to process")
	}

	var results []driver.Result
	if shouldUseTUI(mode, len(items)) && !quietFlag(cmd) {
		results, err = runBatchWithUI(cmd.Context(), "l5cond batch", items, opts, jobs)
	} else {
		results, err = driver.Batch(cmd.Context(), items, opts, jobs, nil)
	}
	if err != nil {
		return err
	}
	return writeBatchResults(cmd, results)
}

// writeBatchResults prints every result in input order and fails if any
// payload failed.
func writeBatchResults(cmd *cobra.Command, results []driver.Result) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	showTimings, _ := cmd.Flags().GetBool("timings")
	errLabel := color.New(color.FgRed, color.Bold).Sprint("error:")

	failed := 0
	for i, r := range results {
		if err := printDiagnostics(cmd, r); err != nil {
			return err
		}
		if r.Err != nil {
			failed++
			fmt.Fprintf(errOut, "%s %s: %v\n", errLabel, r.Name, r.Err)
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "// %s\n%s", r.Name, r.Code)
		if showTimings {
			fmt.Fprintf(errOut, "%s ", r.Name)
			printStageTimings(errOut, r.Timings)
		}
	}
	if failed > 0 {
		dumpRingTrace(cmd, errOut)
		msg := fmt.Sprintf("%d of %d payloads failed", failed, len(results))
		fmt.Fprintf(errOut, "%s %s\n", errLabel, msg)
		return reportedError{err: errors.New(msg)}
	}
	return nil
}
