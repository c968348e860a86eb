package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"l5cond/internal/diagfmt"
	"l5cond/internal/driver"
)

// printDiagnostics writes the recoverable diagnostics of r to stderr unless
// --quiet is set.
func printDiagnostics(cmd *cobra.Command, r driver.Result) error {
	if quietFlag(cmd) || r.Bag == nil || r.Bag.Len() == 0 {
		return nil
	}
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	r.Bag.Sort()
	return diagfmt.Pretty(cmd.ErrOrStderr(), r.Bag, diagfmt.PrettyOpts{
		Color:  !color.NoColor,
		Source: r.Name,
		Max:    maxDiagnostics,
	})
}

// reportFailure prints a fatal pipeline error and the ring trace, if any.
func reportFailure(cmd *cobra.Command, r driver.Result) error {
	errOut := cmd.ErrOrStderr()
	if err := printDiagnostics(cmd, r); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "%s %s: %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), r.Name, r.Err)
	dumpRingTrace(cmd, errOut)
	return reportedError{err: r.Err}
}

func printStageTimings(out io.Writer, timings driver.Timings) {
	if out == nil {
		return
	}
	fmt.Fprint(out, timings.Summary())
}
