package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"l5cond/internal/driver"
	"l5cond/internal/highlight"
	"l5cond/internal/modelio"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [payload-file|-]",
	Short: "Decode a payload and generate C or Squirrel source",
	Long: `Decode a base64 condition payload and print an equivalent function in the
selected language. The payload comes from --data, a file, or stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().String("data", "", "base64 payload text")
	addDecodeFlags(genCmd)
	addGenerateFlags(genCmd)
	genCmd.Flags().Bool("highlight", false, "syntax-highlight the generated source")
	genCmd.Flags().Bool("show-model", false, "print the decoded conditions before the source")
	genCmd.Flags().Bool("timings", false, "print stage timings to stderr")
}

func runGen(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	item, err := readSingleItem(cmd, args)
	if err != nil {
		return err
	}

	res := driver.Run(cmd.Context(), item, opts)
	if res.Err != nil {
		return reportFailure(cmd, res)
	}
	if err := printDiagnostics(cmd, res); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if show, _ := cmd.Flags().GetBool("show-model"); show {
		if err := modelio.WritePretty(out, res.Model); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	code := res.Code
	if hl, _ := cmd.Flags().GetBool("highlight"); hl {
		code = highlight.Highlight(code, opts.Lang, highlight.DefaultTheme())
	}
	fmt.Fprint(out, code)

	if timings, _ := cmd.Flags().GetBool("timings"); timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	return nil
}
