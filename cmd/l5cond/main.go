package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"l5cond/internal/prof"
	"l5cond/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "l5cond",
	Short: "Level-5 condition bytecode decoder",
	Long: `l5cond decodes base64 condition payloads into a condition model and
re-emits them as C or Squirrel source`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorFlag(cmd); err != nil {
			return err
		}
		return startProfiling(cmd)
	},
}

// profSession is stopped by main so profiles are written even when a
// command fails.
var profSession *prof.Session

// main runs the root command; a returned error exits with status 1.
func main() {
	err := rootCmd.Execute()
	if stopErr := profSession.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", stopErr)
	}
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportedError marks an error whose details were already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func printError(w io.Writer, err error) {
	var reported reportedError
	if errors.As(err, &reported) {
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(versionCmd)
	addPersistentFlags(rootCmd)
}

func addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress diagnostics and non-essential output")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("config", "", "path to l5cond.toml (default: search upwards from the working directory)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|debug)")
	flags.String("trace-mode", "ring", "trace storage (stream|ring)")
	flags.Int("trace-ring-size", 1024, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("exec-trace", "", "write a Go runtime execution trace to file")
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	cfg.CPU, _ = flags.GetString("cpu-profile")
	cfg.Mem, _ = flags.GetString("mem-profile")
	cfg.Trace, _ = flags.GetString("exec-trace")
	if !cfg.Enabled() {
		return nil
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	profSession = s
	return nil
}

// applyColorFlag sets the global color switch used by fatih/color.
func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
