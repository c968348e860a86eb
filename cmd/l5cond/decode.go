package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"l5cond/internal/driver"
	"l5cond/internal/modelio"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] [payload-file|-]",
	Short: "Decode a payload and dump the condition model",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().String("data", "", "base64 payload text")
	addDecodeFlags(decodeCmd)
	decodeCmd.Flags().String("dump", "pretty", "model dump format (pretty|json|msgpack|table)")
	decodeCmd.Flags().Bool("header", false, "print the payload header bytes")
	decodeCmd.Flags().Bool("timings", false, "print stage timings to stderr")
}

func runDecode(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	dumpStr, _ := cmd.Flags().GetString("dump")
	dump, err := modelio.ParseFormat(dumpStr)
	if err != nil {
		return err
	}
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
	if header, _ := cmd.Flags().GetBool("header"); header && dump != modelio.FormatMsgpack {
		fmt.Fprintf(out, "header: block length 0x%02X, count %d\n", res.Header.BlockLength, res.Header.Count)
	}
	if err := modelio.Write(out, res.Model, opts.Format.String(), dump); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	if timings, _ := cmd.Flags().GetBool("timings"); timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	return nil
}
