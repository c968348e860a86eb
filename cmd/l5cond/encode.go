package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"l5cond/internal/decoder"
	"l5cond/internal/dialect"
	"l5cond/internal/encoder"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] [source-file|-]",
	Short: "Encode generated source back into a payload (not implemented)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		format, err := decoder.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		langStr, _ := cmd.Flags().GetString("lang")
		lang, err := dialect.Parse(langStr)
		if err != nil {
			return err
		}

		var src []byte
		if len(args) == 0 || args[0] == "-" {
			src, err = io.ReadAll(cmd.InOrStdin())
		} else {
			src, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}

		payload, err := encoder.Encode(string(src), encoder.Options{Format: format, Lang: lang})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(payload))
		return nil
	},
}

func init() {
	encodeCmd.Flags().String("format", "v1", "payload format (v1|v2)")
	encodeCmd.Flags().String("lang", "c", "source language (c|squirrel)")
}
