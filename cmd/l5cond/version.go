package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"l5cond/internal/catalog"
	"l5cond/internal/version"
)

type versionPayload struct {
	Tool           string `json:"tool"`
	Version        string `json:"version"`
	CatalogVersion int    `json:"catalog_version"`
	GitCommit      string `json:"git_commit,omitempty"`
	BuildDate      string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include commit and build date even when unknown")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the l5cond and function catalog versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogVersion := catalog.Default().Version
		switch strings.ToLower(versionFormat) {
		case "pretty":
			fmt.Fprintln(cmd.OutOrStdout(), version.Summary(catalogVersion))
			if versionShowFull {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\nbuilt:  %s\n",
					valueOrUnknown(version.GitCommit), valueOrUnknown(version.BuildDate))
			}
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), catalogVersion)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionJSON(out io.Writer, catalogVersion int) error {
	payload := versionPayload{
		Tool:           "l5cond",
		Version:        strings.TrimSpace(version.Version),
		CatalogVersion: catalogVersion,
		GitCommit:      strings.TrimSpace(version.GitCommit),
		BuildDate:      strings.TrimSpace(version.BuildDate),
	}
	if versionShowFull {
		payload.GitCommit = valueOrUnknown(payload.GitCommit)
		payload.BuildDate = valueOrUnknown(payload.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
