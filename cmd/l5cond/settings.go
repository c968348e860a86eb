package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"l5cond/internal/codegen"
	"l5cond/internal/decoder"
	"l5cond/internal/dialect"
	"l5cond/internal/driver"
)

// addDecodeFlags registers the flags every payload-reading command shares.
func addDecodeFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "v1", "payload format (v1|v2)")
	cmd.Flags().String("catalog", "", "function catalog file (.toml|.yaml); embedded catalog by default")
}

// addGenerateFlags registers the code generation flags.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().String("lang", "c", "output language (c|squirrel)")
	cmd.Flags().String("func-name", "", "name of the generated function (default \"condition\")")
	cmd.Flags().Int("indent", 0, "spaces per indent level; -1 selects tabs (default 4)")
	cmd.Flags().Bool("beautify", false, "separate declarations, guards and return with blank lines")
	cmd.Flags().Bool("simplify", false, "nest one guard per condition and hoist compared literals")
}

// resolveOptions merges l5cond.toml with the command flags; flags set on the
// command line win.
func resolveOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options

	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return opts, fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return opts, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := loadConfigFor(configPath, wd)
	if err != nil {
		return opts, err
	}
	var conf projectConfig
	if cfg != nil {
		conf = cfg.Config
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts.MaxDiagnostics = maxDiagnostics

	formatStr := pickString(cmd, "format", conf.Decode.Format)
	if opts.Format, err = decoder.ParseFormat(formatStr); err != nil {
		return opts, err
	}

	catalogPath := cfg.catalogPath()
	if cmd.Flags().Changed("catalog") {
		catalogPath, _ = cmd.Flags().GetString("catalog")
	}
	if opts.Catalog, err = loadCatalog(catalogPath); err != nil {
		return opts, err
	}

	if cmd.Flags().Lookup("lang") == nil {
		opts.DecodeOnly = true
		return opts, nil
	}
	if opts.Lang, err = dialect.Parse(pickString(cmd, "lang", conf.Generate.Lang)); err != nil {
		return opts, err
	}
	opts.Gen = codegen.Options{
		FuncName: pickString(cmd, "func-name", conf.Generate.FuncName),
		Indent:   pickInt(cmd, "indent", conf.Generate.Indent),
		Catalog:  opts.Catalog,
		Beautify: pickBool(cmd, "beautify", conf.Generate.Beautify),
		Simplify: pickBool(cmd, "simplify", conf.Generate.Simplify),
	}
	return opts, nil
}

func pickString(cmd *cobra.Command, name, configured string) string {
	v, _ := cmd.Flags().GetString(name)
	if cmd.Flags().Changed(name) || configured == "" {
		return v
	}
	return configured
}

func pickInt(cmd *cobra.Command, name string, configured int) int {
	v, _ := cmd.Flags().GetInt(name)
	if cmd.Flags().Changed(name) || configured == 0 {
		return v
	}
	return configured
}

func pickBool(cmd *cobra.Command, name string, configured bool) bool {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return configured
}

func quietFlag(cmd *cobra.Command) bool {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return quiet
}
