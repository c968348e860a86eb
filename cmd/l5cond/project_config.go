package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"l5cond/internal/catalog"
	"l5cond/internal/decoder"
	"l5cond/internal/dialect"
)

const projectConfigName = "l5cond.toml"

type projectConfig struct {
	Decode   decodeConfig   `toml:"decode"`
	Generate generateConfig `toml:"generate"`
}

type decodeConfig struct {
	Format  string `toml:"format"`
	Catalog string `toml:"catalog"`
}

type generateConfig struct {
	Lang     string `toml:"lang"`
	FuncName string `toml:"func_name"`
	Indent   int    `toml:"indent"`
	Beautify bool   `toml:"beautify"`
	Simplify bool   `toml:"simplify"`
}

// loadedConfig is a parsed l5cond.toml together with where it was found.
type loadedConfig struct {
	Path   string
	Root   string
	Config projectConfig
}

func findProjectConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, projectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfigFor returns the config named by --config, or the nearest
// l5cond.toml above startDir. A missing file is not an error.
func loadConfigFor(explicit, startDir string) (*loadedConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findProjectConfig(startDir)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &loadedConfig{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("decode", "format") {
		if _, err := decoder.ParseFormat(cfg.Decode.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [decode].format: %w", path, err)
		}
	}
	if meta.IsDefined("generate", "lang") {
		if _, err := dialect.Parse(cfg.Generate.Lang); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [generate].lang: %w", path, err)
		}
	}
	return cfg, nil
}

// catalogPath resolves [decode].catalog relative to the config file.
func (c *loadedConfig) catalogPath() string {
	if c == nil || strings.TrimSpace(c.Config.Decode.Catalog) == "" {
		return ""
	}
	p := filepath.FromSlash(c.Config.Decode.Catalog)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// loadCatalog returns the catalog at path, or the embedded one when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}
