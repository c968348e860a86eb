// Package catalog holds the closed, versioned tables the decoder and the
// generators consult: runtime accessor functions keyed by their 32-bit id,
// well-known memory symbols keyed by magic value, and type tags.
//
// The default catalog is embedded from functions.toml. Users may supply their
// own file in TOML or YAML with the same layout.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"l5cond/internal/model"
)

//go:embed functions.toml
var defaultTOML []byte

// Role marks functions the decoder or generators treat specially.
type Role string

const (
	RoleNone         Role = ""
	RoleTeamBitFlag  Role = "team_bitflag"
	RoleBitFlagValue Role = "bitflag_value"
)

// Function is one accessor entry.
type Function struct {
	ID      uint32
	Name    string
	Arity   int
	Returns model.SemType
	Role    Role
	names   map[string]string
}

// DisplayName returns the dialect spelling of the function, falling back to
// the internal name when the dialect has no mapping.
func (f Function) DisplayName(dialect string) string {
	if n, ok := f.names[dialect]; ok && n != "" {
		return n
	}
	return f.Name
}

// Symbol is a well-known engine memory location.
type Symbol struct {
	Magic  uint32
	Name   string
	Type   model.SemType
	render map[string]string
}

// Render returns the dialect expression for the symbol, or "" when the
// dialect prints the raw symbolic value.
func (s Symbol) Render(dialect string) string {
	return s.render[dialect]
}

// Catalog is immutable after load.
type Catalog struct {
	Version   int
	funcs     map[uint32]Function
	symbols   map[uint32]Symbol
	byName    map[string]Symbol
	typeTags  map[uint32]model.SemType
	accessors map[string]map[string]string
}

var (
	// ErrInvalid is returned for catalog files that fail validation.
	ErrInvalid = errors.New("invalid catalog")

	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultTOML, "toml")
		if err != nil {
			panic(fmt.Errorf("embedded catalog: %w", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load reads a catalog file; the format follows the extension (.toml, .yaml, .yml).
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

type fileFunction struct {
	ID      uint32            `toml:"id" yaml:"id"`
	Name    string            `toml:"name" yaml:"name"`
	Arity   int               `toml:"arity" yaml:"arity"`
	Returns string            `toml:"returns" yaml:"returns"`
	Role    string            `toml:"role" yaml:"role"`
	Names   map[string]string `toml:"names" yaml:"names"`
}

type fileSymbol struct {
	Magic  uint32            `toml:"magic" yaml:"magic"`
	Name   string            `toml:"name" yaml:"name"`
	Type   string            `toml:"type" yaml:"type"`
	Render map[string]string `toml:"render" yaml:"render"`
}

type fileTypeTag struct {
	Tag  uint32 `toml:"tag" yaml:"tag"`
	Type string `toml:"type" yaml:"type"`
}

type file struct {
	Version   int                          `toml:"version" yaml:"version"`
	Functions []fileFunction               `toml:"function" yaml:"function"`
	Symbols   []fileSymbol                 `toml:"symbol" yaml:"symbol"`
	TypeTags  []fileTypeTag                `toml:"type_tag" yaml:"type_tag"`
	Accessors map[string]map[string]string `toml:"accessors" yaml:"accessors"`
}

// Parse decodes catalog data in the given format ("toml", "yaml" or "yml").
func Parse(data []byte, format string) (*Catalog, error) {
	var f file
	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q (expected toml|yaml)", ErrInvalid, format)
	}
	return build(f)
}

func build(f file) (*Catalog, error) {
	if f.Version <= 0 {
		return nil, fmt.Errorf("%w: missing version", ErrInvalid)
	}
	c := &Catalog{
		Version:   f.Version,
		funcs:     make(map[uint32]Function, len(f.Functions)),
		symbols:   make(map[uint32]Symbol, len(f.Symbols)),
		byName:    make(map[string]Symbol, len(f.Symbols)),
		typeTags:  make(map[uint32]model.SemType, len(f.TypeTags)),
		accessors: f.Accessors,
	}
	for _, ff := range f.Functions {
		if strings.TrimSpace(ff.Name) == "" {
			return nil, fmt.Errorf("%w: function 0x%08X has no name", ErrInvalid, ff.ID)
		}
		if ff.Arity < 0 {
			return nil, fmt.Errorf("%w: function %s has negative arity", ErrInvalid, ff.Name)
		}
		ret, ok := model.ParseSemType(ff.Returns)
		if !ok {
			return nil, fmt.Errorf("%w: function %s: unknown return type %q", ErrInvalid, ff.Name, ff.Returns)
		}
		role := Role(ff.Role)
		switch role {
		case RoleNone, RoleTeamBitFlag, RoleBitFlagValue:
		default:
			return nil, fmt.Errorf("%w: function %s: unknown role %q", ErrInvalid, ff.Name, ff.Role)
		}
		if _, dup := c.funcs[ff.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate function id 0x%08X", ErrInvalid, ff.ID)
		}
		c.funcs[ff.ID] = Function{ID: ff.ID, Name: ff.Name, Arity: ff.Arity, Returns: ret, Role: role, names: ff.Names}
	}
	for _, fs := range f.Symbols {
		typ, ok := model.ParseSemType(fs.Type)
		if !ok {
			return nil, fmt.Errorf("%w: symbol %s: unknown type %q", ErrInvalid, fs.Name, fs.Type)
		}
		if _, dup := c.symbols[fs.Magic]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol magic 0x%08X", ErrInvalid, fs.Magic)
		}
		s := Symbol{Magic: fs.Magic, Name: fs.Name, Type: typ, render: fs.Render}
		c.symbols[fs.Magic] = s
		c.byName[fs.Name] = s
	}
	for _, tt := range f.TypeTags {
		if tt.Tag > 0xFFFFFF {
			return nil, fmt.Errorf("%w: type tag 0x%X wider than 3 bytes", ErrInvalid, tt.Tag)
		}
		typ, ok := model.ParseSemType(tt.Type)
		if !ok {
			return nil, fmt.Errorf("%w: type tag 0x%06X: unknown type %q", ErrInvalid, tt.Tag, tt.Type)
		}
		c.typeTags[tt.Tag] = typ
	}
	return c, nil
}

// Function looks up an accessor by id.
func (c *Catalog) Function(id uint32) (Function, bool) {
	f, ok := c.funcs[id]
	return f, ok
}

// FunctionByRole returns the first function (lowest id) with the given role.
func (c *Catalog) FunctionByRole(role Role) (Function, bool) {
	for _, f := range c.Functions() {
		if f.Role == role {
			return f, true
		}
	}
	return Function{}, false
}

// Functions returns all functions ordered by id.
func (c *Catalog) Functions() []Function {
	out := make([]Function, 0, len(c.funcs))
	for _, f := range c.funcs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Symbol looks up a memory symbol by magic value.
func (c *Catalog) Symbol(magic uint32) (Symbol, bool) {
	s, ok := c.symbols[magic]
	return s, ok
}

// SymbolByName looks up a memory symbol by its symbolic name.
func (c *Catalog) SymbolByName(name string) (Symbol, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// TypeTag maps a 3-byte type tag; unknown tags map to model.Unknown.
func (c *Catalog) TypeTag(tag uint32) model.SemType {
	if t, ok := c.typeTags[tag]; ok {
		return t
	}
	return model.Unknown
}

// Accessor returns the dialect name of a named accessor such as "last_bit_flag".
func (c *Catalog) Accessor(name, dialect string) (string, bool) {
	n, ok := c.accessors[name][dialect]
	return n, ok && n != ""
}
