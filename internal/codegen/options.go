package codegen

import "l5cond/internal/catalog"

type Options struct {
	// FuncName names the generated function; "condition" by default.
	FuncName string
	// Indent is the number of spaces per level; negative selects tabs.
	Indent int
	// Catalog supplies per-dialect names; the embedded catalog by default.
	Catalog *catalog.Catalog
	// Beautify separates declarations, top-level guards and the return
	// statement with blank lines.
	Beautify bool
	// Simplify nests one guard per condition and hoists compared literals
	// into locals declared before the first guard. Squirrel already nests
	// and declares its literals, so there it is a no-op.
	Simplify bool
}

func (o Options) withDefaults() Options {
	if o.FuncName == "" {
		o.FuncName = "condition"
	}
	if o.Indent == 0 {
		o.Indent = 4
	}
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	return o
}
