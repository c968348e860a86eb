package codegen

import (
	"strings"

	"l5cond/internal/catalog"
	"l5cond/internal/dialect"
	"l5cond/internal/model"
)

// Generator renders models in one dialect. It is safe for concurrent use;
// all per-call state lives in a pass.
type Generator struct {
	kind dialect.Kind
	syn  dialect.Syntax
	opt  Options
}

// New creates a generator for kind.
func New(kind dialect.Kind, opt Options) *Generator {
	return &Generator{kind: kind, syn: dialect.SyntaxOf(kind), opt: opt.withDefaults()}
}

// Dialect returns the target dialect.
func (g *Generator) Dialect() dialect.Kind {
	return g.kind
}

// Generate renders m. A nil or empty model yields a function returning true.
func (g *Generator) Generate(m *model.Model) string {
	p := g.newPass()
	var blocks [][]stmt
	if m != nil {
		if g.syn.DeclareLiterals {
			m.Walk(p.declare)
		}
		for _, b := range m.Blocks() {
			if b.Len() == 0 {
				continue
			}
			blocks = append(blocks, p.block(b.Conditions()))
		}
	}
	return p.emit(blocks)
}

// pass holds the state of one Generate call.
type pass struct {
	g        *Generator
	cat      *catalog.Catalog
	w        *Writer
	nest     bool
	hoist    bool
	decls    []string
	declared map[string]struct{}
}

func (g *Generator) newPass() *pass {
	return &pass{
		g:        g,
		cat:      g.opt.Catalog,
		w:        NewWriter(g.opt.Indent),
		nest:     g.syn.NestGuards || g.opt.Simplify,
		hoist:    g.opt.Simplify && !g.syn.DeclareLiterals,
		declared: make(map[string]struct{}),
	}
}

// stmt is a rendered statement: either a plain line or a guard with a body.
type stmt struct {
	text string
	cond string
	body []stmt
}

func (s stmt) isGuard() bool { return s.cond != "" }

func line(text string) stmt { return stmt{text: text} }

func guard(cond string, body []stmt) stmt { return stmt{cond: cond, body: body} }

var setResult = []stmt{line("result = true;")}

// block turns the conditions of one block into nested statements.
func (p *pass) block(conds []model.Condition) []stmt {
	if len(conds) == 0 {
		return setResult
	}
	if conds[0].IsBitFlag() {
		return []stmt{p.bitFlag(conds[0], conds[1:])}
	}

	n := 0
	for n < len(conds) && !conds[n].IsBitFlag() {
		n++
	}
	exprs := make([]string, 0, n)
	for _, c := range conds[:n] {
		exprs = append(exprs, p.condition(c))
	}
	body := p.block(conds[n:])

	if !p.nest {
		return []stmt{guard(joinAnd(exprs), body)}
	}
	for i := len(exprs) - 1; i >= 0; i-- {
		body = []stmt{guard(exprs[i], body)}
	}
	return body
}

// bitFlag renders a two-stage bit-flag check followed by rest.
func (p *pass) bitFlag(c model.Condition, rest []model.Condition) stmt {
	subs := c.Subs()
	id := p.operand(subs[0].Left(), false)
	outer := p.lastBitFlag(c.Left()) + " " + c.Comparator().Symbol() + " " + id

	if len(subs) < 2 {
		return guard(outer, p.block(rest))
	}
	flag := flagName(subs[0].Left())
	decl := p.g.syn.IntDecl + " " + flag + " = " + p.bitFlagValue() + "(" + id + ");"
	inner := flag + " " + model.Equal.Symbol() + " " + p.operand(subs[1].Left(), false)
	return guard(outer, []stmt{line(decl), guard(inner, p.block(rest))})
}

func flagName(op model.Operand) string {
	if v, ok := op.(model.Variable); ok && v.Name() != "" {
		return "flag_" + v.Name()
	}
	return "flag_value"
}

func joinAnd(exprs []string) string {
	return strings.Join(exprs, " && ")
}
