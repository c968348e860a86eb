package codegen

import (
	"strings"

	"l5cond/internal/catalog"
	"l5cond/internal/model"
)

const accessorLastBitFlag = "last_bit_flag"

func (p *pass) dialectName() string {
	return p.g.kind.String()
}

// condition renders a plain comparison.
func (p *pass) condition(c model.Condition) string {
	if p.g.syn.SimplifyBoolEq && c.Type() == model.Boolean && c.Comparator() == model.Equal {
		if lit, ok := boolLiteral(c.Right()); ok {
			return negateIf(lit == 0, p.operand(c.Left(), false))
		}
		if lit, ok := boolLiteral(c.Left()); ok {
			return negateIf(lit == 0, p.operand(c.Right(), false))
		}
	}
	return p.operand(c.Left(), p.hoist) + " " + c.Comparator().Symbol() + " " + p.operand(c.Right(), p.hoist)
}

func negateIf(neg bool, s string) string {
	if neg {
		return "!" + s
	}
	return s
}

// boolLiteral returns the value of a literal variable holding 0 or 1.
func boolLiteral(op model.Operand) (uint32, bool) {
	v, ok := op.(model.Variable)
	if !ok || v.System() {
		return 0, false
	}
	switch {
	case v.Value().IsLiteral(0):
		return 0, true
	case v.Value().IsLiteral(1):
		return 1, true
	}
	return 0, false
}

// operand renders op; with hoist set, literal variables become named locals.
func (p *pass) operand(op model.Operand, hoist bool) string {
	switch o := op.(type) {
	case model.Variable:
		if o.System() {
			return p.system(o)
		}
		if hoist && o.Name() != "" {
			p.declareAs(o, p.g.syn.IntDecl, p.literal(o))
			return o.Name()
		}
		return p.literal(o)
	case model.FunctionCall:
		return p.call(o)
	case nil:
		return "0"
	}
	return op.String()
}

// system renders a memory-reference variable through the dialect symbol table.
func (p *pass) system(v model.Variable) string {
	if sym, ok := p.cat.SymbolByName(v.Value().Symbol); ok {
		if r := sym.Render(p.dialectName()); r != "" {
			return r
		}
	}
	if s := v.Value().String(); s != "" {
		return s
	}
	return v.Name()
}

func (p *pass) literal(v model.Variable) string {
	val := v.Value()
	if p.g.syn.BoolLiterals && v.Type() == model.Boolean {
		if val.Kind == model.ValueLiteral && val.Literal != 0 {
			return p.g.syn.TrueLit
		}
		return p.g.syn.FalseLit
	}
	if val.Kind == model.ValueNone {
		return "0"
	}
	return val.String()
}

func (p *pass) call(f model.FunctionCall) string {
	name := f.Name()
	if fn, ok := p.cat.Function(f.ID()); ok {
		name = fn.DisplayName(p.dialectName())
	}
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i := 0; i < f.NumArgs(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.literal(f.Arg(i)))
	}
	sb.WriteByte(')')
	return sb.String()
}

// lastBitFlag renders the "last global bit-flag id" accessor call.
func (p *pass) lastBitFlag(anchor model.Operand) string {
	if name, ok := p.cat.Accessor(accessorLastBitFlag, p.dialectName()); ok {
		return name + "()"
	}
	return p.operand(anchor, false)
}

// bitFlagValue names the accessor returning a flag's value.
func (p *pass) bitFlagValue() string {
	if fn, ok := p.cat.FunctionByRole(catalog.RoleBitFlagValue); ok {
		return fn.DisplayName(p.dialectName())
	}
	return "GET_GLOBAL_BIT_FLAG"
}

// declare pre-declares a non-system variable once per pass.
func (p *pass) declare(v model.Variable) {
	if v.System() {
		return
	}
	p.declareAs(v, p.g.syn.IntDecl, p.literal(v))
}

func (p *pass) declareAs(v model.Variable, keyword, value string) {
	if _, ok := p.declared[v.Name()]; ok {
		return
	}
	p.declared[v.Name()] = struct{}{}
	p.decls = append(p.decls, keyword+" "+v.Name()+" = "+value+";")
}
