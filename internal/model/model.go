package model

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrArityMismatch is returned when a call's argument count differs from its declared arity.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrBadSubConditions is returned when a bit-flag condition has no or more than two sub-conditions.
	ErrBadSubConditions = errors.New("bit-flag condition needs 1 or 2 sub-conditions")
)

// ValueKind discriminates Value.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueLiteral
	ValueSymbol
)

// Value is either a numeric literal read from the stream or a symbolic name.
type Value struct {
	Kind    ValueKind
	Literal uint32
	Symbol  string
}

// Lit builds a literal value.
func Lit(v uint32) Value { return Value{Kind: ValueLiteral, Literal: v} }

// Sym builds a symbolic value.
func Sym(s string) Value { return Value{Kind: ValueSymbol, Symbol: s} }

// IsLiteral reports whether v holds the literal n.
func (v Value) IsLiteral(n uint32) bool {
	return v.Kind == ValueLiteral && v.Literal == n
}

func (v Value) String() string {
	switch v.Kind {
	case ValueLiteral:
		return strconv.FormatUint(uint64(v.Literal), 10)
	case ValueSymbol:
		return v.Symbol
	}
	return ""
}

// Operand is a condition side: either Variable or FunctionCall.
type Operand interface {
	operand()
	fmt.Stringer
}

// Variable is an immutable decoded variable.
type Variable struct {
	name    string
	storage StorageClass
	typ     SemType
	value   Value
}

// NewVariable builds a variable.
func NewVariable(name string, storage StorageClass, typ SemType, value Value) Variable {
	return Variable{name: name, storage: storage, typ: typ, value: value}
}

func (Variable) operand() {}

func (v Variable) Name() string { return v.name }
func (v Variable) Storage() StorageClass { return v.storage }
func (v Variable) Type() SemType { return v.typ }
func (v Variable) Value() Value { return v.value }

// System reports whether the variable refers to engine state rather than a literal.
func (v Variable) System() bool { return v.storage == MemoryReference }

// WithType returns a copy of v with another semantic type.
func (v Variable) WithType(t SemType) Variable {
	v.typ = t
	return v
}

func (v Variable) String() string {
	return fmt.Sprintf("%s(%s %s = %s)", v.name, v.storage, v.typ, v.value)
}

// FunctionCall is an immutable call into a runtime accessor.
type FunctionCall struct {
	id      uint32
	name    string
	returns SemType
	args    []Variable
}

// NewFunctionCall builds a call and checks len(args) against arity.
func NewFunctionCall(id uint32, name string, arity int, returns SemType, args []Variable) (FunctionCall, error) {
	if len(args) != arity {
		return FunctionCall{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrArityMismatch, name, arity, len(args))
	}
	cp := make([]Variable, len(args))
	copy(cp, args)
	return FunctionCall{id: id, name: name, returns: returns, args: cp}, nil
}

func (FunctionCall) operand() {}

func (f FunctionCall) ID() uint32 { return f.id }
func (f FunctionCall) Name() string { return f.name }
func (f FunctionCall) Returns() SemType { return f.returns }
func (f FunctionCall) NumArgs() int { return len(f.args) }
func (f FunctionCall) Arg(i int) Variable { return f.args[i] }

// Args returns a copy of the argument list.
func (f FunctionCall) Args() []Variable {
	cp := make([]Variable, len(f.args))
	copy(cp, f.args)
	return cp
}

func (f FunctionCall) String() string {
	s := f.name + "("
	for i, a := range f.args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// Condition is one comparison. The right side is either an Operand or, for
// two-stage bit-flag checks, a list of 1..2 sub-conditions.
type Condition struct {
	left  Operand
	right Operand
	subs  []Condition
	cmp   Comparator
	typ   SemType
}

// NewCondition builds a plain left/right/comparator triple.
func NewCondition(left, right Operand, cmp Comparator, typ SemType) Condition {
	return Condition{left: left, right: right, cmp: cmp, typ: typ}
}

// NewSubCondition builds a sub-condition of a two-stage check; it only has a left side.
func NewSubCondition(left Operand) Condition {
	return Condition{left: left, cmp: Equal, typ: typeOf(left)}
}

// NewBitFlagCondition builds a two-stage bit-flag condition anchored on left.
func NewBitFlagCondition(anchor Operand, subs []Condition, cmp Comparator) (Condition, error) {
	if len(subs) < 1 || len(subs) > 2 {
		return Condition{}, fmt.Errorf("%w: got %d", ErrBadSubConditions, len(subs))
	}
	cp := make([]Condition, len(subs))
	copy(cp, subs)
	return Condition{left: anchor, subs: cp, cmp: cmp, typ: BitFlag}, nil
}

func (c Condition) Left() Operand { return c.left }
func (c Condition) Right() Operand { return c.right }
func (c Condition) Comparator() Comparator { return c.cmp }
func (c Condition) Type() SemType { return c.typ }

// IsBitFlag reports whether the right side is a sub-condition list.
func (c Condition) IsBitFlag() bool { return len(c.subs) > 0 }

// Subs returns a copy of the sub-conditions.
func (c Condition) Subs() []Condition {
	cp := make([]Condition, len(c.subs))
	copy(cp, c.subs)
	return cp
}

func (c Condition) String() string {
	if c.IsBitFlag() {
		s := fmt.Sprintf("bitflag(%s %s [", c.left, c.cmp.Symbol())
		for i, sub := range c.subs {
			if i > 0 {
				s += ", "
			}
			s += sub.left.String()
		}
		return s + "])"
	}
	if c.right == nil {
		return c.left.String()
	}
	return fmt.Sprintf("%s %s %s : %s", c.left, c.cmp.Symbol(), c.right, c.typ)
}

// Block is an AND-combined group of conditions.
type Block struct {
	conds []Condition
}

// NewBlock builds a block from conditions.
func NewBlock(conds []Condition) Block {
	cp := make([]Condition, len(conds))
	copy(cp, conds)
	return Block{conds: cp}
}

func (b Block) Len() int { return len(b.conds) }
func (b Block) Condition(i int) Condition { return b.conds[i] }

// Conditions returns a copy of the conditions.
func (b Block) Conditions() []Condition {
	cp := make([]Condition, len(b.conds))
	copy(cp, b.conds)
	return cp
}

// Model is the decoded result: independent blocks, each its own guard.
type Model struct {
	blocks []Block
}

// New builds a model.
func New(blocks []Block) *Model {
	cp := make([]Block, len(blocks))
	copy(cp, blocks)
	return &Model{blocks: cp}
}

func (m *Model) Len() int { return len(m.blocks) }
func (m *Model) Block(i int) Block { return m.blocks[i] }

// Blocks returns a copy of the blocks.
func (m *Model) Blocks() []Block {
	cp := make([]Block, len(m.blocks))
	copy(cp, m.blocks)
	return cp
}

// Walk calls fn for every Variable directly used as a condition operand,
// including sub-condition operands, in render order.
func (m *Model) Walk(fn func(Variable)) {
	visit := func(op Operand) {
		if v, ok := op.(Variable); ok {
			fn(v)
		}
	}
	for _, b := range m.blocks {
		for _, c := range b.conds {
			visit(c.left)
			if c.IsBitFlag() {
				for _, sub := range c.subs {
					visit(sub.left)
				}
				continue
			}
			if c.right != nil {
				visit(c.right)
			}
		}
	}
}

func typeOf(op Operand) SemType {
	switch o := op.(type) {
	case Variable:
		return o.typ
	case FunctionCall:
		return o.returns
	}
	return Unknown
}

// TypeOf returns the semantic type an operand evaluates to.
func TypeOf(op Operand) SemType { return typeOf(op) }
