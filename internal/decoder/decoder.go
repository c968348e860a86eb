// Package decoder turns a condition payload into a model.Model.
//
// A payload is a short header followed by a postfix token stream. Operand
// tokens (function calls, local variables, memory references) are buffered
// in arrival order; a comparator token combines the two oldest operands into
// a Condition; a block separator closes the current AND-group. Each payload
// format has its own dispatch table (see Format), sharing the handlers below.
//
// A Decoder is single use and not safe for concurrent use.
package decoder

import (
	"encoding/binary"
	"fmt"

	"l5cond/internal/bytecursor"
	"l5cond/internal/catalog"
	"l5cond/internal/diag"
	"l5cond/internal/model"
	"l5cond/internal/trace"
)

// Options configures a Decoder. Zero values select FormatLocal, the embedded
// catalog, no diagnostics and no tracing.
type Options struct {
	Format   Format
	Catalog  *catalog.Catalog
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// SpanParent links the decode span under a caller span.
	SpanParent uint64
}

// Header holds the two length bytes that follow the header offset. They are
// informational; the token loop runs to the end of the buffer regardless.
type Header struct {
	BlockLength byte
	Count       byte
}

type Decoder struct {
	r        *bytecursor.Reader
	spec     formatSpec
	specErr  error
	cat      *catalog.Catalog
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
	spanID   uint64
	used     bool

	header   Header
	tokStart uint32
	varCount int

	operands []model.Operand
	cmps     []model.Comparator
	current  []model.Condition
	blocks   []model.Block

	extPending bool
	extTag     uint32
}

// New prepares a decoder over data.
func New(data []byte, opts Options) *Decoder {
	if opts.Format == 0 {
		opts.Format = FormatLocal
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	spec, err := specFor(opts.Format)
	return &Decoder{
		r:        bytecursor.NewReader(data),
		spec:     spec,
		specErr:  err,
		cat:      opts.Catalog,
		reporter: opts.Reporter,
		tracer:   opts.Tracer,
		parent:   opts.SpanParent,
	}
}

// Decode is a shortcut for New(data, opts).Decode().
func Decode(data []byte, opts Options) (*model.Model, error) {
	return New(data, opts).Decode()
}

// Header returns the header read by Decode.
func (d *Decoder) Header() Header {
	return d.header
}

// Decode runs the token loop. On error the returned model is nil.
func (d *Decoder) Decode() (*model.Model, error) {
	if d.used {
		return nil, ErrReused
	}
	d.used = true
	if d.specErr != nil {
		return nil, d.specErr
	}

	span := trace.Begin(d.tracer, trace.ScopePass, "decode", d.parent)
	d.spanID = span.ID()
	m, err := d.run()
	if err != nil {
		span.End("failed: " + err.Error())
		return nil, err
	}
	span.WithExtra("format", d.spec.format.String()).
		WithExtra("blocks", fmt.Sprint(m.Len())).
		End("")
	return m, nil
}

func (d *Decoder) run() (*model.Model, error) {
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	for !d.r.EOF() {
		d.tokStart = d.r.Pos()
		tag, err := d.r.ReadByte()
		if err != nil {
			return nil, &Error{Offset: d.tokStart, Err: err}
		}
		handler, ok := d.spec.tokens[tag]
		if !ok {
			diag.ReportWarning(d.reporter, diag.DecUnknownToken, d.tokenSpan(),
				fmt.Sprintf("unknown token 0x%02X skipped", tag))
			continue
		}
		name := d.spec.names[tag]
		trace.Point(d.tracer, trace.ScopeToken, "token:"+name, d.spanID, fmt.Sprintf("0x%02X@0x%02X", tag, d.tokStart))
		if err := handler(d, tag); err != nil {
			return nil, &Error{Offset: d.tokStart, Tag: tag, Token: name, Err: err}
		}
	}
	if err := d.finish(); err != nil {
		return nil, &Error{Offset: d.r.Pos(), Token: "end", Err: err}
	}
	return model.New(d.blocks), nil
}

func (d *Decoder) readHeader() error {
	if err := d.r.Seek(d.spec.headerOffset); err != nil {
		return &Error{Err: err}
	}
	blockLen, err := d.r.ReadByte()
	if err != nil {
		return &Error{Offset: d.r.Pos(), Err: err}
	}
	count, err := d.r.ReadByte()
	if err != nil {
		return &Error{Offset: d.r.Pos(), Err: err}
	}
	d.header = Header{BlockLength: blockLen, Count: count}
	return nil
}

func (d *Decoder) tokenSpan() diag.Span {
	return diag.Span{Start: d.tokStart, End: d.r.Pos()}
}

func (d *Decoder) nextName() string {
	name := fmt.Sprintf("variable%d", d.varCount)
	d.varCount++
	return name
}

// token handlers

func (d *Decoder) readLocalToken(tag byte) error {
	v, err := d.readLocal(tag)
	if err != nil {
		return err
	}
	d.operands = append(d.operands, v)
	return nil
}

func (d *Decoder) readLocal(tag byte) (model.Variable, error) {
	var (
		order   binary.ByteOrder
		storage model.StorageClass
	)
	switch tag {
	case TagLocalInt:
		order, storage = binary.BigEndian, model.LocalInt
	case TagLocalIdent:
		order, storage = binary.LittleEndian, model.LocalIdent
	default:
		return model.Variable{}, fmt.Errorf("expected local variable token, got 0x%02X", tag)
	}
	value, err := d.r.ReadUint32(order)
	if err != nil {
		return model.Variable{}, err
	}
	return model.NewVariable(d.nextName(), storage, model.Integer, model.Lit(value)), nil
}

func (d *Decoder) readFunctionToken(byte) error {
	id, err := d.r.ReadUint32(binary.BigEndian)
	if err != nil {
		return err
	}
	fn, ok := d.cat.Function(id)
	if !ok {
		return fmt.Errorf("%w: 0x%08X", ErrUnknownFunction, id)
	}
	padding := 7
	if fn.Arity == 0 {
		padding = 3
	}
	if err := d.r.Skip(padding); err != nil {
		return err
	}

	args := make([]model.Variable, 0, fn.Arity)
	for i := 0; i < fn.Arity; i++ {
		argTag, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		if argTag != TagLocalInt && argTag != TagLocalIdent {
			return fmt.Errorf("%w: %s argument %d is token 0x%02X, not a local variable",
				ErrArityMismatch, fn.Name, i, argTag)
		}
		arg, err := d.readLocal(argTag)
		if err != nil {
			return err
		}
		args = append(args, arg)
	}
	call, err := model.NewFunctionCall(fn.ID, fn.Name, fn.Arity, fn.Returns, args)
	if err != nil {
		return err
	}
	d.operands = append(d.operands, call)

	// The team flag check is a complete condition on its own.
	if len(d.operands) == 1 && fn.Role == catalog.RoleTeamBitFlag {
		d.closeImplicit()
	}
	return nil
}

func (d *Decoder) readMemoryRef(byte) error {
	magic, err := d.r.ReadUint32(binary.BigEndian)
	if err != nil {
		return err
	}
	sym, ok := d.cat.Symbol(magic)
	if !ok {
		return fmt.Errorf("%w: 0x%08X", ErrUnknownSymbol, magic)
	}
	typeTag, err := d.r.ReadUint24(binary.BigEndian)
	if err != nil {
		return err
	}
	typ := d.cat.TypeTag(typeTag)
	if typ == model.Unknown {
		diag.ReportWarning(d.reporter, diag.DecUnknownTypeTag, d.tokenSpan(),
			fmt.Sprintf("type tag 0x%06X of %s is unknown; using %s", typeTag, sym.Name, sym.Type))
		typ = sym.Type
	}

	if next, err := d.r.PeekByte(); err == nil && next == MarkerExtended {
		if _, err := d.r.ReadByte(); err != nil {
			return err
		}
		payload, err := d.r.ReadUint24(binary.BigEndian)
		if err != nil {
			return err
		}
		d.extPending = true
		d.extTag = payload
		trace.Point(d.tracer, trace.ScopeToken, "extended-operator", d.spanID, fmt.Sprintf("type 0x%06X", payload))
	}
	d.operands = append(d.operands, model.NewVariable(sym.Name, model.MemoryReference, typ, model.Sym(sym.Name)))
	return nil
}

func (d *Decoder) readComparator(tag byte) error {
	cmp := comparatorCodes[tag]
	if len(d.operands) < 2 {
		diag.ReportWarning(d.reporter, diag.DecComparatorStarved, d.tokenSpan(),
			fmt.Sprintf("comparator %s needs two operands, %d buffered; dropped", cmp.Symbol(), len(d.operands)))
		return nil
	}
	if cmp.Reserved() {
		diag.ReportInfo(d.reporter, diag.DecReservedCompare, d.tokenSpan(),
			fmt.Sprintf("comparator 0x%02X has no known meaning", tag))
	}
	d.cmps = append(d.cmps, cmp)
	return d.assemble(false)
}

func (d *Decoder) readBlockSeparator(byte) error {
	if err := d.assemble(true); err != nil {
		return err
	}
	d.closeBlock()
	return nil
}

// assembly

func (d *Decoder) popOperand() model.Operand {
	op := d.operands[0]
	d.operands = d.operands[1:]
	return op
}

func (d *Decoder) popComparator() model.Comparator {
	if len(d.cmps) == 0 {
		return d.spec.defaultCmp
	}
	c := d.cmps[0]
	d.cmps = d.cmps[1:]
	return c
}

// assemble builds conditions from buffered operands. Outside a flush it
// needs a queued comparator; when flushing, missing comparators fall back to
// the format default. A pending extended operator waits for its anchor plus
// two operands, or anchor plus one when flushing.
func (d *Decoder) assemble(flush bool) error {
	for {
		if d.extPending {
			n := len(d.operands)
			if n < 3 && !(flush && n == 2) {
				return nil
			}
			if err := d.assembleBitFlag(min(n, 3)); err != nil {
				return err
			}
			continue
		}
		if len(d.operands) < 2 {
			return nil
		}
		if len(d.cmps) == 0 && !flush {
			return nil
		}
		left, right := d.popOperand(), d.popOperand()
		d.appendCondition(left, right, d.popComparator())
	}
}

func (d *Decoder) assembleBitFlag(n int) error {
	anchor := d.popOperand()
	subs := make([]model.Condition, 0, n-1)
	for i := 1; i < n; i++ {
		subs = append(subs, model.NewSubCondition(d.popOperand()))
	}
	cond, err := model.NewBitFlagCondition(anchor, subs, d.popComparator())
	if err != nil {
		return err
	}
	trace.Point(d.tracer, trace.ScopeToken, "bitflag-condition", d.spanID,
		fmt.Sprintf("type 0x%06X, %d sub-condition(s)", d.extTag, len(subs)))
	d.current = append(d.current, cond)
	d.extPending = false
	d.extTag = 0
	return nil
}

func (d *Decoder) appendCondition(left, right model.Operand, cmp model.Comparator) {
	typ := conditionType(left, right)
	if typ == model.Boolean && cmp == model.Equal {
		left, right = asBoolean(left), asBoolean(right)
	}
	d.current = append(d.current, model.NewCondition(left, right, cmp, typ))
}

// closeImplicit turns the oldest operand into "operand == 1". A bare literal
// is a truth test; calls and memory references keep their own type so an
// integer query stays an integer comparison.
func (d *Decoder) closeImplicit() {
	op := d.popOperand()
	if v, ok := op.(model.Variable); ok && !v.System() {
		one := model.NewVariable(d.nextName(), model.LocalInt, model.Boolean, model.Lit(1))
		d.current = append(d.current, model.NewCondition(v.WithType(model.Boolean), one, model.Equal, model.Boolean))
		return
	}
	one := model.NewVariable(d.nextName(), model.LocalInt, model.Integer, model.Lit(1))
	d.appendCondition(op, one, model.Equal)
}

func (d *Decoder) closeBlock() {
	if len(d.current) > 0 {
		d.blocks = append(d.blocks, model.NewBlock(d.current))
		d.current = nil
	}
	d.cmps = nil
}

func (d *Decoder) finish() error {
	if err := d.assemble(true); err != nil {
		return err
	}
	switch len(d.operands) {
	case 0:
	case 1:
		d.closeImplicit()
	default:
		diag.ReportWarning(d.reporter, diag.DecTrailingOperands, diag.Span{Start: d.r.Pos(), End: d.r.Pos()},
			fmt.Sprintf("%d operands left at end of stream; dropped", len(d.operands)))
		d.operands = nil
	}
	d.extPending = false
	d.closeBlock()
	return nil
}

// conditionType picks the rendering type of a comparison: a call's return
// type first, then a memory reference's type, then Integer.
func conditionType(left, right model.Operand) model.SemType {
	for _, op := range []model.Operand{left, right} {
		if _, ok := op.(model.FunctionCall); ok {
			return model.TypeOf(op)
		}
	}
	for _, op := range []model.Operand{left, right} {
		if v, ok := op.(model.Variable); ok && v.System() {
			return model.TypeOf(op)
		}
	}
	return model.Integer
}

// asBoolean retypes literal variables holding 0 or 1; other literals, calls
// and memory references keep their type.
func asBoolean(op model.Operand) model.Operand {
	v, ok := op.(model.Variable)
	if !ok || v.System() {
		return op
	}
	if val := v.Value(); val.IsLiteral(0) || val.IsLiteral(1) {
		return v.WithType(model.Boolean)
	}
	return op
}
