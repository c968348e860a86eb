package modelio

import (
	"l5cond/internal/model"
)

// SchemaVersion is bumped whenever Document changes shape.
const SchemaVersion uint16 = 1

// OperandDoc is one condition side or call argument.
type OperandDoc struct {
	Kind    string       `json:"kind" msgpack:"kind"` // "variable" or "call"
	Name    string       `json:"name" msgpack:"name"`
	Storage string       `json:"storage,omitempty" msgpack:"storage,omitempty"`
	Type    string       `json:"type" msgpack:"type"`
	Literal *uint32      `json:"literal,omitempty" msgpack:"literal,omitempty"`
	Symbol  string       `json:"symbol,omitempty" msgpack:"symbol,omitempty"`
	ID      uint32       `json:"id,omitempty" msgpack:"id,omitempty"`
	Args    []OperandDoc `json:"args,omitempty" msgpack:"args,omitempty"`
}

// ConditionDoc is one comparison; two-stage bit-flag checks carry Subs
// instead of Right.
type ConditionDoc struct {
	Left       OperandDoc   `json:"left" msgpack:"left"`
	Comparator string       `json:"comparator" msgpack:"comparator"`
	Right      *OperandDoc  `json:"right,omitempty" msgpack:"right,omitempty"`
	Subs       []OperandDoc `json:"subs,omitempty" msgpack:"subs,omitempty"`
	Type       string       `json:"type" msgpack:"type"`
}

// BlockDoc is one AND-group.
type BlockDoc struct {
	Conditions []ConditionDoc `json:"conditions" msgpack:"conditions"`
}

// Document is the serializable form of a model.
type Document struct {
	Schema uint16     `json:"schema" msgpack:"schema"`
	Format string     `json:"format,omitempty" msgpack:"format,omitempty"`
	Blocks []BlockDoc `json:"blocks" msgpack:"blocks"`
}

// FromModel converts m; format is the payload format label ("v1", "v2") or "".
func FromModel(m *model.Model, format string) Document {
	doc := Document{Schema: SchemaVersion, Format: format, Blocks: []BlockDoc{}}
	if m == nil {
		return doc
	}
	for _, b := range m.Blocks() {
		bd := BlockDoc{Conditions: make([]ConditionDoc, 0, b.Len())}
		for _, c := range b.Conditions() {
			bd.Conditions = append(bd.Conditions, conditionDoc(c))
		}
		doc.Blocks = append(doc.Blocks, bd)
	}
	return doc
}

func conditionDoc(c model.Condition) ConditionDoc {
	cd := ConditionDoc{
		Left:       operandDoc(c.Left()),
		Comparator: c.Comparator().Symbol(),
		Type:       c.Type().String(),
	}
	if c.IsBitFlag() {
		for _, sub := range c.Subs() {
			cd.Subs = append(cd.Subs, operandDoc(sub.Left()))
		}
		return cd
	}
	if c.Right() != nil {
		right := operandDoc(c.Right())
		cd.Right = &right
	}
	return cd
}

func operandDoc(op model.Operand) OperandDoc {
	switch o := op.(type) {
	case model.Variable:
		return variableDoc(o)
	case model.FunctionCall:
		d := OperandDoc{Kind: "call", Name: o.Name(), Type: o.Returns().String(), ID: o.ID()}
		for _, a := range o.Args() {
			d.Args = append(d.Args, variableDoc(a))
		}
		return d
	}
	return OperandDoc{Kind: "unknown"}
}

func variableDoc(v model.Variable) OperandDoc {
	d := OperandDoc{Kind: "variable", Name: v.Name(), Storage: v.Storage().String(), Type: v.Type().String()}
	switch val := v.Value(); val.Kind {
	case model.ValueLiteral:
		lit := val.Literal
		d.Literal = &lit
	case model.ValueSymbol:
		d.Symbol = val.Symbol
	}
	return d
}
