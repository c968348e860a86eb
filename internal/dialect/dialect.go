package dialect

import (
	"fmt"
	"strings"
)

// Kind is a target language.
type Kind uint8

const (
	Unknown Kind = iota
	C
	Squirrel

	kindCount
)

func (k Kind) String() string {
	switch k {
	case C:
		return "c"
	case Squirrel:
		return "squirrel"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}

// Parse converts a CLI/config spelling to a Kind.
func Parse(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c":
		return C, nil
	case "squirrel", "nut", "sq":
		return Squirrel, nil
	}
	return Unknown, fmt.Errorf("invalid language: %q (expected: c|squirrel)", s)
}

// All returns every supported dialect in a stable order.
func All() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := C; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Syntax is the per-dialect spelling table.
type Syntax struct {
	FuncKeyword string // "bool" or "function"
	ResultDecl  string // keyword before "result = false;"
	IntDecl     string // keyword for integer locals
	TrueLit     string
	FalseLit    string
	// BoolLiterals renders Boolean-typed literals as TrueLit/FalseLit.
	BoolLiterals bool
	// NestGuards renders one guard per condition instead of a joined expression.
	NestGuards bool
	// SimplifyBoolEq collapses "x == 1" to "x" and "x == 0" to "!x".
	SimplifyBoolEq bool
	// DeclareLiterals pre-declares every non-system variable.
	DeclareLiterals bool
}

var syntaxes = [kindCount]Syntax{
	C: {
		FuncKeyword:    "bool",
		ResultDecl:     "bool",
		IntDecl:        "int",
		TrueLit:        "true",
		FalseLit:       "false",
		SimplifyBoolEq: true,
	},
	Squirrel: {
		FuncKeyword:     "function",
		ResultDecl:      "local",
		IntDecl:         "local",
		TrueLit:         "true",
		FalseLit:        "false",
		BoolLiterals:    true,
		NestGuards:      true,
		DeclareLiterals: true,
	},
}

// SyntaxOf returns the spelling table of k; Unknown gets the C table.
func SyntaxOf(k Kind) Syntax {
	if k <= Unknown || k >= kindCount {
		return syntaxes[C]
	}
	return syntaxes[k]
}
