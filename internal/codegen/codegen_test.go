package codegen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"l5cond/internal/catalog"
	"l5cond/internal/decoder"
	"l5cond/internal/dialect"
	"l5cond/internal/model"
	"l5cond/internal/testkit"
)

const (
	fnSubPhase = 0x98EE4B47
	fnHaveItem = 0x8D7666D8

	magicSubPhase = 0x3F1C8A02
	magicBitFlag  = 0x6B0E5D91
)

func lit(name string, v uint32) model.Variable {
	return model.NewVariable(name, model.LocalInt, model.Integer, model.Lit(v))
}

func boolLit(name string, v uint32) model.Variable {
	return lit(name, v).WithType(model.Boolean)
}

func sys(name string, typ model.SemType) model.Variable {
	return model.NewVariable(name, model.MemoryReference, typ, model.Sym(name))
}

func call(t *testing.T, id uint32, args ...model.Variable) model.FunctionCall {
	t.Helper()
	fn, ok := catalog.Default().Function(id)
	if !ok {
		t.Fatalf("no catalog entry for 0x%08X", id)
	}
	c, err := model.NewFunctionCall(fn.ID, fn.Name, fn.Arity, fn.Returns, args)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func blocks(bs ...[]model.Condition) *model.Model {
	out := make([]model.Block, 0, len(bs))
	for _, b := range bs {
		out = append(out, model.NewBlock(b))
	}
	return model.New(out)
}

func generate(kind dialect.Kind, opt Options, m *model.Model) string {
	return New(kind, opt).Generate(m)
}

func assertCode(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("generated code mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyModelReturnsTrue(t *testing.T) {
	m, err := decoder.Decode(testkit.NewPayload(decoder.FormatLocal).Bytes(), decoder.Options{})
	if err != nil {
		t.Fatal(err)
	}
	assertCode(t, `bool condition()
{
    bool result = false;
    result = true;
    return result;
}
`, generate(dialect.C, Options{}, m))

	assertCode(t, `function condition()
{
    local result = false;
    result = true;
    return result;
}
`, generate(dialect.Squirrel, Options{}, nil))
}

func TestLoneLiteralIsBareTruthyGuard(t *testing.T) {
	m, err := decoder.Decode(testkit.NewPayload(decoder.FormatLocal).Int(1).Bytes(), decoder.Options{})
	if err != nil {
		t.Fatal(err)
	}
	got := generate(dialect.C, Options{}, m)
	if strings.Contains(got, "== 1") {
		t.Fatalf("implicit comparison leaked:\n%s", got)
	}
	if !strings.Contains(got, "    if (1) {\n") {
		t.Fatalf("expected bare truthy guard:\n%s", got)
	}
}

func TestBooleanSimplification(t *testing.T) {
	item := call(t, fnHaveItem, lit("variable0", 42))
	tests := []struct {
		name string
		cond model.Condition
		want string
	}{
		{"eq zero", model.NewCondition(item, boolLit("variable1", 0), model.Equal, model.Boolean), "if (!isHaveItem(42)) {"},
		{"zero eq", model.NewCondition(boolLit("variable1", 0), item, model.Equal, model.Boolean), "if (!isHaveItem(42)) {"},
		{"eq one", model.NewCondition(item, boolLit("variable1", 1), model.Equal, model.Boolean), "if (isHaveItem(42)) {"},
		{"one eq", model.NewCondition(boolLit("variable1", 1), item, model.Equal, model.Boolean), "if (isHaveItem(42)) {"},
		{"not equal op", model.NewCondition(item, boolLit("variable1", 1), model.Greater, model.Boolean), "if (isHaveItem(42) > 1) {"},
		{"integer typed", model.NewCondition(call(t, fnSubPhase), lit("variable1", 0), model.Equal, model.Integer), "if (getGameSubPhase() == 0) {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generate(dialect.C, Options{}, blocks([]model.Condition{tt.cond}))
			if !strings.Contains(got, tt.want) {
				t.Fatalf("missing %q in:\n%s", tt.want, got)
			}
			if strings.Contains(got, "== 0") && tt.cond.Type() == model.Boolean {
				t.Fatalf("boolean comparison not simplified:\n%s", got)
			}
		})
	}

	// Squirrel keeps the comparison.
	m := blocks([]model.Condition{model.NewCondition(item, boolLit("variable1", 0), model.Equal, model.Boolean)})
	if got := generate(dialect.Squirrel, Options{}, m); !strings.Contains(got, "if (CMND_IS_HAVE_ITEM(42) == false) {") {
		t.Fatalf("unexpected squirrel output:\n%s", got)
	}
}

func twoBlocks(t *testing.T) *model.Model {
	return blocks(
		[]model.Condition{model.NewCondition(call(t, fnSubPhase), lit("variable0", 5), model.GreaterEqual, model.Integer)},
		[]model.Condition{model.NewCondition(call(t, fnHaveItem, lit("variable1", 3)), boolLit("variable2", 1), model.Equal, model.Boolean)},
	)
}

func TestIndependentBlocksC(t *testing.T) {
	assertCode(t, `bool condition()
{
    bool result = false;
    if (getGameSubPhase() >= 5) {
        result = true;
    }
    if (isHaveItem(3)) {
        result = true;
    }
    return result;
}
`, generate(dialect.C, Options{}, twoBlocks(t)))
}

func TestIndependentBlocksSquirrel(t *testing.T) {
	assertCode(t, `function condition()
{
    local result = false;
    local variable0 = 5;
    local variable2 = true;
    if (CMND_GET_GAME_SUB_PHASE() >= 5) {
        result = true;
    }
    if (CMND_IS_HAVE_ITEM(3) == true) {
        result = true;
    }
    return result;
}
`, generate(dialect.Squirrel, Options{}, twoBlocks(t)))
}

func TestBlockJoinsOrNests(t *testing.T) {
	m := blocks([]model.Condition{
		model.NewCondition(call(t, fnSubPhase), lit("variable0", 5), model.GreaterEqual, model.Integer),
		model.NewCondition(call(t, fnHaveItem, lit("variable1", 3)), boolLit("variable2", 1), model.Equal, model.Boolean),
	})
	assertCode(t, `bool condition()
{
    bool result = false;
    if (getGameSubPhase() >= 5 && isHaveItem(3)) {
        result = true;
    }
    return result;
}
`, generate(dialect.C, Options{}, m))

	assertCode(t, `function condition()
{
    local result = false;
    local variable0 = 5;
    local variable2 = true;
    if (CMND_GET_GAME_SUB_PHASE() >= 5) {
        if (CMND_IS_HAVE_ITEM(3) == true) {
            result = true;
        }
    }
    return result;
}
`, generate(dialect.Squirrel, Options{}, m))
}

func bitFlagModel(t *testing.T, subs ...model.Condition) *model.Model {
	bf, err := model.NewBitFlagCondition(sys("currentBitFlag", model.BitFlag), subs, model.Equal)
	if err != nil {
		t.Fatal(err)
	}
	return blocks([]model.Condition{
		bf,
		model.NewCondition(call(t, fnSubPhase), lit("variable2", 4), model.Less, model.Integer),
	})
}

func TestTwoStageBitFlag(t *testing.T) {
	m := bitFlagModel(t, model.NewSubCondition(lit("variable0", 7)), model.NewSubCondition(lit("variable1", 1)))
	assertCode(t, `bool condition()
{
    bool result = false;
    if (getLastGlobalBitFlag() == 7) {
        int flag_variable0 = getGlobalBitFlag(7);
        if (flag_variable0 == 1) {
            if (getGameSubPhase() < 4) {
                result = true;
            }
        }
    }
    return result;
}
`, generate(dialect.C, Options{}, m))

	assertCode(t, `function condition()
{
    local result = false;
    local variable0 = 7;
    local variable1 = 1;
    local variable2 = 4;
    if (CMND_GET_LAST_GLOBAL_BIT_FLAG() == 7) {
        local flag_variable0 = CMND_GET_GLOBAL_BIT_FLAG(7);
        if (flag_variable0 == 1) {
            if (CMND_GET_GAME_SUB_PHASE() < 4) {
                result = true;
            }
        }
    }
    return result;
}
`, generate(dialect.Squirrel, Options{}, m))
}

func TestTwoStageBitFlagSingleSub(t *testing.T) {
	bf, err := model.NewBitFlagCondition(sys("currentBitFlag", model.BitFlag),
		[]model.Condition{model.NewSubCondition(lit("variable0", 7))}, model.GreaterEqual)
	if err != nil {
		t.Fatal(err)
	}
	got := generate(dialect.C, Options{}, blocks([]model.Condition{bf}))
	assertCode(t, `bool condition()
{
    bool result = false;
    if (getLastGlobalBitFlag() >= 7) {
        result = true;
    }
    return result;
}
`, got)
}

func TestTwoStageBitFlagIsNeverJoined(t *testing.T) {
	p := testkit.NewPayload(decoder.FormatMemory).
		Mem(magicBitFlag, 2, true).Int(7).Int(1).Cmp(model.Equal)
	m, err := decoder.Decode(p.Bytes(), decoder.Options{Format: decoder.FormatMemory})
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range dialect.All() {
		got := generate(kind, Options{}, m)
		if strings.Contains(got, "&&") {
			t.Fatalf("%s: two-stage check joined into one guard:\n%s", kind, got)
		}
		if n := strings.Count(got, "if ("); n != 2 {
			t.Fatalf("%s: expected 2 nested guards, got %d:\n%s", kind, n, got)
		}
	}
}

func TestSystemSymbols(t *testing.T) {
	m := blocks([]model.Condition{
		model.NewCondition(sys("currentSubPhase", model.SubPhase), lit("variable0", 3), model.GreaterEqual, model.SubPhase),
	})
	if got := generate(dialect.C, Options{}, m); !strings.Contains(got, "if (currentSubPhase >= 3) {") {
		t.Fatalf("unexpected C output:\n%s", got)
	}
	got := generate(dialect.Squirrel, Options{}, m)
	if !strings.Contains(got, "if (CMND_GET_GAME_SUB_PHASE() >= 3) {") {
		t.Fatalf("unexpected squirrel output:\n%s", got)
	}
	if strings.Contains(got, "local currentSubPhase") {
		t.Fatalf("system symbol was declared:\n%s", got)
	}
}

func TestReservedComparatorPlaceholder(t *testing.T) {
	m := blocks([]model.Condition{
		model.NewCondition(call(t, fnSubPhase), lit("variable0", 5), model.Reserved79, model.Integer),
	})
	if got := generate(dialect.C, Options{}, m); !strings.Contains(got, "if (getGameSubPhase() ?? 5) {") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestSimplify(t *testing.T) {
	m := blocks([]model.Condition{
		model.NewCondition(call(t, fnSubPhase), lit("variable0", 5), model.GreaterEqual, model.Integer),
		model.NewCondition(call(t, fnHaveItem, lit("variable1", 3)), boolLit("variable2", 1), model.Equal, model.Boolean),
	}, []model.Condition{
		model.NewCondition(call(t, fnSubPhase), lit("variable0", 5), model.Less, model.Integer),
	})
	assertCode(t, `bool condition()
{
    bool result = false;
    int variable0 = 5;
    if (getGameSubPhase() >= variable0) {
        if (isHaveItem(3)) {
            result = true;
        }
    }
    if (getGameSubPhase() < variable0) {
        result = true;
    }
    return result;
}
`, generate(dialect.C, Options{Simplify: true}, m))

	// Squirrel output does not change.
	if a, b := generate(dialect.Squirrel, Options{Simplify: true}, m), generate(dialect.Squirrel, Options{}, m); a != b {
		t.Fatalf("simplify changed squirrel output:\n%s\nvs\n%s", a, b)
	}
}

func TestBeautify(t *testing.T) {
	assertCode(t, `bool condition()
{
    bool result = false;

    if (getGameSubPhase() >= 5) {
        result = true;
    }

    if (isHaveItem(3)) {
        result = true;
    }

    return result;
}
`, generate(dialect.C, Options{Beautify: true}, twoBlocks(t)))

	m := bitFlagModel(t, model.NewSubCondition(lit("variable0", 7)), model.NewSubCondition(lit("variable1", 1)))
	got := generate(dialect.Squirrel, Options{Beautify: true}, m)
	for _, want := range []string{
		"    local result = false;\n\n    local variable0 = 7;\n",
		"    local variable2 = 4;\n\n    if (",
		"CMND_GET_GLOBAL_BIT_FLAG(7);\n\n        if (flag_variable0 == 1) {",
		"    }\n\n    return result;\n}\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestOptions(t *testing.T) {
	got := generate(dialect.C, Options{FuncName: "check_door", Indent: -1}, twoBlocks(t))
	if !strings.HasPrefix(got, "bool check_door()\n{\n\tbool result = false;\n") {
		t.Fatalf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "\t\tresult = true;\n") {
		t.Fatalf("expected tab indentation:\n%s", got)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := testkit.NewPayload(decoder.FormatMemory).
		Mem(magicBitFlag, 2, true).Int(7).Int(1).Cmp(model.Equal).
		Call(fnSubPhase, 0).Int(4).Cmp(model.Less).
		Sep().
		Call(fnHaveItem, 1, testkit.Arg(9)).Int(0).Cmp(model.Equal)
	m, err := decoder.Decode(p.Bytes(), decoder.Options{Format: decoder.FormatMemory})
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range dialect.All() {
		for _, opt := range []Options{{}, {Beautify: true}, {Simplify: true}} {
			g := New(kind, opt)
			first, second := g.Generate(m), g.Generate(m)
			if first != second {
				t.Fatalf("%s %+v: output differs between runs:\n%s\nvs\n%s", kind, opt, first, second)
			}
		}
	}
}

func TestDecodedComparisonsKeepIntegerLiterals(t *testing.T) {
	tests := []struct {
		name    string
		format  decoder.Format
		payload *testkit.Payload
		kind    dialect.Kind
		want    []string
		absent  []string
	}{
		{
			format:  decoder.FormatLocal,
			name:    "lone sub-phase call c",
			payload: testkit.NewPayload(decoder.FormatLocal).Call(fnSubPhase, 0),
			kind:    dialect.C,
			want:    []string{"if (getGameSubPhase() == 1) {"},
			absent:  []string{"if (getGameSubPhase()) {"},
		},
		{
			format:  decoder.FormatLocal,
			name:    "lone sub-phase call squirrel",
			payload: testkit.NewPayload(decoder.FormatLocal).Call(fnSubPhase, 0),
			kind:    dialect.Squirrel,
			want:    []string{"if (CMND_GET_GAME_SUB_PHASE() == 1) {", "local variable0 = 1;"},
			absent:  []string{"local variable0 = true;"},
		},
		{
			name:    "lone sub-phase symbol c",
			format:  decoder.FormatMemory,
			payload: testkit.NewPayload(decoder.FormatMemory).Mem(magicSubPhase, 1, false),
			kind:    dialect.C,
			want:    []string{"if (currentSubPhase == 1) {"},
		},
		{
			name:    "lone sub-phase symbol squirrel",
			format:  decoder.FormatMemory,
			payload: testkit.NewPayload(decoder.FormatMemory).Mem(magicSubPhase, 1, false),
			kind:    dialect.Squirrel,
			want:    []string{"if (CMND_GET_GAME_SUB_PHASE() == 1) {", "local variable0 = 1;"},
			absent:  []string{"== true"},
		},
		{
			format:  decoder.FormatLocal,
			name:    "boolean call below five c",
			payload: testkit.NewPayload(decoder.FormatLocal).Call(fnHaveItem, 1, testkit.Arg(3)).Int(5).Cmp(model.Less),
			kind:    dialect.C,
			want:    []string{"if (isHaveItem(3) < 5) {"},
		},
		{
			format:  decoder.FormatLocal,
			name:    "boolean call below five squirrel",
			payload: testkit.NewPayload(decoder.FormatLocal).Call(fnHaveItem, 1, testkit.Arg(3)).Int(5).Cmp(model.Less),
			kind:    dialect.Squirrel,
			want:    []string{"if (CMND_IS_HAVE_ITEM(3) < 5) {", "local variable1 = 5;"},
			absent:  []string{"< true", "local variable1 = true;"},
		},
		{
			format:  decoder.FormatLocal,
			name:    "boolean call equal zero squirrel",
			payload: testkit.NewPayload(decoder.FormatLocal).Call(fnHaveItem, 1, testkit.Arg(3)).Int(0).Cmp(model.Equal),
			kind:    dialect.Squirrel,
			want:    []string{"if (CMND_IS_HAVE_ITEM(3) == false) {", "local variable1 = false;"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := decoder.Decode(tt.payload.Bytes(), decoder.Options{Format: tt.format})
			if err != nil {
				t.Fatal(err)
			}
			got := generate(tt.kind, Options{}, m)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Fatalf("missing %q in:\n%s", w, got)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Fatalf("unexpected %q in:\n%s", a, got)
				}
			}
		})
	}
}
