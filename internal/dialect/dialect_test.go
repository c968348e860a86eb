package dialect

import "testing"

func TestParse(t *testing.T) {
	tests := map[string]Kind{"c": C, "C": C, " squirrel ": Squirrel, "nut": Squirrel}
	for in, want := range tests {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := Parse("lua"); err == nil {
		t.Error("expected error for lua")
	}
}

func TestKeywords(t *testing.T) {
	if !IsKeyword(C, "bool") || IsKeyword(C, "local") {
		t.Error("unexpected C keyword set")
	}
	if !IsKeyword(Squirrel, "local") || IsKeyword(Squirrel, "bool") {
		t.Error("unexpected squirrel keyword set")
	}
	if IsKeyword(Unknown, "if") {
		t.Error("unknown dialect has no keywords")
	}
	kw := Keywords(Squirrel)
	for i := 1; i < len(kw); i++ {
		if kw[i-1] > kw[i] {
			t.Fatalf("keywords not sorted: %v", kw)
		}
	}
}

func TestSyntaxOf(t *testing.T) {
	if s := SyntaxOf(Squirrel); !s.NestGuards || !s.DeclareLiterals || s.SimplifyBoolEq {
		t.Errorf("squirrel syntax = %+v", s)
	}
	if s := SyntaxOf(Unknown); s.FuncKeyword != "bool" {
		t.Errorf("fallback syntax = %+v", s)
	}
	if got := All(); len(got) != 2 || got[0] != C || got[1] != Squirrel {
		t.Errorf("All() = %v", got)
	}
}
