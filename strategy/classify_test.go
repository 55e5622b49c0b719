package strategy

import (
	"testing"

	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/parser"
)

func mustCompile(t *testing.T, pattern string, flags bytecode.Flags) *bytecode.Program {
	t.Helper()
	prog, err := parser.Compile(pattern, flags)
	if err != nil {
		t.Fatalf("parser.Compile(%q) error = %v", pattern, err)
	}
	return prog
}

func TestClassifyTopLevelLiteralAlternationIsMultiString(t *testing.T) {
	prog := mustCompile(t, "cat|dog|bird", 0)
	c := classify(prog, DefaultConfig())
	if !c.multiString {
		t.Fatal("expected a top-level plain-literal alternation to classify as multiString")
	}
	if c.literals.Len() != 3 {
		t.Fatalf("literals.Len() = %d, want 3", c.literals.Len())
	}
}

func TestClassifySingleLiteralIsNotMultiString(t *testing.T) {
	prog := mustCompile(t, "hello", 0)
	c := classify(prog, DefaultConfig())
	if c.multiString {
		t.Fatal("a single literal should use the prefilter-plus-executor path, not the exclusive multi-string path")
	}
	if c.literals == nil || c.literals.Len() != 1 {
		t.Fatalf("expected exactly one usable literal, got %v", c.literals)
	}
}

func TestClassifyPrefersBitParallelWhenFeasible(t *testing.T) {
	prog := mustCompile(t, "a(b)c", 0)
	c := classify(prog, DefaultConfig())
	if c.executor != KindBitParallel {
		t.Fatalf("executor = %v, want KindBitParallel for a small capture-only program", c.executor)
	}
}

func TestClassifyFallsBackToBacktrackerForBackreferences(t *testing.T) {
	prog := mustCompile(t, `(a)\1`, 0)
	c := classify(prog, DefaultConfig())
	if c.executor != KindBacktracker {
		t.Fatalf("executor = %v, want KindBacktracker for a pattern with a backreference", c.executor)
	}
}

func TestClassifyHonorsDisabledBitParallel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableBitParallel = false
	prog := mustCompile(t, "a(b)c", 0)
	c := classify(prog, cfg)
	if c.executor == KindBitParallel {
		t.Fatal("EnableBitParallel=false should rule out the bit-parallel backend")
	}
}

func TestClassifyHonorsDisabledPrefilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnablePrefilter = false
	prog := mustCompile(t, "cat|dog|bird", 0)
	c := classify(prog, cfg)
	if c.multiString {
		t.Fatal("EnablePrefilter=false should rule out the multi-string classification")
	}
	if c.literals != nil {
		t.Fatal("EnablePrefilter=false should leave the literal prefilter unset")
	}
}

func TestClassifyMinLiteralLenRejectsShortLiteral(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinLiteralLen = 5
	// "ab.*" extracts a single incomplete literal "ab" (the dot breaks
	// extraction), so this never reaches the multiString rule and exercises
	// MinLiteralLen's effect on the single-literal prefilter path.
	prog := mustCompile(t, "ab.*", 0)
	c := classify(prog, cfg)
	if c.literals != nil {
		t.Fatal("a literal shorter than MinLiteralLen should not back a prefilter")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindMultiString: "multi_string",
		KindBitParallel: "bit_parallel",
		KindPike:        "pike",
		KindBacktracker: "backtracker",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
