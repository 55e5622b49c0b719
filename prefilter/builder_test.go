package prefilter

import (
	"testing"

	"github.com/coregx/ecmaregex/literal"
)

func TestBuildEmptySeq(t *testing.T) {
	if pf := Build(literal.NewSeq()); pf != nil {
		t.Fatalf("Build() on empty seq = %v, want nil", pf)
	}
}

func TestBuildSingleByteSelectsMemchr(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte("x"), true))
	pf := Build(seq)
	if _, ok := pf.(*MemchrPrefilter); !ok {
		t.Fatalf("Build() = %T, want *MemchrPrefilter", pf)
	}
	if !pf.IsComplete() {
		t.Fatal("expected a complete single-literal prefilter to report complete")
	}
}

func TestBuildMultiByteSelectsMemmem(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte("hello"), false))
	pf := Build(seq)
	if _, ok := pf.(*MemmemPrefilter); !ok {
		t.Fatalf("Build() = %T, want *MemmemPrefilter", pf)
	}
	if pf.IsComplete() {
		t.Fatal("expected incomplete literal to produce a non-complete prefilter")
	}
}

func TestBuildMultipleLiteralsSelectsAhoCorasick(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("bar"), true),
	)
	pf := Build(seq)
	if _, ok := pf.(*AhoCorasickPrefilter); !ok {
		t.Fatalf("Build() = %T, want *AhoCorasickPrefilter", pf)
	}
	if !pf.IsComplete() {
		t.Fatal("expected AllComplete literals to produce a complete prefilter")
	}
}

func TestBuildRejectsInexactSingleLiteral(t *testing.T) {
	seq := literal.NewSeq(literal.Literal{Bytes: []byte("x"), Complete: true, Inexact: true})
	if pf := Build(seq); pf != nil {
		t.Fatalf("Build() on inexact single literal = %v, want nil", pf)
	}
}

func TestBuildRejectsEmptyLiteralBytes(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral(nil, true))
	if pf := Build(seq); pf != nil {
		t.Fatalf("Build() on empty-byte literal = %v, want nil", pf)
	}
}

func TestBuildMultiLiteralsPartialComplete(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("ba"), false),
	)
	pf := Build(seq)
	ac, ok := pf.(*AhoCorasickPrefilter)
	if !ok {
		t.Fatalf("Build() = %T, want *AhoCorasickPrefilter", pf)
	}
	if ac.IsComplete() {
		t.Fatal("expected a mixed complete/incomplete literal set to produce a non-complete prefilter")
	}
}
