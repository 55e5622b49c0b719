package literal

import (
	"bytes"
	"testing"
)

func TestLiteralLen(t *testing.T) {
	l := NewLiteral([]byte("hello"), true)
	if l.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", l.Len())
	}
}

func TestSeqMinimizeDropsPrefixed(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("foobar"), false),
		NewLiteral([]byte("foo"), false),
		NewLiteral([]byte("baz"), false),
	)
	seq.Minimize()
	if seq.Len() != 2 {
		t.Fatalf("Len() after Minimize = %d, want 2", seq.Len())
	}
	seen := map[string]bool{}
	for i := 0; i < seq.Len(); i++ {
		seen[string(seq.Get(i).Bytes)] = true
	}
	if !seen["foo"] || !seen["baz"] || seen["foobar"] {
		t.Fatalf("unexpected surviving literals: %v", seen)
	}
}

func TestSeqLongestCommonPrefix(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("hello world"), false),
		NewLiteral([]byte("hello there"), false),
		NewLiteral([]byte("hello"), false),
	)
	lcp := seq.LongestCommonPrefix()
	if !bytes.Equal(lcp, []byte("hello")) {
		t.Fatalf("LongestCommonPrefix() = %q, want %q", lcp, "hello")
	}
}

func TestSeqLongestCommonPrefixDiverges(t *testing.T) {
	seq := NewSeq(NewLiteral([]byte("abc"), false), NewLiteral([]byte("xyz"), false))
	lcp := seq.LongestCommonPrefix()
	if len(lcp) != 0 {
		t.Fatalf("LongestCommonPrefix() = %q, want empty", lcp)
	}
}

func TestSeqLongestCommonSuffix(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("unit_test"), false),
		NewLiteral([]byte("smoke_test"), false),
	)
	lcs := seq.LongestCommonSuffix()
	if !bytes.Equal(lcs, []byte("_test")) {
		t.Fatalf("LongestCommonSuffix() = %q, want %q", lcs, "_test")
	}
}

func TestSeqEmpty(t *testing.T) {
	var seq *Seq
	if !seq.IsEmpty() {
		t.Fatal("nil Seq should be empty")
	}
	if seq.Len() != 0 {
		t.Fatalf("Len() on nil Seq = %d, want 0", seq.Len())
	}
	if len(seq.LongestCommonPrefix()) != 0 {
		t.Fatal("LongestCommonPrefix on nil Seq should be empty")
	}
}

func TestSeqAllComplete(t *testing.T) {
	complete := NewSeq(NewLiteral([]byte("foo"), true), NewLiteral([]byte("bar"), true))
	if !complete.AllComplete() {
		t.Fatal("expected AllComplete true")
	}

	partial := NewSeq(NewLiteral([]byte("foo"), true), NewLiteral([]byte("bar"), false))
	if partial.AllComplete() {
		t.Fatal("expected AllComplete false when one literal is incomplete")
	}

	inexact := NewSeq(Literal{Bytes: []byte("foo"), Complete: true, Inexact: true})
	if inexact.AllComplete() {
		t.Fatal("expected AllComplete false when a complete literal is inexact")
	}
}

func TestSeqClone(t *testing.T) {
	seq := NewSeq(NewLiteral([]byte("foo"), true))
	clone := seq.Clone()
	clone.Get(0).Bytes[0] = 'F'
	if seq.Get(0).Bytes[0] != 'f' {
		t.Fatal("Clone should deep-copy literal bytes")
	}
}
