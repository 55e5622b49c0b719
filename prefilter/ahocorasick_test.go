package prefilter

import "testing"

func TestAhoCorasickPrefilterFind(t *testing.T) {
	pf, err := NewAhoCorasickPrefilter([][]byte{[]byte("foo"), []byte("bar")}, true)
	if err != nil {
		t.Fatalf("NewAhoCorasickPrefilter() error = %v", err)
	}
	haystack := []byte("xxbarxxfooxx")
	if got := pf.Find(haystack, 0); got != 2 {
		t.Fatalf("Find() = %d, want 2", got)
	}
	if got := pf.Find(haystack, 3); got != 7 {
		t.Fatalf("Find() after first hit = %d, want 7", got)
	}
}

func TestAhoCorasickPrefilterFindMatch(t *testing.T) {
	pf, err := NewAhoCorasickPrefilter([][]byte{[]byte("foo"), []byte("barbaz")}, true)
	if err != nil {
		t.Fatalf("NewAhoCorasickPrefilter() error = %v", err)
	}
	s, e, ok := pf.FindMatch([]byte("xxbarbazxx"), 0)
	if !ok || s != 2 || e != 8 {
		t.Fatalf("FindMatch() = (%d, %d, %v), want (2, 8, true)", s, e, ok)
	}

	_, _, ok = pf.FindMatch([]byte("no hits here"), 0)
	if ok {
		t.Fatal("FindMatch() should report no match")
	}
}

func TestAhoCorasickPrefilterComplete(t *testing.T) {
	pf, err := NewAhoCorasickPrefilter([][]byte{[]byte("a"), []byte("b")}, true)
	if err != nil {
		t.Fatalf("NewAhoCorasickPrefilter() error = %v", err)
	}
	if !pf.IsComplete() {
		t.Fatal("expected IsComplete true")
	}
	if pf.LiteralLen() != 0 {
		t.Fatalf("LiteralLen() = %d, want 0", pf.LiteralLen())
	}
}
