package prefilter

import "testing"

func TestMemchrPrefilterFind(t *testing.T) {
	p := NewMemchrPrefilter('x', true)
	if got := p.Find([]byte("abcxdef"), 0); got != 3 {
		t.Fatalf("Find() = %d, want 3", got)
	}
	if got := p.Find([]byte("abcxdef"), 4); got != -1 {
		t.Fatalf("Find() past the hit = %d, want -1", got)
	}
	if got := p.Find([]byte("abc"), 0); got != -1 {
		t.Fatalf("Find() with no hit = %d, want -1", got)
	}
}

func TestMemchrPrefilterComplete(t *testing.T) {
	complete := NewMemchrPrefilter('x', true)
	if !complete.IsComplete() || complete.LiteralLen() != 1 {
		t.Fatalf("complete prefilter: IsComplete=%v LiteralLen=%d", complete.IsComplete(), complete.LiteralLen())
	}

	partial := NewMemchrPrefilter('x', false)
	if partial.IsComplete() || partial.LiteralLen() != 0 {
		t.Fatalf("partial prefilter: IsComplete=%v LiteralLen=%d", partial.IsComplete(), partial.LiteralLen())
	}
}

func TestMemchrPrefilterStartAtEnd(t *testing.T) {
	p := NewMemchrPrefilter('x', false)
	if got := p.Find([]byte("abc"), 3); got != -1 {
		t.Fatalf("Find() at end of haystack = %d, want -1", got)
	}
}
