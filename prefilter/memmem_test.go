package prefilter

import "testing"

func TestMemmemPrefilterFind(t *testing.T) {
	p := NewMemmemPrefilter([]byte("needle"), true)
	haystack := []byte("hay hay needle stack")
	if got := p.Find(haystack, 0); got != 8 {
		t.Fatalf("Find() = %d, want 8", got)
	}
	if got := p.Find(haystack, 9); got != -1 {
		t.Fatalf("Find() past the hit = %d, want -1", got)
	}
}

func TestMemmemPrefilterComplete(t *testing.T) {
	complete := NewMemmemPrefilter([]byte("needle"), true)
	if !complete.IsComplete() || complete.LiteralLen() != 6 {
		t.Fatalf("IsComplete=%v LiteralLen=%d", complete.IsComplete(), complete.LiteralLen())
	}
	if complete.HeapBytes() != 6 {
		t.Fatalf("HeapBytes() = %d, want 6", complete.HeapBytes())
	}

	partial := NewMemmemPrefilter([]byte("needle"), false)
	if partial.IsComplete() || partial.LiteralLen() != 0 {
		t.Fatalf("partial: IsComplete=%v LiteralLen=%d", partial.IsComplete(), partial.LiteralLen())
	}
}

func TestMemmemPrefilterNoMatch(t *testing.T) {
	p := NewMemmemPrefilter([]byte("xyz"), false)
	if got := p.Find([]byte("abcdef"), 0); got != -1 {
		t.Fatalf("Find() = %d, want -1", got)
	}
}
