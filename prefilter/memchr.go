package prefilter

import "github.com/coregx/ecmaregex/prefilter/internal/accel"

// MemchrPrefilter scans for a single required byte.
type MemchrPrefilter struct {
	b        byte
	complete bool
}

// NewMemchrPrefilter builds a prefilter for a one-byte literal. complete
// should be true only when the byte is also the entire match (the pattern
// is exactly that one literal byte, non-inexact).
func NewMemchrPrefilter(b byte, complete bool) *MemchrPrefilter {
	return &MemchrPrefilter{b: b, complete: complete}
}

func (p *MemchrPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	rel := accel.IndexByte(haystack[start:], p.b)
	if rel < 0 {
		return -1
	}
	return start + rel
}

func (p *MemchrPrefilter) IsComplete() bool { return p.complete }
func (p *MemchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}
func (p *MemchrPrefilter) HeapBytes() int { return 0 }
