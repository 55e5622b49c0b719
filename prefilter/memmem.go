package prefilter

import "github.com/coregx/ecmaregex/prefilter/internal/accel"

// MemmemPrefilter scans for a single required multi-byte literal.
type MemmemPrefilter struct {
	needle   []byte
	complete bool
}

// NewMemmemPrefilter builds a prefilter for a single literal of length >= 2.
func NewMemmemPrefilter(needle []byte, complete bool) *MemmemPrefilter {
	return &MemmemPrefilter{needle: needle, complete: complete}
}

func (p *MemmemPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		if len(p.needle) == 0 && start == len(haystack) {
			return start
		}
		return -1
	}
	rel := accel.Index(haystack[start:], p.needle)
	if rel < 0 {
		return -1
	}
	return start + rel
}

func (p *MemmemPrefilter) IsComplete() bool { return p.complete }
func (p *MemmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}
func (p *MemmemPrefilter) HeapBytes() int { return len(p.needle) }
