package prefilter

import "github.com/coregx/ahocorasick"

// AhoCorasickPrefilter scans for any of several required literals at once,
// the multi-literal tier the teacher's Teddy/Fat-Teddy SIMD matchers cover
// with hand-written AVX2; this module has no such assembly, so the
// Aho-Corasick automaton (github.com/coregx/ahocorasick) fills that tier
// instead of leaving it unimplemented.
type AhoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
}

// NewAhoCorasickPrefilter builds the automaton over patterns. Returns nil
// and an error if the automaton fails to build (e.g. an empty pattern
// set); callers should fall back to running the matcher unfiltered.
func NewAhoCorasickPrefilter(patterns [][]byte, complete bool) (*AhoCorasickPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, p := range patterns {
		builder.AddPattern(p)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasickPrefilter{auto: auto, complete: complete}, nil
}

func (p *AhoCorasickPrefilter) Find(haystack []byte, start int) int {
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// FindMatch returns the full span of the literal found at or after start,
// used by callers that want to skip verification entirely when IsComplete
// is true.
func (p *AhoCorasickPrefilter) FindMatch(haystack []byte, start int) (matchStart, matchEnd int, ok bool) {
	m := p.auto.Find(haystack, start)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

func (p *AhoCorasickPrefilter) IsComplete() bool { return p.complete }

// LiteralLen returns 0: the patterns can have different lengths, so there
// is no single fixed length to report; callers needing the exact span
// should use FindMatch instead.
func (p *AhoCorasickPrefilter) LiteralLen() int { return 0 }

func (p *AhoCorasickPrefilter) HeapBytes() int { return 0 }
