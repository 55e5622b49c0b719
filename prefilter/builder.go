package prefilter

import "github.com/coregx/ecmaregex/literal"

// Build selects a Prefilter from an extracted literal sequence, following
// the teacher's tiering (prefilter/prefilter.go package doc): one single
// byte gets Memchr, one longer literal gets Memmem, several literals share
// an Aho-Corasick automaton. Returns nil when seq has nothing usable —
// callers should run the full matcher unfiltered in that case.
func Build(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}
	if seq.Len() == 1 {
		lit := seq.Get(0)
		if lit.Inexact || len(lit.Bytes) == 0 {
			return nil
		}
		complete := lit.Complete && !lit.Inexact
		if len(lit.Bytes) == 1 {
			return NewMemchrPrefilter(lit.Bytes[0], complete)
		}
		return NewMemmemPrefilter(lit.Bytes, complete)
	}

	patterns := make([][]byte, 0, seq.Len())
	allComplete := true
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if len(lit.Bytes) == 0 {
			return nil
		}
		if lit.Inexact || !lit.Complete {
			allComplete = false
		}
		patterns = append(patterns, lit.Bytes)
	}
	pf, err := NewAhoCorasickPrefilter(patterns, allComplete)
	if err != nil {
		return nil
	}
	return pf
}
