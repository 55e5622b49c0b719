package ecmaregex

import (
	"github.com/coregx/ecmaregex/strategy"
	"github.com/coregx/ecmaregex/vm"
)

// MatchIterator walks successive non-overlapping matches over one input,
// the wrapper around spec §6's find_iter: find wraps find_at(0), find_iter
// repeats find_at from just past the previous match (or one codepoint
// further, for a zero-width match) until the input is exhausted.
type MatchIterator struct {
	it    *strategy.Iterator
	input string
}

func (r *Regex) newIterator(cur vm.Cursor, s string) *MatchIterator {
	return &MatchIterator{it: r.engine.FindIter(cur, nil), input: s}
}

// FindIter returns an iterator over every non-overlapping match in s.
func (r *Regex) FindIter(s string) *MatchIterator {
	return r.newIterator(vm.NewByteCursor([]byte(s)), s)
}

// Next advances to the next match, returning its text and the text of its
// capture groups: groups[0] is group 1, and the whole match is not
// repeated there. ok is false once the input is exhausted.
func (m *MatchIterator) Next() (match string, groups []string, ok bool) {
	start, end, caps, matched := m.it.Next()
	if !matched {
		return "", nil, false
	}
	groups = make([]string, len(caps)/2-1)
	for i := range groups {
		s, e := caps[2*i+2], caps[2*i+3]
		if s < 0 || e < 0 {
			continue
		}
		groups[i] = m.input[s:e]
	}
	return m.input[start:end], groups, true
}

// NextIndex advances to the next match, returning only its [start, end)
// byte offsets. ok is false once the input is exhausted.
func (m *MatchIterator) NextIndex() (start, end int, ok bool) {
	s, e, _, matched := m.it.Next()
	return s, e, matched
}

// UTF16MatchIterator walks successive non-overlapping matches over a
// UTF-16 code-unit buffer, mirroring MatchIterator for input that isn't
// UTF-8 text (spec §4.4's UTF16/UCS2 input kinds).
type UTF16MatchIterator struct {
	it *strategy.Iterator
}

// FindUTF16Iter returns an iterator over every non-overlapping match in u.
func (r *Regex) FindUTF16Iter(u []uint16, unicode bool) *UTF16MatchIterator {
	return &UTF16MatchIterator{it: r.engine.FindIter(vm.NewUTF16Cursor(u, unicode), nil)}
}

// NextIndex advances to the next match, returning its [start, end)
// code-unit offsets and capture-index array. ok is false once the input
// is exhausted.
func (m *UTF16MatchIterator) NextIndex() (start, end int, caps []int, ok bool) {
	return m.it.Next()
}
