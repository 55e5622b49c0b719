// Package literal represents literal byte sequences extracted from a
// compiled pattern, for use as a prefilter: a cheap substring search that
// rules out most of the input before the real matcher ever runs.
//
// Adapted from the teacher's literal package (literal/seq.go), generalized
// with an Inexact flag: a literal extracted from a char class or an
// alternation arm containing a class is a superset match (it may find
// candidate positions the real pattern rejects), so the prefilter caller
// must still run the full match — Complete literals from teacher programs
// never needed to distinguish this since the teacher's extractor only
// produced literals from actual string-equality bytecode.
package literal

import (
	"bytes"
	"sort"
)

// Literal is one concrete byte sequence that may appear in a match.
type Literal struct {
	Bytes []byte
	// Complete indicates this literal alone fully determines a match
	// (the pattern compiles to nothing but this literal).
	Complete bool
	// Inexact indicates the literal was derived from a character class or
	// other approximation rather than an exact string of codepoints —
	// a prefilter hit is necessary but not sufficient when set.
	Inexact bool
}

// NewLiteral builds a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

func (l Literal) String() string {
	tag := ""
	if l.Complete {
		tag += ",complete"
	}
	if l.Inexact {
		tag += ",inexact"
	}
	return "literal{" + string(l.Bytes) + tag + "}"
}

// Seq is a set of alternative literals, e.g. the two branches of /foo|bar/.
type Seq struct {
	literals []Literal
}

// NewSeq builds a Seq from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

func (s *Seq) Get(i int) Literal { return s.literals[i] }

func (s *Seq) IsEmpty() bool { return s == nil || len(s.literals) == 0 }

func (s *Seq) IsFinite() bool { return !s.IsEmpty() }

// AllComplete reports whether every literal in the sequence fully
// determines a match by itself — the case for a top-level disjunction of
// plain literals, where matching the literal text is matching the pattern.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete || lit.Inexact {
			return false
		}
	}
	return true
}

// Clone deep-copies the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		b := make([]byte, len(lit.Bytes))
		copy(b, lit.Bytes)
		cloned[i] = Literal{Bytes: b, Complete: lit.Complete, Inexact: lit.Inexact}
	}
	return &Seq{literals: cloned}
}

// Minimize drops any literal that is made redundant by a shorter literal
// that is one of its prefixes — any string containing "foobar" also
// contains "foo", so "foobar" adds nothing to the filter.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.Slice(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})
	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if isPrefix(k.Bytes, cur.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by every literal.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}
	out := make([]byte, len(prefix))
	copy(out, prefix)
	return out
}

// LongestCommonSuffix returns the longest suffix shared by every literal.
func (s *Seq) LongestCommonSuffix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	suffix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		suffix = commonSuffix(suffix, lit.Bytes)
		if len(suffix) == 0 {
			return []byte{}
		}
	}
	out := make([]byte, len(suffix))
	copy(out, suffix)
	return out
}

func isPrefix(prefix, s []byte) bool {
	return len(prefix) <= len(s) && bytes.Equal(prefix, s[:len(prefix)])
}

func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

func commonSuffix(a, b []byte) []byte {
	al, bl := len(a), len(b)
	n := min(al, bl)
	for i := 0; i < n; i++ {
		if a[al-1-i] != b[bl-1-i] {
			if i == 0 {
				return []byte{}
			}
			return a[al-i:]
		}
	}
	return a[al-n:]
}
