// Package prefilter provides cheap candidate-position scanning ahead of the
// full matcher, built from the literal sequences literal.Extract derives
// from a compiled program. Adapted from the teacher's prefilter package
// (prefilter/prefilter.go): the Prefilter interface and its selection
// policy (one byte -> memchr, one short string -> memmem, several strings
// -> a shared multi-pattern scanner) are kept; the teacher's hand-tuned
// Teddy/Fat-Teddy AVX2 paths are not ported; Aho-Corasick
// (github.com/coregx/ahocorasick) stands in for that tier here instead,
// since this module has no assembly of its own to justify a bespoke SIMD
// multi-literal matcher.
package prefilter

// Prefilter narrows down candidate match start positions before the real
// matcher runs. A prefilter hit is necessary but, unless IsComplete is
// true, not sufficient — strategy must still verify with the compiled
// program.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or
	// -1 if the remaining haystack has none.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a Find hit alone determines a match
	// (the whole pattern compiles to exactly this literal set).
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true, 0
	// otherwise.
	LiteralLen() int

	// HeapBytes estimates the prefilter's own heap footprint, for callers
	// that track engine memory budgets.
	HeapBytes() int
}
