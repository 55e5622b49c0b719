package prefilter

// DigitPrefilter scans for the next ASCII digit, used when every branch of
// a pattern's required leading text is a digit class rather than a literal
// (e.g. `\d{3}-\d{4}`), so literal.Extract has nothing to hand the other
// prefilters. Adapted from the teacher's DigitPrefilter
// (prefilter/digit.go), minus its SIMD backend: the scan here is a plain
// loop, a deliberate stdlib-only exception (see DESIGN.md) since a
// byte-range test has nothing for accel's byte-equality SWAR trick to
// accelerate.
type DigitPrefilter struct{}

// NewDigitPrefilter returns a prefilter for ASCII-digit-led patterns.
func NewDigitPrefilter() *DigitPrefilter { return &DigitPrefilter{} }

func (p *DigitPrefilter) Find(haystack []byte, start int) int {
	for i := start; i < len(haystack); i++ {
		if haystack[i] >= '0' && haystack[i] <= '9' {
			return i
		}
	}
	return -1
}

func (p *DigitPrefilter) IsComplete() bool { return false }
func (p *DigitPrefilter) LiteralLen() int  { return 0 }
func (p *DigitPrefilter) HeapBytes() int   { return 0 }
