// Package vm implements the backtracking interpreter: a single thread of
// execution walks a bytecode.Program against an input buffer, using an
// explicit, growable choice-point stack in place of native recursion. The
// dispatch-by-opcode shape follows the teacher's nfa.BoundedBacktracker
// (nfa/backtrack.go), generalized from recursive calls over NFA states to
// an explicit stack over linear bytecode, since the capture/backreference/
// counted-loop features this module supports cannot unwind via a simple
// boolean return the way the teacher's state-machine walk does.
package vm

// Kind tags the three input encodings a program can execute against. The
// bytecode itself is encoding-agnostic; Kind only changes how Cursor reads
// and steps codepoints.
type Kind int

const (
	UTF8 Kind = iota
	UTF16
	UCS2
)

// Cursor reads codepoints forward and backward from an input buffer without
// copying it, abstracting over the three input kinds the matcher contract
// (spec §4.4) requires. Position is always a code-unit index: a byte index
// for UTF8, a uint16 index for UTF16/UCS2.
type Cursor struct {
	kind    Kind
	bytes   []byte
	units   []uint16
	unicode bool // surrogate pairs join into one codepoint only under UTF16 + Unicode flag
}

// NewByteCursor wraps a UTF-8 (or raw ASCII/byte) input buffer.
func NewByteCursor(b []byte) Cursor {
	return Cursor{kind: UTF8, bytes: b}
}

// NewUTF16Cursor wraps a UTF-16 code-unit buffer. unicode selects whether
// surrogate pairs join into a single codepoint (Unicode flag) or are read
// as two independent code units (UCS-2-compatible legacy mode).
func NewUTF16Cursor(u []uint16, unicode bool) Cursor {
	return Cursor{kind: UTF16, units: u, unicode: unicode}
}

// NewUCS2Cursor wraps a fixed-width 16-bit code-unit buffer with no
// surrogate-pair joining at all.
func NewUCS2Cursor(u []uint16) Cursor {
	return Cursor{kind: UCS2, units: u}
}

// Len returns the input length in code units.
func (c Cursor) Len() int {
	if c.kind == UTF8 {
		return len(c.bytes)
	}
	return len(c.units)
}

const (
	surrHighLo = 0xD800
	surrHighHi = 0xDBFF
	surrLowLo  = 0xDC00
	surrLowHi  = 0xDFFF
)

// ReadForward returns the codepoint starting at pos and its width in code
// units. width is 0 at or past end of input.
func (c Cursor) ReadForward(pos int) (r rune, width int) {
	switch c.kind {
	case UTF8:
		if pos >= len(c.bytes) {
			return 0, 0
		}
		b0 := c.bytes[pos]
		switch {
		case b0 < 0x80:
			return rune(b0), 1
		case b0&0xE0 == 0xC0 && pos+1 < len(c.bytes):
			return rune(b0&0x1F)<<6 | rune(c.bytes[pos+1]&0x3F), 2
		case b0&0xF0 == 0xE0 && pos+2 < len(c.bytes):
			return rune(b0&0x0F)<<12 | rune(c.bytes[pos+1]&0x3F)<<6 | rune(c.bytes[pos+2]&0x3F), 3
		case b0&0xF8 == 0xF0 && pos+3 < len(c.bytes):
			return rune(b0&0x07)<<18 | rune(c.bytes[pos+1]&0x3F)<<12 | rune(c.bytes[pos+2]&0x3F)<<6 | rune(c.bytes[pos+3]&0x3F), 4
		default:
			return rune(b0), 1 // invalid UTF-8: treat as one opaque byte
		}
	default: // UTF16, UCS2
		if pos >= len(c.units) {
			return 0, 0
		}
		u := c.units[pos]
		if c.kind == UTF16 && c.unicode && u >= surrHighLo && u <= surrHighHi && pos+1 < len(c.units) {
			lo := c.units[pos+1]
			if lo >= surrLowLo && lo <= surrLowHi {
				return 0x10000 + (rune(u)-surrHighLo)<<10 + (rune(lo) - surrLowLo), 2
			}
		}
		return rune(u), 1
	}
}

// ReadBackward returns the codepoint ending at pos (i.e. the one a forward
// read at the returned position would produce) and its width in code
// units. width is 0 at the start of input.
func (c Cursor) ReadBackward(pos int) (r rune, width int) {
	if pos <= 0 {
		return 0, 0
	}
	switch c.kind {
	case UTF8:
		i := pos - 1
		for i > 0 && c.bytes[i]&0xC0 == 0x80 && pos-i < 4 {
			i--
		}
		r, w := c.ReadForward(i)
		if i+w != pos {
			// desynced continuation bytes; fall back to one raw byte
			return rune(c.bytes[pos-1]), 1
		}
		return r, pos - i
	default:
		i := pos - 1
		if c.kind == UTF16 && c.unicode && i > 0 {
			u := c.units[i]
			if u >= surrLowLo && u <= surrLowHi {
				hi := c.units[i-1]
				if hi >= surrHighLo && hi <= surrHighHi {
					return 0x10000 + (rune(hi)-surrHighLo)<<10 + (rune(u) - surrLowLo), 2
				}
			}
		}
		return rune(c.units[i]), 1
	}
}

// AtStart reports whether pos is the beginning of input.
func (c Cursor) AtStart(pos int) bool { return pos <= 0 }

// AtEnd reports whether pos is the end of input.
func (c Cursor) AtEnd(pos int) bool { return pos >= c.Len() }

// Slice returns the input between [start, end) as a byte slice sharing the
// cursor's backing array. Only valid for UTF8 cursors; it returns nil for
// UTF16/UCS2 cursors.
func (c Cursor) Slice(start, end int) []byte {
	if c.kind != UTF8 {
		return nil
	}
	return c.bytes[start:end]
}

// Unit16 returns the raw code unit at i for UTF16/UCS2 cursors.
func (c Cursor) Unit16(i int) uint16 { return c.units[i] }
