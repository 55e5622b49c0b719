package parser

import (
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/charclass"
)

func digitSet() *charclass.Set { return charclass.FromIntervals([2]rune{'0', '9' + 1}) }

func wordSet() *charclass.Set {
	s := charclass.FromIntervals([2]rune{'a', 'z' + 1}, [2]rune{'A', 'Z' + 1}, [2]rune{'0', '9' + 1})
	s.AddPoint('_')
	return s
}

func spaceSet() *charclass.Set {
	s := charclass.NewSet()
	// ECMAScript WhiteSpace and LineTerminator code points (spec §4.4).
	for _, r := range []rune{0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x20, 0xA0, 0x1680,
		0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF} {
		s.AddPoint(r)
	}
	s.AddInterval(0x2000, 0x200A+1)
	return s
}

// maxIn16 reports whether every interval in s fits a 16-bit bound, so the
// compiler can pick the cheaper OpRange encoding over OpRange32.
func maxIn16(s *charclass.Set) bool {
	for _, iv := range s.Intervals() {
		if iv[1]-1 > 0xFFFF {
			return false
		}
	}
	return true
}

// emitClassSet emits a character class from its already-finalized code
// point set (case folding and negation already applied by the caller,
// since both must happen before the interval list is committed to
// bytecode — see charclass.Set.CanonicalizeForIgnoreCase).
func (c *compiler) emitClassSet(s *charclass.Set) {
	ivs := s.Intervals()
	op := bytecode.OpRange
	width := 2
	if !maxIn16(s) {
		op = bytecode.OpRange32
		width = 4
	}
	c.buf.PutByte(byte(op))
	c.buf.PutU16(uint16(len(ivs)))
	for _, iv := range ivs {
		lo, hi := iv[0], iv[1]-1 // stored as inclusive (lo, hi)
		if width == 2 {
			c.buf.PutU16(uint16(lo))
			c.buf.PutU16(uint16(hi))
		} else {
			c.buf.PutU32(uint32(lo))
			c.buf.PutU32(uint32(hi))
		}
	}
}

// emitPredefinedClass compiles one of \d \D \s \S \w \W.
func (c *compiler) emitPredefinedClass(base *charclass.Set, negate bool) {
	s := base
	if c.flags.Has(bytecode.FlagIgnoreCase) {
		s = s.CanonicalizeForIgnoreCase(c.flags.Has(bytecode.FlagUnicode))
	}
	if negate {
		s = s.Invert()
	}
	c.emitClassSet(s)
}

// parseCharClass parses a bracket expression "[...]" (the leading '[' has
// already been consumed) and emits it directly. The same grammar is used
// with and without FlagUnicodeSets: nested classes and the set operators
// && and -- are not recognized inside brackets in either mode.
func (c *compiler) parseCharClass() error {
	negate := false
	if c.peek() == '^' {
		c.advance()
		negate = true
	}

	set := charclass.NewSet()
	first := true
	for {
		if c.eof() {
			return c.errorAt(c.pos, diagUnterminatedClass)
		}
		if c.peek() == ']' && !first {
			c.advance()
			break
		}
		first = false
		if c.peek() == ']' {
			// ECMAScript does not treat a leading ']' as a literal; this
			// path only triggers for an empty class "[]", which is valid
			// and matches nothing (handled by the negate/no-op below).
			c.advance()
			break
		}

		lo, loSet, err := c.parseClassAtom()
		if err != nil {
			return err
		}
		if loSet != nil {
			set = set.Union(loSet)
			continue
		}
		if c.peek() == '-' && c.peekAt(1) != ']' && c.peekAt(1) != -1 {
			save := c.pos
			c.advance()
			hi, hiSet, err := c.parseClassAtom()
			if err != nil {
				return err
			}
			if hiSet != nil {
				// "x-\d" etc: '-' is literal when the right side is a
				// predefined class, not a real range.
				c.pos = save
				set.AddPoint(lo)
				continue
			}
			if hi < lo {
				return c.errorAt(c.pos, diagInvalidClassSet)
			}
			set.AddInterval(lo, hi+1)
			continue
		}
		set.AddPoint(lo)
	}

	if c.flags.Has(bytecode.FlagIgnoreCase) {
		set = set.CanonicalizeForIgnoreCase(c.flags.Has(bytecode.FlagUnicode))
	}
	if negate {
		set = set.Invert()
	}
	c.emitClassSet(set)
	return nil
}

// parseClassAtom parses one member of a bracket expression: either a
// single code point (possibly escaped) or, for \d \D \s \S \w \W, a nested
// predefined set (returned via the second value, already fold-canonicalized
// by the caller along with the rest of the class).
func (c *compiler) parseClassAtom() (rune, *charclass.Set, error) {
	r := c.advance()
	if r != '\\' {
		return r, nil, nil
	}
	if c.eof() {
		return 0, nil, c.errorAt(c.pos, diagInvalidEscape)
	}
	e := c.advance()
	switch e {
	case 'd':
		return 0, digitSet(), nil
	case 'D':
		return 0, digitSet().Invert(), nil
	case 's':
		return 0, spaceSet(), nil
	case 'S':
		return 0, spaceSet().Invert(), nil
	case 'w':
		return 0, wordSet(), nil
	case 'W':
		return 0, wordSet().Invert(), nil
	default:
		r, err := c.decodeEscapedChar(e)
		return r, nil, err
	}
}
