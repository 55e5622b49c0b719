package parser

import (
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/charclass"
)

// parseAtom compiles one atom and reports whether it is a valid target for
// a trailing quantifier (anchors and lookaround assertions are zero-width
// and, per spec, quantifying them is pointless but not a syntax error —
// only a bare quantifier with nothing at all before it is).
func (c *compiler) parseAtom() (bool, error) {
	switch c.peek() {
	case '^':
		c.advance()
		op := bytecode.OpLineStart
		if c.flags.Has(bytecode.FlagMultiline) {
			op = bytecode.OpLineStartM
		}
		c.emitOp(op)
		return true, nil
	case '$':
		c.advance()
		op := bytecode.OpLineEnd
		if c.flags.Has(bytecode.FlagMultiline) {
			op = bytecode.OpLineEndM
		}
		c.emitOp(op)
		return true, nil
	case '.':
		c.advance()
		c.emitOp(bytecode.OpDot)
		return true, nil
	case '(':
		return c.parseGroup()
	case '[':
		c.advance()
		if err := c.parseCharClass(); err != nil {
			return false, err
		}
		return true, nil
	case '\\':
		return c.parseEscapeAtom()
	case '*', '+', '?':
		return false, c.errorAt(c.pos, diagNothingToRepeat)
	default:
		r := c.advance()
		c.emitLiteral(r)
		return true, nil
	}
}

// emitLiteral compiles a single literal code point, folding it to its
// case-insensitive representative at compile time when IgnoreCase is set
// so the VM only ever needs an equality test.
func (c *compiler) emitLiteral(r rune) {
	v := r
	op := bytecode.OpChar
	if c.flags.Has(bytecode.FlagIgnoreCase) {
		v = charclass.Canonicalize(r, c.flags.Has(bytecode.FlagUnicode))
		op = bytecode.OpCharI
	}
	if v <= 0xFFFF {
		c.emitOpU16(op, uint16(v))
		return
	}
	if op == bytecode.OpChar {
		op = bytecode.OpChar32
	} else {
		op = bytecode.OpChar32I
	}
	c.emitOpU32(op, uint32(v))
}

// parseGroup compiles "(...)" in all its forms: capturing, non-capturing,
// named, and lookaround.
func (c *compiler) parseGroup() (bool, error) {
	c.advance() // '('
	if c.peek() != '?' {
		idx, err := c.allocateCapture("")
		if err != nil {
			return false, err
		}
		c.scope.enterGroup()
		c.emitOpU8(bytecode.OpSaveStart, byte(idx))
		if err := c.parseDisjunctionGroup(); err != nil {
			return false, err
		}
		c.emitOpU8(bytecode.OpSaveEnd, byte(idx))
		c.scope.leaveGroup()
		return true, nil
	}
	c.advance() // '?'
	switch c.peek() {
	case ':':
		c.advance()
		c.scope.enterGroup()
		if err := c.parseDisjunctionGroup(); err != nil {
			return false, err
		}
		c.scope.leaveGroup()
		return true, nil
	case '=':
		c.advance()
		return c.parseLookaround(false, false)
	case '!':
		c.advance()
		return c.parseLookaround(true, false)
	case '<':
		save := c.pos
		c.advance() // '<'
		switch c.peek() {
		case '=':
			c.advance()
			return c.parseLookaround(false, true)
		case '!':
			c.advance()
			return c.parseLookaround(true, true)
		default:
			c.pos = save
			return c.parseNamedGroup()
		}
	case 'P':
		return c.parseNamedGroupLegacy()
	default:
		return false, c.errorAt(c.pos, diagInvalidGroup)
	}
}

func (c *compiler) parseDisjunctionGroup() error {
	if err := c.parseDisjunction(); err != nil {
		return err
	}
	if !c.eat(')') {
		return c.errorAt(c.pos, diagUnterminatedGroup)
	}
	return nil
}

func (c *compiler) parseNamedGroup() (bool, error) {
	name, end, err := scanGroupName(c.src, c.pos)
	if err != nil {
		return false, err
	}
	c.pos = end + 1
	idx, err := c.allocateCapture(name)
	if err != nil {
		return false, err
	}
	c.scope.enterGroup()
	c.emitOpU8(bytecode.OpSaveStart, byte(idx))
	if err := c.parseDisjunctionGroup(); err != nil {
		return false, err
	}
	c.emitOpU8(bytecode.OpSaveEnd, byte(idx))
	c.scope.leaveGroup()
	return true, nil
}

func (c *compiler) parseNamedGroupLegacy() (bool, error) {
	c.advance() // 'P'
	if c.peek() != '<' {
		return false, c.errorAt(c.pos, diagInvalidGroup)
	}
	return c.parseNamedGroup()
}

// parseLookaround compiles (?=...), (?!...), (?<=...), (?<!...). Lookahead
// and lookbehind share the same two pairs of opcodes; lookbehind differs
// only in how its body is compiled (backward.go reverses term order and
// steps the input position back around each one).
func (c *compiler) parseLookaround(negative, behind bool) (bool, error) {
	c.scope.enterGroup()
	op, matchOp := bytecode.OpLookahead, bytecode.OpLookaheadMatch
	if negative {
		op, matchOp = bytecode.OpNegativeLookahead, bytecode.OpNegativeLookaheadMatch
	}
	operand := c.emitJump(op)
	var err error
	if behind {
		err = c.compileLookbehindBody()
		if err == nil && !c.eat(')') {
			err = c.errorAt(c.pos, diagUnterminatedGroup)
		}
	} else {
		err = c.parseDisjunctionGroup()
	}
	if err != nil {
		return false, err
	}
	c.emitOp(matchOp)
	c.patchJumpHere(operand)
	c.scope.leaveGroup()
	return true, nil
}

// parseEscapeAtom compiles a backslash escape that stands on its own as an
// atom (as opposed to one nested inside a bracket expression, handled by
// parseClassAtom).
func (c *compiler) parseEscapeAtom() (bool, error) {
	c.advance() // '\\'
	if c.eof() {
		return false, c.errorAt(c.pos, diagInvalidEscape)
	}
	e := c.peek()
	switch e {
	case 'd', 'D', 's', 'S', 'w', 'W':
		c.advance()
		c.emitPredefinedClassAtom(e)
		return true, nil
	case 'b':
		c.advance()
		if c.flags.Has(bytecode.FlagIgnoreCase) {
			c.emitOp(bytecode.OpWordBoundaryI)
		} else {
			c.emitOp(bytecode.OpWordBoundary)
		}
		return true, nil
	case 'B':
		c.advance()
		if c.flags.Has(bytecode.FlagIgnoreCase) {
			c.emitOp(bytecode.OpNotWordBoundaryI)
		} else {
			c.emitOp(bytecode.OpNotWordBoundary)
		}
		return true, nil
	case 'k':
		return c.parseNamedBackref()
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return c.parseNumericBackref()
	default:
		c.advance()
		r, err := c.decodeEscapedChar(e)
		if err != nil {
			return false, err
		}
		c.emitLiteral(r)
		return true, nil
	}
}

func (c *compiler) emitPredefinedClassAtom(e rune) {
	switch e {
	case 'd':
		c.emitPredefinedClass(digitSet(), false)
	case 'D':
		c.emitPredefinedClass(digitSet(), true)
	case 's':
		c.emitPredefinedClass(spaceSet(), false)
	case 'S':
		c.emitPredefinedClass(spaceSet(), true)
	case 'w':
		c.emitPredefinedClass(wordSet(), false)
	case 'W':
		c.emitPredefinedClass(wordSet(), true)
	}
}

func (c *compiler) parseNamedBackref() (bool, error) {
	c.advance() // 'k'
	if c.peek() != '<' {
		return false, c.errorAt(c.pos, diagInvalidEscape)
	}
	name, end, err := scanGroupName(c.src, c.pos)
	if err != nil {
		return false, err
	}
	c.pos = end + 1
	idx, ok := c.forwardNames[name]
	if !ok {
		return false, c.errorAt(c.pos, diagUnknownBackref)
	}
	op := bytecode.OpBackref
	if c.flags.Has(bytecode.FlagIgnoreCase) {
		op = bytecode.OpBackrefI
	}
	c.emitOpU8(op, byte(idx))
	return true, nil
}

func (c *compiler) parseNumericBackref() (bool, error) {
	n, _ := c.parseDigits()
	if n == 0 || n >= maxCaptures {
		return false, c.errorAt(c.pos, diagUnknownBackref)
	}
	// A forward reference to a capture group that textually appears later
	// (or never) resolves at match time: ECMAScript treats an unentered
	// capture's backreference as matching the empty string, so no static
	// upper-bound check against the current capture count is needed here.
	op := bytecode.OpBackref
	if c.flags.Has(bytecode.FlagIgnoreCase) {
		op = bytecode.OpBackrefI
	}
	c.emitOpU8(op, byte(n))
	return true, nil
}

// decodeEscapedChar resolves a single-character escape that was not one of
// the class shorthands, \b, \k, or a digit. e is the character immediately
// following the backslash, already consumed.
func (c *compiler) decodeEscapedChar(e rune) (rune, error) {
	switch e {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case '0':
		return 0, nil
	case 'x':
		return c.parseHexDigits(2)
	case 'u':
		return c.parseUnicodeEscape()
	case 'c':
		if c.eof() {
			return 0, c.errorAt(c.pos, diagInvalidEscape)
		}
		ctrl := c.advance()
		return ctrl % 32, nil
	default:
		// IdentityEscape: any other punctuation stands for itself (Annex
		// B is permissive here even for Unicode mode's SyntaxCharacter
		// set, which is exactly the characters callers actually escape).
		return e, nil
	}
}

func (c *compiler) parseHexDigits(n int) (rune, error) {
	v := rune(0)
	for i := 0; i < n; i++ {
		d, ok := hexDigit(c.peek())
		if !ok {
			return 0, c.errorAt(c.pos, diagInvalidEscape)
		}
		c.advance()
		v = v*16 + d
	}
	return v, nil
}

func (c *compiler) parseUnicodeEscape() (rune, error) {
	if c.peek() == '{' {
		c.advance()
		v := rune(0)
		gotDigit := false
		for c.peek() != '}' {
			d, ok := hexDigit(c.peek())
			if !ok {
				return 0, c.errorAt(c.pos, diagInvalidEscape)
			}
			c.advance()
			v = v*16 + d
			gotDigit = true
		}
		if !gotDigit || !c.eat('}') {
			return 0, c.errorAt(c.pos, diagInvalidEscape)
		}
		return v, nil
	}
	return c.parseHexDigits(4)
}

func hexDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	default:
		return 0, false
	}
}
