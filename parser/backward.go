package parser

import "github.com/coregx/ecmaregex/bytecode"

// compileLookbehindBody compiles the contents of (?<=...) / (?<!...). A
// lookbehind matches against text ending at the current position, read
// right to left, so each alternative's terms are compiled in their normal
// left-to-right order first (so captures and nested quantifiers still see
// ordinary forward-parsing rules) and then spliced back into the program in
// reverse order, each one wrapped in a pair of OpPrev: the first steps the
// input position back one code point so the term reads the code point
// ending there, the second steps back over what the term's forward read
// consumed.
//
// This reproduces exact backward matching when every term consumes exactly
// one code point — literals, character classes, and single-character
// escapes. A term that consumes several code points in forward order (a
// group holding a sequence, a quantified term) or none (an anchor) is still
// wrapped as if it were one code point, so lookbehinds built from such
// terms are not matched exactly.
func (c *compiler) compileLookbehindBody() error {
	branchStart := c.buf.Len()
	if err := c.compileLookbehindAlternative(); err != nil {
		return err
	}
	if c.peek() != '|' {
		return nil
	}

	var exitPatches []int
	for c.peek() == '|' {
		c.advance()
		c.scope.alternate()

		splitOperand := c.insertSplitBefore(branchStart, bytecode.OpSplitGoto)
		gotoOperand := c.emitJump(bytecode.OpGoto)
		exitPatches = append(exitPatches, gotoOperand)
		c.patchJumpHere(splitOperand)

		branchStart = c.buf.Len()
		if err := c.compileLookbehindAlternative(); err != nil {
			return err
		}
	}
	for _, p := range exitPatches {
		c.patchJumpHere(p)
	}
	return nil
}

type lookbehindSpan struct{ start, end int }

// compileLookbehindAlternative compiles one alternative's terms forward,
// then reverses their physical order, wrapping each in a pair of OpPrev.
func (c *compiler) compileLookbehindAlternative() error {
	var spans []lookbehindSpan
	for {
		switch c.peek() {
		case -1, '|', ')':
			return c.reverseLookbehindSpans(spans)
		}
		start := c.buf.Len()
		if err := c.parseTerm(); err != nil {
			return err
		}
		spans = append(spans, lookbehindSpan{start, c.buf.Len()})
	}
}

// reverseLookbehindSpans rewrites [spans[0].start, buf.Len()) so the spans
// appear in reverse order, each preceded and followed by an OpPrev. Every span's
// internal relative jump offsets are shift-invariant (a span only ever
// jumps within itself), so moving whole spans to new absolute positions
// needs no further fix-up.
func (c *compiler) reverseLookbehindSpans(spans []lookbehindSpan) error {
	if len(spans) == 0 {
		return nil
	}
	base := spans[0].start
	orig := append([]byte(nil), c.buf.Bytes()[base:]...)
	c.buf.Truncate(base)
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		c.buf.PutByte(byte(bytecode.OpPrev))
		c.buf.PutBytes(orig[s.start-base : s.end-base])
		c.buf.PutByte(byte(bytecode.OpPrev))
	}
	return nil
}
