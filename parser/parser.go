// Package parser compiles an ECMAScript regular expression pattern
// directly into a bytecode.Program: a recursive-descent reader over four
// grammar layers (disjunction, alternative, term, atom) that emits
// instructions as it goes, with no intermediate syntax tree. Forward
// named back-references are resolved against a one-pass prescan
// (captures.go) that runs before the main pass.
package parser

import "github.com/coregx/ecmaregex/bytecode"

const (
	maxCaptures  = 255 // capture slot is a single byte in the wire format
	maxRegisters = 255 // register index is a single byte in set-i32/loop*
	unbounded    = -1  // sentinel for a quantifier's open-ended max
)

// compiler holds all mutable state threaded through one compile pass.
type compiler struct {
	src   []rune
	pos   int // rune index into src
	flags bytecode.Flags

	buf *bytecode.Buffer

	captureCount int // next capture index to hand out; starts at 1 (0 is the whole match)
	names        []bytecode.GroupName
	scope        *captureScope
	forwardNames map[string]int // name -> first-declared capture index, from prescanNames

	freeRegisters []int
	registerHigh  int // one past the highest register index ever allocated
}

// Compile parses pattern under the given flags and returns its compiled
// bytecode program, or a *SyntaxError.
func Compile(pattern string, flags bytecode.Flags) (*bytecode.Program, error) {
	forward, err := prescanNames(pattern)
	if err != nil {
		return nil, err
	}

	c := &compiler{
		src:          []rune(pattern),
		flags:        flags,
		buf:          bytecode.NewBuffer(len(pattern)*4 + 16),
		captureCount: 1,
		names:        []bytecode.GroupName{{}}, // slot 0: the whole match, unnamed
		scope:        newCaptureScope(),
		forwardNames: forward,
	}

	c.emitOpU8(bytecode.OpSaveStart, 0)
	if err := c.parseDisjunction(); err != nil {
		return nil, err
	}
	if c.pos != len(c.src) {
		return nil, c.errorAt(c.pos, diagSyntaxError)
	}
	c.emitOpU8(bytecode.OpSaveEnd, 0)
	c.emitOp(bytecode.OpMatch)

	if c.buf.HasError() {
		return nil, c.errorAt(c.pos, diagSyntaxError)
	}

	namedGroups := false
	for _, gn := range c.names {
		if gn.Name != "" {
			namedGroups = true
			break
		}
	}
	outFlags := flags
	if namedGroups {
		outFlags |= bytecode.FlagNamedGroups
	}

	return bytecode.New(outFlags, c.captureCount, c.registerHigh, c.buf.Bytes(), c.names), nil
}

func (c *compiler) errorAt(pos int, msg string) *SyntaxError {
	return &SyntaxError{Message: msg, Pos: pos}
}

func (c *compiler) eof() bool { return c.pos >= len(c.src) }

func (c *compiler) peek() rune {
	if c.eof() {
		return -1
	}
	return c.src[c.pos]
}

func (c *compiler) peekAt(offset int) rune {
	if c.pos+offset >= len(c.src) {
		return -1
	}
	return c.src[c.pos+offset]
}

func (c *compiler) advance() rune {
	r := c.src[c.pos]
	c.pos++
	return r
}

func (c *compiler) eat(r rune) bool {
	if c.peek() == r {
		c.pos++
		return true
	}
	return false
}

// --- emission helpers -------------------------------------------------

func (c *compiler) emitOp(op bytecode.Op) { c.buf.PutByte(byte(op)) }

func (c *compiler) emitOpU8(op bytecode.Op, v byte) {
	c.buf.PutByte(byte(op))
	c.buf.PutByte(v)
}

func (c *compiler) emitOpU16(op bytecode.Op, v uint16) {
	c.buf.PutByte(byte(op))
	c.buf.PutU16(v)
}

func (c *compiler) emitOpU32(op bytecode.Op, v uint32) {
	c.buf.PutByte(byte(op))
	c.buf.PutU32(v)
}

// emitJump appends a one-operand relative-jump instruction (goto, split,
// loop, lookahead) with a placeholder offset and returns the byte position
// of that 4-byte operand, for later patchJump.
func (c *compiler) emitJump(op bytecode.Op) int {
	c.buf.PutByte(byte(op))
	pos := c.buf.Len()
	c.buf.PutU32(0)
	return pos
}

// emitRegJump appends a register-gated relative-jump instruction
// (loop-split-goto/next) with a placeholder offset and returns the operand
// position.
func (c *compiler) emitRegJump(op bytecode.Op, reg byte) int {
	c.buf.PutByte(byte(op))
	c.buf.PutByte(reg)
	pos := c.buf.Len()
	c.buf.PutU32(0)
	return pos
}

// patchJump resolves a previously emitted relative-jump operand to target.
// Every jump/split/loop instruction encodes its offset relative to the PC
// of the instruction following it, which is always operandPos+4 regardless
// of how many fixed bytes preceded the operand — so one formula covers all
// of goto, split, loop, and the register-gated loop-split family.
func (c *compiler) patchJump(operandPos, target int) {
	rel := int32(target - (operandPos + 4))
	c.buf.SetU32At(operandPos, uint32(rel))
}

func (c *compiler) patchJumpHere(operandPos int) { c.patchJump(operandPos, c.buf.Len()) }

// insertSplitBefore makes room for a 5-byte split/goto instruction
// immediately before bodyStart and writes its opcode, shifting the body
// (and everything emitted for it) forward by 5 bytes. Internal relative
// offsets inside the body are shift-invariant — both the jump source and
// its target move together — so nothing inside an already-compiled body
// needs to be touched. Returns the new operand position to patch.
func (c *compiler) insertSplitBefore(bodyStart int, op bytecode.Op) int {
	c.buf.InsertZeros(bodyStart, 5)
	c.buf.SetByteAt(bodyStart, byte(op))
	return bodyStart + 1
}

// insertRegJumpBefore is insertSplitBefore's register-gated counterpart
// (6 bytes: opcode, register, i32 offset).
func (c *compiler) insertRegJumpBefore(bodyStart int, op bytecode.Op, reg byte) int {
	c.buf.InsertZeros(bodyStart, 6)
	c.buf.SetByteAt(bodyStart, byte(op))
	c.buf.SetByteAt(bodyStart+1, reg)
	return bodyStart + 2
}

// --- register allocation ----------------------------------------------

// allocateRegister hands out a register index for a counted quantifier's
// down-counter, LIFO so that sibling (non-nested) counted quantifiers reuse
// the same slot instead of growing the register file unboundedly.
func (c *compiler) allocateRegister() (byte, error) {
	if n := len(c.freeRegisters); n > 0 {
		r := c.freeRegisters[n-1]
		c.freeRegisters = c.freeRegisters[:n-1]
		return byte(r), nil
	}
	if c.registerHigh >= maxRegisters {
		c.buf.Fail()
		return 0, c.errorAt(c.pos, diagTooManyRegisters)
	}
	r := c.registerHigh
	c.registerHigh++
	return byte(r), nil
}

func (c *compiler) releaseRegister(r byte) {
	c.freeRegisters = append(c.freeRegisters, int(r))
}

// --- capture allocation -------------------------------------------------

// allocateCapture reserves the next capture slot. name is empty for an
// unnamed group.
func (c *compiler) allocateCapture(name string) (int, error) {
	if c.captureCount >= maxCaptures {
		c.buf.Fail()
		return 0, c.errorAt(c.pos, diagTooManyCaptures)
	}
	idx := c.captureCount
	c.captureCount++
	for len(c.names) <= idx {
		c.names = append(c.names, bytecode.GroupName{})
	}
	c.names[idx] = bytecode.GroupName{Name: name, Scope: c.scope.scopeByte()}
	return idx, nil
}

// --- grammar: disjunction / alternative --------------------------------

// parseDisjunction parses "alternative ('|' alternative)*", compiling each
// branch so the first one is always preferred on backtrack (spec's
// leftmost-alternative priority).
func (c *compiler) parseDisjunction() error {
	branchStart := c.buf.Len()
	if err := c.parseAlternative(); err != nil {
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
		if err := c.parseAlternative(); err != nil {
			return err
		}
	}
	for _, p := range exitPatches {
		c.patchJumpHere(p)
	}
	return nil
}

// parseAlternative parses a (possibly empty) sequence of terms.
func (c *compiler) parseAlternative() error {
	for {
		switch c.peek() {
		case -1, '|', ')':
			return nil
		}
		if err := c.parseTerm(); err != nil {
			return err
		}
	}
}

// parseTerm parses one atom, then an optional quantifier suffix.
func (c *compiler) parseTerm() error {
	bodyStart := c.buf.Len()
	quantifiable, err := c.parseAtom()
	if err != nil {
		return err
	}

	min, max, lazy, hasQuant, err := c.tryParseQuantifier()
	if err != nil {
		return err
	}
	if !hasQuant {
		return nil
	}
	if !quantifiable {
		return c.errorAt(c.pos, diagNothingToRepeat)
	}
	return c.applyQuantifier(bodyStart, min, max, lazy)
}

// tryParseQuantifier consumes a trailing *, +, ?, or {n,m} (with an
// optional lazy '?'), reporting hasQuant=false if none is present.
func (c *compiler) tryParseQuantifier() (min, max int, lazy bool, hasQuant bool, err error) {
	switch c.peek() {
	case '*':
		c.advance()
		min, max, hasQuant = 0, unbounded, true
	case '+':
		c.advance()
		min, max, hasQuant = 1, unbounded, true
	case '?':
		c.advance()
		min, max, hasQuant = 0, 1, true
	case '{':
		save := c.pos
		n, m, ok := c.tryParseBracedCount()
		if !ok {
			c.pos = save
			return 0, 0, false, false, nil
		}
		min, max, hasQuant = n, m, true
	default:
		return 0, 0, false, false, nil
	}
	if hasQuant && c.peek() == '?' {
		c.advance()
		lazy = true
	}
	if hasQuant && max != unbounded && min > max {
		return 0, 0, false, false, c.errorAt(c.pos, diagInvalidRepeat)
	}
	return min, max, lazy, hasQuant, nil
}

// tryParseBracedCount parses "{n}", "{n,}", or "{n,m}". A '{' that doesn't
// form a valid braced count is, per ECMAScript Annex B, a literal brace
// rather than a syntax error; the caller restores c.pos in that case.
func (c *compiler) tryParseBracedCount() (min, max int, ok bool) {
	c.advance() // '{'
	n, gotN := c.parseDigits()
	if !gotN {
		return 0, 0, false
	}
	if c.peek() == '}' {
		c.advance()
		return n, n, true
	}
	if c.peek() != ',' {
		return 0, 0, false
	}
	c.advance()
	if c.peek() == '}' {
		c.advance()
		return n, unbounded, true
	}
	m, gotM := c.parseDigits()
	if !gotM || c.peek() != '}' {
		return 0, 0, false
	}
	c.advance()
	return n, m, true
}

func (c *compiler) parseDigits() (int, bool) {
	start := c.pos
	v := 0
	for !c.eof() && c.peek() >= '0' && c.peek() <= '9' {
		v = v*10 + int(c.advance()-'0')
		if v > 1<<20 {
			v = 1 << 20 // clamp: spec-unbounded pathological counts collapse to "effectively unbounded"
		}
	}
	return v, c.pos > start
}

// applyQuantifier wraps the already-emitted atom at [bodyStart, buf.Len())
// with the repeat construct for (min, max, lazy). Only the bounded n>0,
// finite-m>n case emits a second physical copy of the body; every other
// case reuses the single copy.
func (c *compiler) applyQuantifier(bodyStart, min, max int, lazy bool) error {
	switch {
	case min == 0 && max == 0:
		c.buf.Truncate(bodyStart)
		return nil
	case min == 1 && max == 1:
		return nil // transparent wrapper
	case min == 0 && max == 1:
		c.wrapOptional(bodyStart, lazy)
		return nil
	case min == 0 && max == unbounded:
		c.wrapStar(bodyStart, lazy)
		return nil
	case min == 1 && max == unbounded:
		c.wrapPlus(bodyStart, lazy)
		return nil
	case max == unbounded: // min >= 2
		return c.wrapAtLeast(bodyStart, min, lazy)
	case min == max: // exact count, >= 2
		return c.wrapExact(bodyStart, min)
	case min == 0: // {0,m}, m finite >= 2
		return c.wrapBoundedFromZero(bodyStart, max, lazy)
	default: // {n,m}, 0 < n < m < unbounded
		return c.wrapBoundedRange(bodyStart, min, max, lazy)
	}
}

func (c *compiler) splitOp(lazy bool) bytecode.Op {
	if lazy {
		return bytecode.OpSplitNext
	}
	return bytecode.OpSplitGoto
}

func (c *compiler) loopSplitOp(lazy bool) bytecode.Op {
	if lazy {
		return bytecode.OpLoopSplitNext
	}
	return bytecode.OpLoopSplitGoto
}

// wrapOptional compiles X? / X??.
func (c *compiler) wrapOptional(bodyStart int, lazy bool) {
	operand := c.insertSplitBefore(bodyStart, c.splitOp(lazy))
	c.patchJumpHere(operand)
}

// wrapStar compiles X* / X*?.
func (c *compiler) wrapStar(bodyStart int, lazy bool) {
	operand := c.insertSplitBefore(bodyStart, c.splitOp(lazy))
	gotoOperand := c.emitJump(bytecode.OpGoto)
	c.patchJump(gotoOperand, bodyStart)
	c.patchJumpHere(operand)
}

// wrapPlus compiles X+ / X+? — no insertion needed, the split goes after
// the already-emitted single mandatory copy.
func (c *compiler) wrapPlus(bodyStart int, lazy bool) {
	if lazy {
		operand := c.emitJump(bytecode.OpSplitGoto) // prefer fallthrough (exit), push repeat
		c.patchJump(operand, bodyStart)
		return
	}
	operand := c.emitJump(bytecode.OpSplitNext) // prefer jump (repeat), push fallthrough (exit)
	c.patchJump(operand, bodyStart)
}

// wrapExact compiles X{n} / X{n,n}, n >= 2: a single physical copy forced
// to execute exactly n times via a register down-counter.
func (c *compiler) wrapExact(bodyStart, n int) error {
	reg, err := c.allocateRegister()
	if err != nil {
		return err
	}
	c.setRegImmediateBefore(bodyStart, reg, n-1)
	bodyStartShifted := bodyStart + 6
	loopOperand := c.emitRegJump(bytecode.OpLoop, reg)
	c.patchJump(loopOperand, bodyStartShifted)
	c.releaseRegister(reg)
	return nil
}

// setRegImmediateBefore is a thin wrapper kept for readability at call
// sites: it inserts a set-i32 instruction immediately before bodyStart,
// initializing reg to imm.
func (c *compiler) setRegImmediateBefore(bodyStart int, reg byte, imm int) {
	c.buf.InsertZeros(bodyStart, 6)
	c.buf.SetByteAt(bodyStart, byte(bytecode.OpSetI32))
	c.buf.SetByteAt(bodyStart+1, reg)
	c.buf.SetU32At(bodyStart+2, uint32(int32(imm)))
}

// wrapAtLeast compiles X{n,} / X{n,}?, n >= 2: an exact-n mandatory loop
// (sharing the single physical copy) followed by an unregistered,
// unbounded tail reusing the same body entry point.
func (c *compiler) wrapAtLeast(bodyStart, n int, lazy bool) error {
	reg, err := c.allocateRegister()
	if err != nil {
		return err
	}
	c.setRegImmediateBefore(bodyStart, reg, n-1)
	bodyStartShifted := bodyStart + 6
	loopOperand := c.emitRegJump(bytecode.OpLoop, reg)
	c.patchJump(loopOperand, bodyStartShifted)
	c.releaseRegister(reg)

	tailOperand := c.emitJump(c.tailSplitOp(lazy))
	c.patchJump(tailOperand, bodyStartShifted)
	return nil
}

// tailSplitOp picks the plain (unregistered) split used by an unbounded
// repeat tail placed after an already-executed body copy — the same
// preference rule as wrapPlus.
func (c *compiler) tailSplitOp(lazy bool) bytecode.Op {
	if lazy {
		return bytecode.OpSplitGoto
	}
	return bytecode.OpSplitNext
}

// wrapBoundedFromZero compiles X{0,m} / X{0,m}?, m finite >= 2: the single
// already-emitted copy becomes the optional body, reused by a register
// down-counter whose gating instruction sits right before it.
func (c *compiler) wrapBoundedFromZero(bodyStart, m int, lazy bool) error {
	reg, err := c.allocateRegister()
	if err != nil {
		return err
	}
	c.setRegImmediateBefore(bodyStart, reg, m)
	gatePos := bodyStart + 6
	gateOperand := c.insertRegJumpBefore(gatePos, c.loopSplitOp(lazy), reg)

	gotoOperand := c.emitJump(bytecode.OpGoto)
	c.patchJump(gotoOperand, gatePos)
	c.patchJumpHere(gateOperand)
	c.releaseRegister(reg)
	return nil
}

// wrapBoundedRange compiles X{n,m} / X{n,m}?, 0 < n < m < unbounded: an
// exact-n mandatory loop over the original body copy, followed by a
// duplicated second copy driving the (m-n) optional repeats.
func (c *compiler) wrapBoundedRange(bodyStart, n, m int, lazy bool) error {
	bodyEnd := c.buf.Len()
	bodyBytes := append([]byte(nil), c.buf.Bytes()[bodyStart:bodyEnd]...)

	if n >= 2 {
		regA, err := c.allocateRegister()
		if err != nil {
			return err
		}
		c.setRegImmediateBefore(bodyStart, regA, n-1)
		bodyStartShifted := bodyStart + 6
		loopOperand := c.emitRegJump(bytecode.OpLoop, regA)
		c.patchJump(loopOperand, bodyStartShifted)
		c.releaseRegister(regA)
	}
	// n == 1: the original single copy already satisfies the mandatory
	// part with no wrapping needed.

	regB, err := c.allocateRegister()
	if err != nil {
		return err
	}
	c.buf.PutByte(byte(bytecode.OpSetI32))
	c.buf.PutByte(regB)
	c.buf.PutU32(uint32(int32(m - n)))
	gatePos := c.buf.Len()
	gateOperand := c.emitRegJump(c.loopSplitOp(lazy), regB)
	c.buf.PutBytes(bodyBytes)
	gotoOperand := c.emitJump(bytecode.OpGoto)
	c.patchJump(gotoOperand, gatePos)
	c.patchJumpHere(gateOperand)
	c.releaseRegister(regB)
	return nil
}
