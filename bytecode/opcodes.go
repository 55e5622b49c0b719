package bytecode

// Op identifies a bytecode instruction. Numeric values are not a stable
// public wire format requirement of this module (spec leaves the encoding
// unspecified — "names carry semantics, not a specific encoding") but are
// kept aligned with the retrieved original implementation's numbering
// (original_source/src/regex/pikevm.rs, bitvm.rs) for the opcodes both
// share, so that a diagnostic dump of compiled bytecode reads the same way
// across ports.
type Op byte

const (
	OpChar       Op = 1  // char, 2-byte codepoint operand (u16), case-sensitive
	OpCharI      Op = 2  // char, case-folded compare
	OpChar32     Op = 3  // char, 4-byte codepoint operand, case-sensitive
	OpChar32I    Op = 4  // char, 4-byte codepoint operand, case-folded
	OpDot        Op = 5  // any codepoint except line terminators, unless DotAll
	OpAny        Op = 6  // unconditional one-codepoint consume
	OpSpace      Op = 7  // \s
	OpNotSpace   Op = 8  // \S
	OpLineStart  Op = 9  // ^ (plain)
	OpLineStartM Op = 10 // ^ (multiline)
	OpLineEnd    Op = 11 // $ (plain)
	OpLineEndM   Op = 12 // $ (multiline)
	OpGoto Op = 13 // unconditional relative jump

	// OpSplitGoto pushes a choice point at (pc_next + rel) and continues
	// at pc_next (the fallthrough, i.e. the instruction emitted
	// immediately after this one). Used wherever the thing placed right
	// after the split must be tried first: the first branch of an
	// alternation, and the body of a greedy quantifier (the loop is
	// re-entered by fallthrough; the exit is the deferred choice point).
	OpSplitGoto Op = 14

	// OpSplitNext pushes a choice point at pc_next (the fallthrough) and
	// continues at (pc_next + rel). Used wherever the jump target must be
	// tried first: the exit of a lazy quantifier (skip the body, which
	// sits at the fallthrough, unless that is later backtracked into).
	OpSplitNext Op = 15

	OpMatch Op = 16 // terminate successfully

	OpSaveStart Op = 19 // write current position into capture slot 2n
	OpSaveEnd   Op = 20 // write current position into capture slot 2n+1
	OpSaveReset Op = 21 // clear capture slots for [lo, hi]

	// OpLoop: test-then-decrement. If register > 0, decrement it and jump
	// back by rel; otherwise leave it at 0 and fall through. Used for the
	// mandatory part of a counted repeat: initialized to (n-1) before a
	// single physical body copy that this instruction sits right after,
	// it drives exactly n total executions of that body.
	OpLoop Op = 22

	// OpLoopSplitGoto: the greedy optional-repeat tail. If register > 0,
	// decrement it, push a choice point at (pc_next + rel) (the exit), and
	// continue at pc_next (one more body execution — greedy prefers
	// repeating). If register == 0, continue at (pc_next + rel) directly,
	// no push, no decrement (no repeats left to offer).
	OpLoopSplitGoto Op = 23

	// OpLoopSplitNext: the lazy optional-repeat tail. If register > 0,
	// decrement it, push a choice point at pc_next (one more body
	// execution, tried only on backtrack), and continue at (pc_next + rel)
	// (the exit, preferred). If register == 0, continue at (pc_next + rel)
	// directly, same as the greedy case once repeats are exhausted.
	OpLoopSplitNext Op = 24

	OpSetI32      Op = 27 // register = immediate i32
	OpWordBoundary    Op = 28 // \b
	OpWordBoundaryI   Op = 29 // \b, case-folded word-char test (U+017F, U+212A)
	OpNotWordBoundary  Op = 30 // \B
	OpNotWordBoundaryI Op = 31 // \B, case-folded word-char test

	OpSetCharPos  Op = 32 // register = current input position
	OpCheckAdvance Op = 33 // fail if current input position == register

	OpPrev Op = 34 // step input position back by one codepoint (lookbehind/backward backref)

	OpBackref       Op = 35 // backreference, forward, case-sensitive
	OpBackrefI      Op = 40 // backreference, forward, case-folded
	OpBackrefBack   Op = 41 // backreference, backward, case-sensitive
	OpBackrefBackI  Op = 42 // backreference, backward, case-folded

	OpRange   Op = 36 // 16-bit interval table membership, case-sensitive
	OpRangeI  Op = 37 // 16-bit interval table membership, case-folded
	OpRange32 Op = 38 // 32-bit interval table membership, case-sensitive
	OpRange32I Op = 39 // 32-bit interval table membership, case-folded

	OpLookahead             Op = 43 // push lookahead choice point, enter body
	OpLookaheadMatch        Op = 44 // body of positive lookahead succeeded
	OpNegativeLookahead     Op = 45 // push negative-lookahead choice point, enter body
	OpNegativeLookaheadMatch Op = 46 // body of negative lookahead succeeded (assertion fails)
)

// String returns a short mnemonic, useful for bytecode dumps in tests and
// diagnostics.
func (o Op) String() string {
	switch o {
	case OpChar:
		return "char"
	case OpCharI:
		return "char_i"
	case OpChar32:
		return "char32"
	case OpChar32I:
		return "char32_i"
	case OpDot:
		return "dot"
	case OpAny:
		return "any"
	case OpSpace:
		return "space"
	case OpNotSpace:
		return "not_space"
	case OpLineStart:
		return "line_start"
	case OpLineStartM:
		return "line_start_m"
	case OpLineEnd:
		return "line_end"
	case OpLineEndM:
		return "line_end_m"
	case OpGoto:
		return "goto"
	case OpSplitGoto:
		return "split_goto_first"
	case OpSplitNext:
		return "split_next_first"
	case OpMatch:
		return "match"
	case OpSaveStart:
		return "save_start"
	case OpSaveEnd:
		return "save_end"
	case OpSaveReset:
		return "save_reset"
	case OpLoop:
		return "loop"
	case OpLoopSplitGoto:
		return "loop_split_goto_first"
	case OpLoopSplitNext:
		return "loop_split_next_first"
	case OpSetI32:
		return "set_i32"
	case OpWordBoundary:
		return "word_boundary"
	case OpWordBoundaryI:
		return "word_boundary_i"
	case OpNotWordBoundary:
		return "not_word_boundary"
	case OpNotWordBoundaryI:
		return "not_word_boundary_i"
	case OpSetCharPos:
		return "set_char_pos"
	case OpCheckAdvance:
		return "check_advance"
	case OpPrev:
		return "prev"
	case OpBackref:
		return "backref"
	case OpBackrefI:
		return "backref_i"
	case OpBackrefBack:
		return "backref_back"
	case OpBackrefBackI:
		return "backref_back_i"
	case OpRange:
		return "range"
	case OpRangeI:
		return "range_i"
	case OpRange32:
		return "range32"
	case OpRange32I:
		return "range32_i"
	case OpLookahead:
		return "lookahead"
	case OpLookaheadMatch:
		return "lookahead_match"
	case OpNegativeLookahead:
		return "negative_lookahead"
	case OpNegativeLookaheadMatch:
		return "negative_lookahead_match"
	default:
		return "unknown"
	}
}

// InstrSize returns the encoded size in bytes of an instruction with the
// given opcode, given the bytes immediately following the opcode byte in
// the program (needed for the two variable-width families: range tables,
// whose size depends on an interval count, and back-references, whose size
// depends on a capture-index width byte). operands is program[pc+1:] and
// must have enough bytes available for the opcode's fixed header if it has
// a variable part.
func InstrSize(op Op, operands []byte) int {
	switch op {
	case OpChar, OpCharI:
		return 1 + 2 // opcode + u16 codepoint (BMP fast path)
	case OpChar32, OpChar32I:
		return 1 + 4 // opcode + u32 codepoint (full code space)
	case OpDot, OpAny, OpSpace, OpNotSpace,
		OpLineStart, OpLineStartM, OpLineEnd, OpLineEndM,
		OpMatch, OpPrev,
		OpWordBoundary, OpWordBoundaryI, OpNotWordBoundary, OpNotWordBoundaryI,
		OpLookaheadMatch, OpNegativeLookaheadMatch:
		return 1
	case OpGoto, OpSplitGoto, OpSplitNext, OpLookahead, OpNegativeLookahead:
		return 1 + 4 // opcode + i32 relative offset
	case OpLoop, OpLoopSplitGoto, OpLoopSplitNext:
		return 1 + 1 + 4 // opcode + register + i32 relative offset
	case OpSaveStart, OpSaveEnd:
		return 1 + 1 // opcode + capture index (0..255)
	case OpSaveReset:
		return 1 + 1 + 1 // opcode + lo + hi
	case OpSetI32:
		return 1 + 1 + 4 // opcode + register + i32 immediate
	case OpSetCharPos, OpCheckAdvance:
		return 1 + 1 // opcode + register
	case OpRange, OpRangeI:
		if len(operands) < 2 {
			return 1 + 2
		}
		n := int(uint16(operands[0]) | uint16(operands[1])<<8)
		return 1 + 2 + n*4 // opcode + count + n*(lo16,hi16)
	case OpRange32, OpRange32I:
		if len(operands) < 2 {
			return 1 + 2
		}
		n := int(uint16(operands[0]) | uint16(operands[1])<<8)
		return 1 + 2 + n*8 // opcode + count + n*(lo32,hi32)
	case OpBackref, OpBackrefI, OpBackrefBack, OpBackrefBackI:
		return 1 + 1 // opcode + capture index
	default:
		return 1
	}
}
