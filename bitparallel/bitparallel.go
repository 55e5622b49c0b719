// Package bitparallel implements a bounded recursive backtracker that
// prunes repeated (pc, position) pairs with a bit-vector, exactly the
// "BitState" technique documented on the teacher's
// nfa.BoundedBacktracker.visited field (nfa/backtrack.go): once every
// continuation reachable from a given (pc, pos) is known to fail, no
// other path reaching that same pair needs to be retried, because future
// match/no-match behavior past a point depends only on (pc, pos) — never
// on how execution got there — for the restricted opcode subset this
// package accepts.
//
// That independence breaks for loop registers (two arrivals at the same
// pc can carry different remaining-iteration counts, so they are not
// actually the same state), backreferences (future matching depends on
// captured text, not just position) and lookaround (future matching
// depends on whether a pending assertion frame is open). CanHandle
// excludes all three, leaving this package a fast accelerant for
// anchors/alternation/classes/captures only; strategy falls back to
// vm.Backtracker or pike for anything richer.
package bitparallel

import (
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/charclass"
	"github.com/coregx/ecmaregex/vm"
)

// MaxStates bounds the program size this matcher will accept (spec's
// "≤256 states" bit-parallel feasibility gate).
const MaxStates = 256

// CanHandle reports whether prog is small enough and restricted enough
// (no loop registers, no backreferences, no lookaround) for the
// bounded-revisit pruning below to be sound.
func CanHandle(prog *bytecode.Program) bool {
	code := prog.Code()
	if len(code) > MaxStates {
		return false
	}
	r := bytecode.Reader{Code: code}
	pc := 0
	for pc < len(code) {
		op := r.Op(pc)
		switch op {
		case bytecode.OpLoop, bytecode.OpLoopSplitGoto, bytecode.OpLoopSplitNext,
			bytecode.OpSetI32, bytecode.OpSetCharPos, bytecode.OpCheckAdvance, bytecode.OpPrev,
			bytecode.OpBackref, bytecode.OpBackrefI, bytecode.OpBackrefBack, bytecode.OpBackrefBackI,
			bytecode.OpLookahead, bytecode.OpLookaheadMatch,
			bytecode.OpNegativeLookahead, bytecode.OpNegativeLookaheadMatch:
			return false
		}
		pc += bytecode.InstrSize(op, code[pc+1:])
	}
	return true
}

// Matcher executes a CanHandle-eligible program.
type Matcher struct {
	prog *bytecode.Program
}

// New wraps prog. Callers should gate construction on CanHandle.
func New(prog *bytecode.Program) *Matcher {
	return &Matcher{prog: prog}
}

// visited is a flat (pc, pos) bit-vector, one bit per (pc, pos) pair,
// sized len(code) * (inputLen+1) bits — identical layout to the
// teacher's BoundedBacktracker.visited.
type visited struct {
	bits   []uint64
	stride int // inputLen + 1
}

func newVisited(numPCs, inputLen int) *visited {
	stride := inputLen + 1
	n := numPCs * stride
	return &visited{bits: make([]uint64, (n+63)/64), stride: stride}
}

func (v *visited) shouldVisit(pc, pos int) bool {
	idx := pc*v.stride + pos
	word, bit := idx/64, uint(idx%64)
	if v.bits[word]&(1<<bit) != 0 {
		return false
	}
	v.bits[word] |= 1 << bit
	return true
}

// Exec runs one anchored match attempt starting at code-unit index start.
func (m *Matcher) Exec(cur vm.Cursor, start int) (vm.Result, []int) {
	prog := m.prog
	r := bytecode.Reader{Code: prog.Code()}
	dotAll := prog.Flags().Has(bytecode.FlagDotAll)
	isUnicode := prog.Flags().Has(bytecode.FlagUnicode)

	caps := make([]int, prog.CaptureCount()*2)
	for i := range caps {
		caps[i] = -1
	}
	v := newVisited(len(prog.Code())+1, cur.Len())

	bt := &walker{r: r, cur: cur, dotAll: dotAll, isUnicode: isUnicode, v: v, caps: caps}
	if bt.walk(0, start) {
		return vm.Match, bt.caps
	}
	return vm.NoMatch, nil
}

type walker struct {
	r         bytecode.Reader
	cur       vm.Cursor
	dotAll    bool
	isUnicode bool
	v         *visited
	caps      []int
}

// walk mirrors nfa.BoundedBacktracker.backtrack's recursive shape: try
// the highest-priority continuation first, mutating w.caps in place and
// restoring it on failure so a caller sees consistent capture state only
// on a true success.
func (w *walker) walk(pc, pos int) bool {
	if !w.v.shouldVisit(pc, pos) {
		return false
	}
	r := w.r
	op := r.Op(pc)
	switch op {
	case bytecode.OpMatch:
		return true

	case bytecode.OpGoto:
		target := pc + bytecode.InstrSize(op, nil) + int(r.RelOffset(pc))
		return w.walk(target, pos)

	case bytecode.OpSplitGoto:
		next := pc + bytecode.InstrSize(op, nil)
		target := next + int(r.RelOffset(pc))
		return w.walk(next, pos) || w.walk(target, pos)

	case bytecode.OpSplitNext:
		next := pc + bytecode.InstrSize(op, nil)
		target := next + int(r.RelOffset(pc))
		return w.walk(target, pos) || w.walk(next, pos)

	case bytecode.OpSaveStart, bytecode.OpSaveEnd:
		idx := int(r.ByteReg(pc))
		slot := idx * 2
		if op == bytecode.OpSaveEnd {
			slot++
		}
		old := w.caps[slot]
		w.caps[slot] = pos
		next := pc + bytecode.InstrSize(op, nil)
		if w.walk(next, pos) {
			return true
		}
		w.caps[slot] = old
		return false

	case bytecode.OpSaveReset:
		lo := int(r.ByteReg(pc))
		hi := int(r.Code[pc+2])
		type saved struct {
			slot, old int
		}
		var olds []saved
		for slot := lo * 2; slot < (hi+1)*2; slot++ {
			olds = append(olds, saved{slot, w.caps[slot]})
			w.caps[slot] = -1
		}
		next := pc + bytecode.InstrSize(op, nil)
		if w.walk(next, pos) {
			return true
		}
		for _, s := range olds {
			w.caps[s.slot] = s.old
		}
		return false

	case bytecode.OpLineStart:
		if !w.cur.AtStart(pos) {
			return false
		}
		return w.walk(pc+1, pos)
	case bytecode.OpLineStartM:
		if !w.cur.AtStart(pos) {
			prev, width := w.cur.ReadBackward(pos)
			if width == 0 || !charclass.IsLineTerminator(prev) {
				return false
			}
		}
		return w.walk(pc+1, pos)
	case bytecode.OpLineEnd:
		if !w.cur.AtEnd(pos) {
			return false
		}
		return w.walk(pc+1, pos)
	case bytecode.OpLineEndM:
		if !w.cur.AtEnd(pos) {
			next, width := w.cur.ReadForward(pos)
			if width == 0 || !charclass.IsLineTerminator(next) {
				return false
			}
		}
		return w.walk(pc+1, pos)

	case bytecode.OpWordBoundary, bytecode.OpNotWordBoundary, bytecode.OpWordBoundaryI, bytecode.OpNotWordBoundaryI:
		fold := op == bytecode.OpWordBoundaryI || op == bytecode.OpNotWordBoundaryI
		before, bw := w.cur.ReadBackward(pos)
		beforeWord := bw > 0 && wordCharOf(before, fold)
		after, aw := w.cur.ReadForward(pos)
		afterWord := aw > 0 && wordCharOf(after, fold)
		boundary := beforeWord != afterWord
		want := op == bytecode.OpWordBoundary || op == bytecode.OpWordBoundaryI
		if boundary != want {
			return false
		}
		return w.walk(pc+1, pos)

	case bytecode.OpChar, bytecode.OpCharI:
		want := rune(r.U16Operand(pc))
		got, width := w.cur.ReadForward(pos)
		if width == 0 || !runeEq(got, want, op == bytecode.OpCharI, w.isUnicode) {
			return false
		}
		return w.walk(pc+bytecode.InstrSize(op, nil), pos+width)

	case bytecode.OpChar32, bytecode.OpChar32I:
		want := rune(r.U32Operand(pc))
		got, width := w.cur.ReadForward(pos)
		if width == 0 || !runeEq(got, want, op == bytecode.OpChar32I, w.isUnicode) {
			return false
		}
		return w.walk(pc+bytecode.InstrSize(op, nil), pos+width)

	case bytecode.OpDot:
		got, width := w.cur.ReadForward(pos)
		if width == 0 || (!w.dotAll && charclass.IsLineTerminator(got)) {
			return false
		}
		return w.walk(pc+1, pos+width)

	case bytecode.OpAny:
		_, width := w.cur.ReadForward(pos)
		if width == 0 {
			return false
		}
		return w.walk(pc+1, pos+width)

	case bytecode.OpSpace, bytecode.OpNotSpace:
		got, width := w.cur.ReadForward(pos)
		if width == 0 || charclass.IsSpace(got) != (op == bytecode.OpSpace) {
			return false
		}
		return w.walk(pc+1, pos+width)

	case bytecode.OpRange, bytecode.OpRangeI, bytecode.OpRange32, bytecode.OpRange32I:
		table := r.RangeTable(pc)
		wide := op == bytecode.OpRange32 || op == bytecode.OpRange32I
		got, width := w.cur.ReadForward(pos)
		if width == 0 {
			return false
		}
		test := got
		if op == bytecode.OpRangeI || op == bytecode.OpRange32I {
			test = charclass.Canonicalize(got, w.isUnicode)
		}
		if !bytecode.RangeContains(table, wide, test) {
			return false
		}
		return w.walk(pc+bytecode.InstrSize(op, r.Code[pc+1:]), pos+width)

	default:
		return false
	}
}

func runeEq(got, want rune, fold, unicode bool) bool {
	if got == want {
		return true
	}
	if !fold {
		return false
	}
	return charclass.Canonicalize(got, unicode) == charclass.Canonicalize(want, unicode)
}

func wordCharOf(r rune, foldExtra bool) bool {
	if foldExtra {
		return charclass.IsWordCharFold(r)
	}
	return charclass.IsWordChar(r)
}
