// Package pike implements a Pike-style breadth-first NFA simulation over
// compiled bytecode, adapted from the teacher's nfa.PikeVM
// (nfa/pikevm.go) and generalized from walking *NFA states to walking
// bytecode program counters directly.
//
// Unlike nfa.PikeVM's COW-capture thread list over a pre-parsed NFA graph,
// this VM steps bytecode.Reader instructions, carrying both a capture
// array and a register array per thread (registers back the bounded
// counted-repeat opcodes, which have no equivalent in the teacher's NFA
// since its repetition is always pre-unrolled into states). Backreferences
// and lookaround assertions are out of scope, matching the teacher's own
// documented limitation ("handles all regex features including
// backreferences (future)") — CanHandle gates a program out of this path
// whenever either appears, and the strategy dispatcher falls back to the
// backtracker.
package pike

import (
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/charclass"
	"github.com/coregx/ecmaregex/internal/sparse"
	"github.com/coregx/ecmaregex/vm"
)

// CanHandle reports whether prog's bytecode avoids the features this
// simulation cannot represent as a flat, priority-ordered thread list:
// backreferences (forward or backward) and lookaround assertions.
func CanHandle(prog *bytecode.Program) bool {
	code := prog.Code()
	r := bytecode.Reader{Code: code}
	pc := 0
	for pc < len(code) {
		op := r.Op(pc)
		switch op {
		case bytecode.OpBackref, bytecode.OpBackrefI, bytecode.OpBackrefBack, bytecode.OpBackrefBackI,
			bytecode.OpLookahead, bytecode.OpLookaheadMatch,
			bytecode.OpNegativeLookahead, bytecode.OpNegativeLookaheadMatch,
			bytecode.OpPrev:
			return false
		}
		pc += bytecode.InstrSize(op, code[pc+1:])
	}
	return true
}

// VM executes a feasible program via parallel thread simulation.
type VM struct {
	prog *bytecode.Program
}

// New wraps prog. Callers should gate construction on CanHandle.
func New(prog *bytecode.Program) *VM {
	return &VM{prog: prog}
}

type pikeThread struct {
	pc    int
	caps  []int
	regs  []int
}

func cloneInts(x []int) []int {
	y := make([]int, len(x))
	copy(y, x)
	return y
}

// Exec runs one anchored match attempt starting at code-unit index start,
// honoring the same leftmost-first (not leftmost-longest) priority that
// alternation order implies in the backtracker: the first thread to reach
// OpMatch wins, and every thread added after it in the same generation is
// discarded since it is, by construction, lower priority.
func (m *VM) Exec(cur vm.Cursor, start int) (vm.Result, []int) {
	prog := m.prog
	r := bytecode.Reader{Code: prog.Code()}
	dotAll := prog.Flags().Has(bytecode.FlagDotAll)
	isUnicode := prog.Flags().Has(bytecode.FlagUnicode)

	nCaps := prog.CaptureCount() * 2
	nRegs := prog.RegisterCount()
	caps0 := make([]int, nCaps)
	for i := range caps0 {
		caps0[i] = -1
	}
	regs0 := make([]int, nRegs)

	visited := sparse.NewSparseSet(uint32(len(prog.Code()) + 1))
	var clist []pikeThread
	addThread(&clist, visited, r, 0, start, caps0, regs0, cur, dotAll, isUnicode)

	pos := start
	var matched bool
	var matchCaps []int

	for {
		var consume []pikeThread
		for _, t := range clist {
			if r.Op(t.pc) == bytecode.OpMatch {
				matched = true
				matchCaps = t.caps
				break
			}
			consume = append(consume, t)
		}

		if pos >= cur.Len() || len(consume) == 0 {
			break
		}
		got, w := cur.ReadForward(pos)
		if w == 0 {
			break
		}

		next := sparse.NewSparseSet(uint32(len(prog.Code()) + 1))
		var nlist []pikeThread
		for _, t := range consume {
			op := r.Op(t.pc)
			ok, fold := false, opIsFold(op)
			switch op {
			case bytecode.OpChar, bytecode.OpCharI:
				want := rune(r.U16Operand(t.pc))
				ok = runeMatches(got, want, fold, isUnicode)
			case bytecode.OpChar32, bytecode.OpChar32I:
				want := rune(r.U32Operand(t.pc))
				ok = runeMatches(got, want, fold, isUnicode)
			case bytecode.OpDot:
				ok = dotAll || !charclass.IsLineTerminator(got)
			case bytecode.OpAny:
				ok = true
			case bytecode.OpSpace, bytecode.OpNotSpace:
				ok = charclass.IsSpace(got) == (op == bytecode.OpSpace)
			case bytecode.OpRange, bytecode.OpRangeI, bytecode.OpRange32, bytecode.OpRange32I:
				wide := op == bytecode.OpRange32 || op == bytecode.OpRange32I
				table := r.RangeTable(t.pc)
				test := got
				if fold {
					test = charclass.Canonicalize(got, isUnicode)
				}
				ok = bytecode.RangeContains(table, wide, test)
			}
			if !ok {
				continue
			}
			nextPC := t.pc + bytecode.InstrSize(op, r.Code[t.pc+1:])
			addThread(&nlist, next, r, nextPC, pos+w, t.caps, t.regs, cur, dotAll, isUnicode)
		}
		clist = nlist
		pos += w
		if len(clist) == 0 {
			break
		}
	}

	if matched {
		return vm.Match, matchCaps
	}
	return vm.NoMatch, nil
}

// addThread follows every epsilon transition reachable from pc (splits,
// saves, register writes, zero-width assertions), appending the
// instructions that actually consume input (or OpMatch) to list in
// priority order. visited dedupes by pc within one generation — the first
// path to reach a given pc wins, exactly the shadowing rule
// internal/sparse documents for this use.
func addThread(list *[]pikeThread, visited *sparse.SparseSet, r bytecode.Reader, pc, pos int, caps, regs []int, cur vm.Cursor, dotAll, isUnicode bool) {
	if !visited.Insert(uint32(pc)) {
		return
	}
	op := r.Op(pc)
	switch op {
	case bytecode.OpGoto:
		target := pc + bytecode.InstrSize(op, nil) + int(r.RelOffset(pc))
		addThread(list, visited, r, target, pos, caps, regs, cur, dotAll, isUnicode)

	case bytecode.OpSplitGoto:
		next := pc + bytecode.InstrSize(op, nil)
		target := next + int(r.RelOffset(pc))
		addThread(list, visited, r, next, pos, caps, regs, cur, dotAll, isUnicode)
		addThread(list, visited, r, target, pos, caps, regs, cur, dotAll, isUnicode)

	case bytecode.OpSplitNext:
		next := pc + bytecode.InstrSize(op, nil)
		target := next + int(r.RelOffset(pc))
		addThread(list, visited, r, target, pos, caps, regs, cur, dotAll, isUnicode)
		addThread(list, visited, r, next, pos, caps, regs, cur, dotAll, isUnicode)

	case bytecode.OpSaveStart, bytecode.OpSaveEnd:
		idx := int(r.ByteReg(pc))
		slot := idx * 2
		if op == bytecode.OpSaveEnd {
			slot++
		}
		caps2 := cloneInts(caps)
		caps2[slot] = pos
		next := pc + bytecode.InstrSize(op, nil)
		addThread(list, visited, r, next, pos, caps2, regs, cur, dotAll, isUnicode)

	case bytecode.OpSaveReset:
		lo := int(r.ByteReg(pc))
		hi := int(r.Code[pc+2])
		caps2 := cloneInts(caps)
		for slot := lo * 2; slot < (hi+1)*2; slot++ {
			caps2[slot] = -1
		}
		next := pc + bytecode.InstrSize(op, nil)
		addThread(list, visited, r, next, pos, caps2, regs, cur, dotAll, isUnicode)

	case bytecode.OpSetI32:
		reg := int(r.ByteReg(pc))
		v := int(r.RegRelOffset(pc))
		regs2 := cloneInts(regs)
		regs2[reg] = v
		next := pc + bytecode.InstrSize(op, nil)
		addThread(list, visited, r, next, pos, caps, regs2, cur, dotAll, isUnicode)

	case bytecode.OpSetCharPos:
		reg := int(r.ByteReg(pc))
		regs2 := cloneInts(regs)
		regs2[reg] = pos
		next := pc + bytecode.InstrSize(op, nil)
		addThread(list, visited, r, next, pos, caps, regs2, cur, dotAll, isUnicode)

	case bytecode.OpCheckAdvance:
		reg := int(r.ByteReg(pc))
		if pos == regs[reg] {
			return
		}
		next := pc + bytecode.InstrSize(op, nil)
		addThread(list, visited, r, next, pos, caps, regs, cur, dotAll, isUnicode)

	case bytecode.OpLoop:
		reg := int(r.ByteReg(pc))
		next := pc + bytecode.InstrSize(op, nil)
		if regs[reg] > 0 {
			regs2 := cloneInts(regs)
			regs2[reg]--
			target := next + int(r.RegRelOffset(pc))
			addThread(list, visited, r, target, pos, caps, regs2, cur, dotAll, isUnicode)
		} else {
			addThread(list, visited, r, next, pos, caps, regs, cur, dotAll, isUnicode)
		}

	case bytecode.OpLoopSplitGoto:
		reg := int(r.ByteReg(pc))
		next := pc + bytecode.InstrSize(op, nil)
		exit := next + int(r.RegRelOffset(pc))
		if regs[reg] > 0 {
			regs2 := cloneInts(regs)
			regs2[reg]--
			addThread(list, visited, r, next, pos, caps, regs2, cur, dotAll, isUnicode)
			addThread(list, visited, r, exit, pos, caps, regs, cur, dotAll, isUnicode)
		} else {
			addThread(list, visited, r, exit, pos, caps, regs, cur, dotAll, isUnicode)
		}

	case bytecode.OpLoopSplitNext:
		reg := int(r.ByteReg(pc))
		next := pc + bytecode.InstrSize(op, nil)
		exit := next + int(r.RegRelOffset(pc))
		if regs[reg] > 0 {
			regs2 := cloneInts(regs)
			regs2[reg]--
			addThread(list, visited, r, exit, pos, caps, regs, cur, dotAll, isUnicode)
			addThread(list, visited, r, next, pos, caps, regs2, cur, dotAll, isUnicode)
		} else {
			addThread(list, visited, r, exit, pos, caps, regs, cur, dotAll, isUnicode)
		}

	case bytecode.OpLineStart:
		if !cur.AtStart(pos) {
			return
		}
		addThread(list, visited, r, pc+1, pos, caps, regs, cur, dotAll, isUnicode)
	case bytecode.OpLineStartM:
		if !cur.AtStart(pos) {
			prev, w := cur.ReadBackward(pos)
			if w == 0 || !charclass.IsLineTerminator(prev) {
				return
			}
		}
		addThread(list, visited, r, pc+1, pos, caps, regs, cur, dotAll, isUnicode)
	case bytecode.OpLineEnd:
		if !cur.AtEnd(pos) {
			return
		}
		addThread(list, visited, r, pc+1, pos, caps, regs, cur, dotAll, isUnicode)
	case bytecode.OpLineEndM:
		if !cur.AtEnd(pos) {
			nxt, w := cur.ReadForward(pos)
			if w == 0 || !charclass.IsLineTerminator(nxt) {
				return
			}
		}
		addThread(list, visited, r, pc+1, pos, caps, regs, cur, dotAll, isUnicode)

	case bytecode.OpWordBoundary, bytecode.OpNotWordBoundary, bytecode.OpWordBoundaryI, bytecode.OpNotWordBoundaryI:
		fold := op == bytecode.OpWordBoundaryI || op == bytecode.OpNotWordBoundaryI
		before, bw := cur.ReadBackward(pos)
		beforeWord := bw > 0 && wordChar(before, fold)
		after, aw := cur.ReadForward(pos)
		afterWord := aw > 0 && wordChar(after, fold)
		boundary := beforeWord != afterWord
		want := op == bytecode.OpWordBoundary || op == bytecode.OpWordBoundaryI
		if boundary != want {
			return
		}
		addThread(list, visited, r, pc+1, pos, caps, regs, cur, dotAll, isUnicode)

	default:
		// consuming instruction or OpMatch: terminates the closure
		*list = append(*list, pikeThread{pc: pc, caps: caps, regs: regs})
	}
}

func opIsFold(op bytecode.Op) bool {
	switch op {
	case bytecode.OpCharI, bytecode.OpChar32I, bytecode.OpRangeI, bytecode.OpRange32I:
		return true
	default:
		return false
	}
}

func runeMatches(got, want rune, fold, unicode bool) bool {
	if got == want {
		return true
	}
	if !fold {
		return false
	}
	return charclass.Canonicalize(got, unicode) == charclass.Canonicalize(want, unicode)
}

func wordChar(r rune, foldExtra bool) bool {
	if foldExtra {
		return charclass.IsWordCharFold(r)
	}
	return charclass.IsWordChar(r)
}
