package vm

import (
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/charclass"
)

// TimeoutFunc is the optional external time-check callback (spec §4.4): it
// is invoked roughly every Config.TimeoutCheckInterval choice-point pushes
// and should return true once the caller's budget has expired.
type TimeoutFunc func() bool

// Backtracker executes a compiled bytecode.Program against an input buffer
// using the explicit choice-point-stack backtracking interpreter described
// by spec §4.4. It holds no mutable search state itself — all of that
// lives in the Scratch passed to Exec, so one Backtracker can be shared
// across goroutines as long as each uses its own Scratch (the same
// single-writer-per-scratch discipline the teacher's BoundedBacktracker
// documents for its visited bit-vector).
type Backtracker struct {
	prog *bytecode.Program
}

// New wraps prog for execution.
func New(prog *bytecode.Program) *Backtracker {
	return &Backtracker{prog: prog}
}

// Exec runs one anchored match attempt starting at code-unit index start.
// On Match, scratch.Captures() holds the populated capture slots. On any
// other result, scratch's capture slots are left in an unspecified state
// (the caller should not read them — matching spec's "on no match it is
// untouched" by not exposing the partially-built array at all).
func (b *Backtracker) Exec(cur Cursor, start int, scratch *Scratch, timeout TimeoutFunc) (Result, error) {
	prog := b.prog
	scratch.reset(prog.CaptureCount(), prog.RegisterCount())

	r := bytecode.Reader{Code: prog.Code()}
	isUnicode := prog.Flags().Has(bytecode.FlagUnicode)
	dotAll := prog.Flags().Has(bytecode.FlagDotAll)

	pc := 0
	pos := start

dispatch:
	for {
		op := r.Op(pc)
		switch op {
		case bytecode.OpChar, bytecode.OpCharI:
			want := rune(r.U16Operand(pc))
			got, w := cur.ReadForward(pos)
			if w == 0 || !charMatches(op, got, want, isUnicode) {
				goto fail
			}
			pos += w
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpChar32, bytecode.OpChar32I:
			want := rune(r.U32Operand(pc))
			got, w := cur.ReadForward(pos)
			if w == 0 || !charMatches(op, got, want, isUnicode) {
				goto fail
			}
			pos += w
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpDot:
			got, w := cur.ReadForward(pos)
			if w == 0 || (!dotAll && isLineTerminator(got)) {
				goto fail
			}
			pos += w
			pc++

		case bytecode.OpAny:
			_, w := cur.ReadForward(pos)
			if w == 0 {
				goto fail
			}
			pos += w
			pc++

		case bytecode.OpSpace, bytecode.OpNotSpace:
			got, w := cur.ReadForward(pos)
			if w == 0 {
				goto fail
			}
			if isSpace(got) != (op == bytecode.OpSpace) {
				goto fail
			}
			pos += w
			pc++

		case bytecode.OpLineStart:
			if !cur.AtStart(pos) {
				goto fail
			}
			pc++
		case bytecode.OpLineStartM:
			if !cur.AtStart(pos) {
				prev, w := cur.ReadBackward(pos)
				if w == 0 || !isLineTerminator(prev) {
					goto fail
				}
			}
			pc++
		case bytecode.OpLineEnd:
			if !cur.AtEnd(pos) {
				goto fail
			}
			pc++
		case bytecode.OpLineEndM:
			if !cur.AtEnd(pos) {
				next, w := cur.ReadForward(pos)
				if w == 0 || !isLineTerminator(next) {
					goto fail
				}
			}
			pc++

		case bytecode.OpWordBoundary, bytecode.OpNotWordBoundary, bytecode.OpWordBoundaryI, bytecode.OpNotWordBoundaryI:
			fold := opIsIgnoreCaseVariant(op)
			before, bw := cur.ReadBackward(pos)
			beforeWord := bw > 0 && isWordChar(before, fold)
			after, aw := cur.ReadForward(pos)
			afterWord := aw > 0 && isWordChar(after, fold)
			boundary := beforeWord != afterWord
			want := op == bytecode.OpWordBoundary || op == bytecode.OpWordBoundaryI
			if boundary != want {
				goto fail
			}
			pc++

		case bytecode.OpGoto:
			pc = pc + bytecode.InstrSize(op, nil) + int(r.RelOffset(pc))

		case bytecode.OpSplitGoto:
			next := pc + bytecode.InstrSize(op, nil)
			target := next + int(r.RelOffset(pc))
			if err := pushFrame(scratch, frame{pc: target, pos: pos, saveMark: len(scratch.saves), kind: framePlain}); err != nil {
				return resultFor(err), err
			}
			if scratch.timedOut(timeout) {
				return Timeout, ErrTimeout
			}
			pc = next

		case bytecode.OpSplitNext:
			next := pc + bytecode.InstrSize(op, nil)
			target := next + int(r.RelOffset(pc))
			if err := pushFrame(scratch, frame{pc: next, pos: pos, saveMark: len(scratch.saves), kind: framePlain}); err != nil {
				return resultFor(err), err
			}
			if scratch.timedOut(timeout) {
				return Timeout, ErrTimeout
			}
			pc = target

		case bytecode.OpMatch:
			return Match, nil

		case bytecode.OpSaveStart, bytecode.OpSaveEnd:
			idx := int(r.ByteReg(pc))
			slot := idx * 2
			if op == bytecode.OpSaveEnd {
				slot++
			}
			pushSave(scratch, saveCapture, slot, scratch.captures[slot])
			scratch.captures[slot] = pos
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpSaveReset:
			lo := int(r.ByteReg(pc))
			hi := int(r.Code[pc+2])
			for slot := lo * 2; slot < (hi+1)*2; slot++ {
				pushSave(scratch, saveCapture, slot, scratch.captures[slot])
				scratch.captures[slot] = -1
			}
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpSetI32:
			reg := int(r.ByteReg(pc))
			v := int(r.RegRelOffset(pc))
			pushSave(scratch, saveRegister, reg, scratch.registers[reg])
			scratch.registers[reg] = v
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpSetCharPos:
			reg := int(r.ByteReg(pc))
			pushSave(scratch, saveRegister, reg, scratch.registers[reg])
			scratch.registers[reg] = pos
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpCheckAdvance:
			reg := int(r.ByteReg(pc))
			if pos == scratch.registers[reg] {
				goto fail
			}
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpPrev:
			_, w := cur.ReadBackward(pos)
			if w == 0 {
				goto fail
			}
			pos -= w
			pc++

		case bytecode.OpLoop:
			reg := int(r.ByteReg(pc))
			if scratch.registers[reg] > 0 {
				scratch.registers[reg]--
				pc = pc + bytecode.InstrSize(op, nil) + int(r.RegRelOffset(pc))
			} else {
				pc += bytecode.InstrSize(op, nil)
			}

		case bytecode.OpLoopSplitGoto:
			reg := int(r.ByteReg(pc))
			next := pc + bytecode.InstrSize(op, nil)
			if scratch.registers[reg] > 0 {
				scratch.registers[reg]--
				exit := next + int(r.RegRelOffset(pc))
				if err := pushFrame(scratch, frame{pc: exit, pos: pos, saveMark: len(scratch.saves), kind: framePlain}); err != nil {
					return resultFor(err), err
				}
				if scratch.timedOut(timeout) {
					return Timeout, ErrTimeout
				}
				pc = next
			} else {
				pc = next + int(r.RegRelOffset(pc))
			}

		case bytecode.OpLoopSplitNext:
			reg := int(r.ByteReg(pc))
			next := pc + bytecode.InstrSize(op, nil)
			if scratch.registers[reg] > 0 {
				scratch.registers[reg]--
				if err := pushFrame(scratch, frame{pc: next, pos: pos, saveMark: len(scratch.saves), kind: framePlain}); err != nil {
					return resultFor(err), err
				}
				if scratch.timedOut(timeout) {
					return Timeout, ErrTimeout
				}
				pc = next + int(r.RegRelOffset(pc))
			} else {
				pc = next + int(r.RegRelOffset(pc))
			}

		case bytecode.OpRange, bytecode.OpRangeI, bytecode.OpRange32, bytecode.OpRange32I:
			table := r.RangeTable(pc)
			wide := op == bytecode.OpRange32 || op == bytecode.OpRange32I
			got, w := cur.ReadForward(pos)
			if w == 0 {
				goto fail
			}
			test := got
			if opIsIgnoreCaseVariant(op) {
				test = charclass.Canonicalize(got, isUnicode)
			}
			if !rangeContains(table, wide, test) {
				goto fail
			}
			pos += w
			pc += bytecode.InstrSize(op, r.Code[pc+1:])

		case bytecode.OpBackref, bytecode.OpBackrefI:
			idx := int(r.ByteReg(pc))
			newPos, ok := matchBackrefForward(cur, pos, scratch.captures, idx, opIsIgnoreCaseVariant(op), isUnicode)
			if !ok {
				goto fail
			}
			pos = newPos
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpBackrefBack, bytecode.OpBackrefBackI:
			idx := int(r.ByteReg(pc))
			newPos, ok := matchBackrefBackward(cur, pos, scratch.captures, idx, opIsIgnoreCaseVariant(op), isUnicode)
			if !ok {
				goto fail
			}
			pos = newPos
			pc += bytecode.InstrSize(op, nil)

		case bytecode.OpLookahead, bytecode.OpNegativeLookahead:
			next := pc + bytecode.InstrSize(op, nil)
			onFail := next + int(r.RelOffset(pc))
			kind := frameLookahead
			if op == bytecode.OpNegativeLookahead {
				kind = frameNegLookahead
			}
			if err := pushFrame(scratch, frame{pc: next, pos: pos, saveMark: len(scratch.saves), kind: kind, onFailPC: onFail}); err != nil {
				return resultFor(err), err
			}
			pc = next

		case bytecode.OpLookaheadMatch:
			f, found := unwindLookahead(scratch, frameLookahead)
			if !found {
				goto fail
			}
			pos = f.pos
			pc = f.onFailPC

		case bytecode.OpNegativeLookaheadMatch:
			f, found := unwindLookahead(scratch, frameNegLookahead)
			if !found {
				goto fail
			}
			undoSavesTo(scratch, f.saveMark)
			pos = f.pos
			goto fail

		default:
			goto fail
		}
		continue dispatch

	fail:
		npc, npos, ok := backtrackFail(scratch)
		if !ok {
			return NoMatch, nil
		}
		pc, pos = npc, npos
	}
}

func charMatches(op bytecode.Op, got, want rune, unicode bool) bool {
	if opIsIgnoreCaseVariant(op) {
		return foldEq(got, want, unicode)
	}
	return got == want
}

func resultFor(err error) Result {
	switch err {
	case ErrMemory:
		return MemoryError
	case ErrTimeout:
		return Timeout
	default:
		return MemoryError
	}
}

// pushFrame appends a choice point, growing the stack geometrically
// (Config.StackGrowthFactor) up to Config.MaxStackSize.
func pushFrame(s *Scratch, f frame) error {
	if len(s.choices) == cap(s.choices) {
		if len(s.choices) >= s.cfg.MaxStackSize {
			return ErrMemory
		}
		newCap := int(float64(cap(s.choices)) * s.cfg.StackGrowthFactor)
		if newCap <= cap(s.choices) {
			newCap = cap(s.choices) + 1
		}
		if newCap > s.cfg.MaxStackSize {
			newCap = s.cfg.MaxStackSize
		}
		grown := make([]frame, len(s.choices), newCap)
		copy(grown, s.choices)
		s.choices = grown
	}
	s.choices = append(s.choices, f)
	s.pushes++
	return nil
}

func (s *Scratch) timedOut(timeout TimeoutFunc) bool {
	if timeout == nil || s.cfg.TimeoutCheckInterval <= 0 {
		return false
	}
	if s.pushes%s.cfg.TimeoutCheckInterval != 0 {
		return false
	}
	return timeout()
}

func pushSave(s *Scratch, kind saveKind, idx, old int) {
	s.saves = append(s.saves, saveEntry{kind: kind, idx: idx, old: old})
}

func undoSavesTo(s *Scratch, mark int) {
	for i := len(s.saves) - 1; i >= mark; i-- {
		e := s.saves[i]
		switch e.kind {
		case saveCapture:
			s.captures[e.idx] = e.old
		case saveRegister:
			s.registers[e.idx] = e.old
		}
	}
	s.saves = s.saves[:mark]
}

// backtrackFail pops choice points until it finds one to resume at, by
// frame kind: a plain split always resumes; a
// positive-lookahead marker popped here means the body was exhausted
// without matching, so the assertion itself failed and the search keeps
// unwinding; a negative-lookahead marker popped here means the body was
// exhausted, which is exactly when the negative assertion succeeds.
func backtrackFail(s *Scratch) (pc, pos int, ok bool) {
	for len(s.choices) > 0 {
		n := len(s.choices) - 1
		f := s.choices[n]
		s.choices = s.choices[:n]
		switch f.kind {
		case framePlain:
			undoSavesTo(s, f.saveMark)
			return f.pc, f.pos, true
		case frameLookahead:
			undoSavesTo(s, f.saveMark)
		case frameNegLookahead:
			undoSavesTo(s, f.saveMark)
			return f.onFailPC, f.pos, true
		}
	}
	return 0, 0, false
}

// unwindLookahead finds the innermost still-open frame of kind want
// (the one whose body just reached its *Match opcode), discarding it and
// every frame pushed above it.
func unwindLookahead(s *Scratch, want frameKind) (frame, bool) {
	for i := len(s.choices) - 1; i >= 0; i-- {
		if s.choices[i].kind == want {
			f := s.choices[i]
			s.choices = s.choices[:i]
			return f, true
		}
	}
	return frame{}, false
}
