package literal

import (
	"unicode/utf8"

	"github.com/coregx/ecmaregex/bytecode"
)

// maxAlternatives bounds how many alternative prefix literals Extract will
// track before giving up and returning no filter at all — an alternation
// with hundreds of arms is not worth scanning for, the real matcher will be
// faster than a 200-way memmem.
const maxAlternatives = 16

// maxLiteralBytes bounds how far a single literal is extended before being
// cut off, so a long run of plain characters doesn't make the prefilter
// itself the bottleneck.
const maxLiteralBytes = 32

// Extract walks a compiled program from its start and returns the required
// literal(s) a match must contain: a Seq of one literal for a plain
// concatenation, one per arm for a top-level alternation of literals, or an
// empty Seq when the program starts with something that isn't literal text
// at all (a class, `.`, an anchor-free loop, a backreference, ...).
//
// Every literal in the result is anchored at the program's start position —
// this is a "must appear starting here" prefix filter, not a substring
// filter; strategy is responsible for combining it with the overall search
// anchoring mode.
func Extract(prog *bytecode.Program) *Seq {
	code := prog.Code()
	r := bytecode.Reader{Code: code}
	paths := walkLiteral(r, 0, nil)
	if len(paths) == 0 {
		return NewSeq()
	}
	lits := make([]Literal, 0, len(paths))
	for _, p := range paths {
		if len(p.bytes) == 0 && !p.complete {
			// This branch has no literal text in front of it, so no
			// literal is required of every match.
			return NewSeq()
		}
		lits = append(lits, Literal{Bytes: p.bytes, Complete: p.complete, Inexact: p.inexact})
	}
	if len(lits) == 0 {
		return NewSeq()
	}
	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

type litPath struct {
	bytes    []byte
	complete bool
	inexact  bool
}

// walkLiteral extends prefix along every control path reachable from pc by
// pure literal text, stopping each path at the first instruction that isn't
// plain literal text (or zero-width and transparent to it). It returns one
// litPath per surviving control-flow branch, capped at maxAlternatives.
func walkLiteral(r bytecode.Reader, pc int, prefix []byte) []litPath {
	for {
		if len(prefix) >= maxLiteralBytes {
			return []litPath{{bytes: prefix, complete: false}}
		}
		op := r.Op(pc)
		switch op {
		case bytecode.OpSaveStart, bytecode.OpSaveEnd, bytecode.OpSaveReset,
			bytecode.OpLineStart, bytecode.OpLineStartM, bytecode.OpLineEnd, bytecode.OpLineEndM,
			bytecode.OpWordBoundary, bytecode.OpWordBoundaryI,
			bytecode.OpNotWordBoundary, bytecode.OpNotWordBoundaryI:
			pc += bytecode.InstrSize(op, nil)
			continue

		case bytecode.OpGoto:
			pc = pc + bytecode.InstrSize(op, nil) + int(r.RelOffset(pc))
			continue

		case bytecode.OpChar:
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], rune(r.U16Operand(pc)))
			prefix = append(append([]byte{}, prefix...), buf[:n]...)
			pc += bytecode.InstrSize(op, nil)
			continue

		case bytecode.OpChar32:
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], rune(r.U32Operand(pc)))
			prefix = append(append([]byte{}, prefix...), buf[:n]...)
			pc += bytecode.InstrSize(op, nil)
			continue

		case bytecode.OpMatch:
			return []litPath{{bytes: prefix, complete: true}}

		case bytecode.OpSplitGoto, bytecode.OpSplitNext:
			next := pc + bytecode.InstrSize(op, nil)
			target := next + int(r.RelOffset(pc))
			a := walkLiteral(r, next, prefix)
			b := walkLiteral(r, target, prefix)
			combined := append(a, b...)
			if len(combined) > maxAlternatives {
				return []litPath{{bytes: prefix, complete: false, inexact: true}}
			}
			return combined

		default:
			// Anything else (classes, ., anchor variants that look past
			// more than one code unit, backreferences, loops, lookaround)
			// ends literal extraction along this path. The text gathered
			// so far is still exact; the match just isn't fully
			// determined by it.
			return []litPath{{bytes: prefix, complete: false}}
		}
	}
}
