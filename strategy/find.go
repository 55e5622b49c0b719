package strategy

import (
	"sync/atomic"

	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/vm"
)

// TimeoutFunc is invoked periodically during backtracker execution;
// returning true aborts the match with vm.Timeout.
type TimeoutFunc = vm.TimeoutFunc

// matchAt attempts an anchored match at exactly pos, using whichever
// executor the dispatcher selected. caps is sized 2*CaptureCount and
// populated on success.
func (e *Engine) matchAt(cur vm.Cursor, pos int, timeout TimeoutFunc) (vm.Result, []int) {
	switch e.kind {
	case KindBitParallel:
		atomic.AddUint64(&e.stats.BitParallelSearches, 1)
		return e.bitM.Exec(cur, pos)
	case KindPike:
		atomic.AddUint64(&e.stats.PikeSearches, 1)
		return e.pikeVM.Exec(cur, pos)
	default:
		atomic.AddUint64(&e.stats.BacktrackerSearches, 1)
		scratch := e.getScratch()
		defer e.putScratch(scratch)
		res, err := e.backtracker.Exec(cur, pos, scratch, timeout)
		if res != vm.Match {
			return res, nil
		}
		caps := make([]int, len(scratch.Captures()))
		copy(caps, scratch.Captures())
		if err != nil {
			return res, nil
		}
		return res, caps
	}
}

// ahoMatcher is satisfied by *prefilter.AhoCorasickPrefilter; FindAt uses
// it directly for the multi-string strategy to recover a full match span
// (not just a candidate position) in one call.
type ahoMatcher interface {
	FindMatch(haystack []byte, start int) (matchStart, matchEnd int, ok bool)
}

// FindAt runs the unified find_at(pos) contract (spec §4.6): search for a
// match starting at or after pos (or exactly at pos when the pattern is
// Sticky), returning the match span and its capture slots.
//
// Prefiltering (the multi-string scanner and the literal-prefix skip) only
// operates on byte-addressable input; cur.Slice returns nil for UTF16/UCS2
// cursors, and FindAt degrades to a plain per-codepoint sweep through the
// selected executor in that case (still correct, just without the skip).
func (e *Engine) FindAt(cur vm.Cursor, pos int, timeout TimeoutFunc) (start, end int, caps []int, ok bool) {
	sticky := e.prog.Flags().Has(bytecode.FlagSticky)
	haystack := cur.Slice(0, cur.Len())

	if e.kind == KindMultiString && haystack != nil {
		if ac, isAho := e.pf.(ahoMatcher); isAho {
			atomic.AddUint64(&e.stats.MultiStringSearches, 1)
			s, en, found := ac.FindMatch(haystack, pos)
			if !found || (sticky && s != pos) {
				return 0, 0, nil, false
			}
			caps := make([]int, 2*e.prog.CaptureCount())
			for i := range caps {
				caps[i] = -1
			}
			caps[0], caps[1] = s, en
			return s, en, caps, true
		}
	}

	if sticky {
		res, caps := e.matchAt(cur, pos, timeout)
		if res != vm.Match {
			return 0, 0, nil, false
		}
		return caps[0], caps[1], caps, true
	}

	usePrefilter := e.pf != nil && haystack != nil && e.kind != KindMultiString
	for p := pos; p <= cur.Len(); {
		candidate := p
		if usePrefilter {
			c := e.pf.Find(haystack, p)
			if c < 0 {
				atomic.AddUint64(&e.stats.PrefilterMisses, 1)
				return 0, 0, nil, false
			}
			candidate = c
			atomic.AddUint64(&e.stats.PrefilterHits, 1)
		}
		res, caps := e.matchAt(cur, candidate, timeout)
		if res == vm.Match {
			return caps[0], caps[1], caps, true
		}
		if res == vm.Timeout || res == vm.MemoryError {
			return 0, 0, nil, false
		}
		if usePrefilter {
			p = candidate + 1
			continue
		}
		_, width := cur.ReadForward(p)
		if width == 0 {
			break
		}
		p += width
	}
	return 0, 0, nil, false
}

// Find reports whether the pattern matches anywhere in cur, and its span.
func (e *Engine) Find(cur vm.Cursor) (start, end int, ok bool) {
	s, en, _, matched := e.FindAt(cur, 0, nil)
	return s, en, matched
}

// Captures reports the full capture-slot array of the leftmost match, if
// any.
func (e *Engine) Captures(cur vm.Cursor) ([]int, bool) {
	_, _, caps, ok := e.FindAt(cur, 0, nil)
	return caps, ok
}

// IsMatch reports only whether the pattern matches anywhere in cur. It
// runs the same search as Find and discards the span and capture slots.
func (e *Engine) IsMatch(cur vm.Cursor) bool {
	_, _, _, ok := e.FindAt(cur, 0, nil)
	return ok
}

// Iterator walks successive non-overlapping matches, advancing past each
// match's end (or by one codepoint on a zero-width match) per spec §8.
type Iterator struct {
	e       *Engine
	cur     vm.Cursor
	pos     int
	done    bool
	timeout TimeoutFunc
}

// FindIter returns an Iterator over every non-overlapping match in cur.
func (e *Engine) FindIter(cur vm.Cursor, timeout TimeoutFunc) *Iterator {
	return &Iterator{e: e, cur: cur, timeout: timeout}
}

// Next returns the next match, or ok=false once the input is exhausted.
func (it *Iterator) Next() (start, end int, caps []int, ok bool) {
	if it.done || it.pos > it.cur.Len() {
		return 0, 0, nil, false
	}
	s, en, caps, matched := it.e.FindAt(it.cur, it.pos, it.timeout)
	if !matched {
		it.done = true
		return 0, 0, nil, false
	}
	if en == s {
		_, width := it.cur.ReadForward(en)
		if width == 0 {
			width = 1
		}
		it.pos = en + width
	} else {
		it.pos = en
	}
	return s, en, caps, true
}
