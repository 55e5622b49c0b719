package strategy

import (
	"github.com/coregx/ecmaregex/bitparallel"
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/literal"
	"github.com/coregx/ecmaregex/pike"
)

// Kind names the backend a compiled program was classified to run on.
type Kind int

const (
	KindMultiString Kind = iota
	KindLiteralPrefilter
	KindBitParallel
	KindPike
	KindBacktracker
)

func (k Kind) String() string {
	switch k {
	case KindMultiString:
		return "multi_string"
	case KindLiteralPrefilter:
		return "literal_prefilter"
	case KindBitParallel:
		return "bit_parallel"
	case KindPike:
		return "pike"
	case KindBacktracker:
		return "backtracker"
	default:
		return "unknown"
	}
}

// classification is the dispatcher's decision. multiString, when true,
// means the whole pattern is a flat literal alternation: the automaton
// built from literals alone is the entire matcher, no executor needed.
// Otherwise executor names the backend that actually verifies a candidate
// position, and literals (if non-empty) is only a position-skipping
// prefilter layered in front of it — rule 2 narrows candidates for
// whichever of rules 3-5 executes the match, it does not replace it.
type classification struct {
	multiString bool
	literals    *literal.Seq
	executor    Kind
}

// classify implements the five-rule dispatcher order of spec §4.6: a
// top-level literal-only alternation gets the multi-string scanner
// exclusively; else a required literal prefix/infix set (if found) backs a
// position-skipping prefilter layered over the first feasible executor
// among bit-parallel, Pike, and the backtracker, in that preference order.
func classify(prog *bytecode.Program, cfg Config) classification {
	seq := literal.Extract(prog)

	if cfg.EnablePrefilter && !seq.IsEmpty() && seq.Len() > 1 && seq.AllComplete() {
		return classification{multiString: true, literals: seq}
	}

	c := classification{}
	if cfg.EnablePrefilter && !seq.IsEmpty() {
		usable := true
		for i := 0; i < seq.Len(); i++ {
			if seq.Get(i).Len() < cfg.MinLiteralLen {
				usable = false
				break
			}
		}
		if usable {
			c.literals = seq
		}
	}

	switch {
	case cfg.EnableBitParallel && len(prog.Code()) <= cfg.MaxBitParallelStates && bitparallel.CanHandle(prog):
		c.executor = KindBitParallel
	case cfg.EnablePike && pike.CanHandle(prog):
		c.executor = KindPike
	default:
		c.executor = KindBacktracker
	}
	return c
}
