package strategy

import (
	"sync"
	"sync/atomic"

	"github.com/coregx/ecmaregex/bitparallel"
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/parser"
	"github.com/coregx/ecmaregex/pike"
	"github.com/coregx/ecmaregex/prefilter"
	"github.com/coregx/ecmaregex/vm"
)

// Stats tracks per-backend search counts and prefilter effectiveness,
// mirroring the teacher's meta.Stats counter set (meta/engine.go).
type Stats struct {
	MultiStringSearches uint64
	BitParallelSearches uint64
	PikeSearches        uint64
	BacktrackerSearches uint64
	PrefilterHits       uint64
	PrefilterMisses     uint64
}

// Engine compiles a pattern once and executes it repeatedly through the
// backend the dispatcher selected, pooling backtracker scratch across
// calls the way the teacher's Engine pools its searchState
// (meta/search_state.go).
type Engine struct {
	prog *bytecode.Program
	kind Kind
	cfg  Config

	pf          prefilter.Prefilter
	pikeVM      *pike.VM
	bitM        *bitparallel.Matcher
	backtracker *vm.Backtracker
	scratchPool sync.Pool
	vmCfg       vm.Config

	stats Stats
}

// Compile parses pattern under flags and builds an Engine with default
// dispatch tunables.
func Compile(pattern string, flags bytecode.Flags) (*Engine, error) {
	return CompileWithConfig(pattern, flags, DefaultConfig())
}

// CompileWithConfig parses pattern under flags and builds an Engine whose
// dispatcher obeys cfg.
func CompileWithConfig(pattern string, flags bytecode.Flags, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prog, err := parser.Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return newEngine(prog, cfg), nil
}

// CompileProgram wraps an already-compiled Program, for callers that
// parsed out-of-band (e.g. after Program.Unmarshal).
func CompileProgram(prog *bytecode.Program, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newEngine(prog, cfg), nil
}

func newEngine(prog *bytecode.Program, cfg Config) *Engine {
	e := &Engine{
		prog: prog,
		cfg:  cfg,
		vmCfg: vm.Config{
			InitialStackCapacity: 64,
			MaxStackSize:         cfg.MaxStackSize,
			StackGrowthFactor:    1.5,
			TimeoutCheckInterval: cfg.TimeoutCheckInterval,
		},
	}

	e.kind = KindBacktracker
	c := classify(prog, cfg)
	if c.multiString {
		patterns := make([][]byte, c.literals.Len())
		for i := range patterns {
			patterns[i] = c.literals.Get(i).Bytes
		}
		if pf, err := prefilter.NewAhoCorasickPrefilter(patterns, true); err == nil {
			e.kind = KindMultiString
			e.pf = pf
		}
	}

	if e.kind != KindMultiString {
		e.kind = c.executor
		if c.literals != nil {
			if pf := prefilter.Build(c.literals); pf != nil {
				e.pf = pf
			}
		}
		switch c.executor {
		case KindBitParallel:
			e.bitM = bitparallel.New(prog)
		case KindPike:
			e.pikeVM = pike.New(prog)
		}
	}

	// The backtracker is always built: it is the executor of last resort,
	// and the sole executor when a multi-string automaton build fails.
	e.backtracker = vm.New(prog)
	e.scratchPool.New = func() any {
		return vm.NewScratch(e.vmCfg)
	}
	return e
}

// Kind reports which backend the dispatcher selected.
func (e *Engine) Kind() Kind { return e.kind }

// Program returns the compiled program backing this engine.
func (e *Engine) Program() *bytecode.Program { return e.prog }

// Flags returns the compiled flag set (spec §6 get_flags).
func (e *Engine) Flags() bytecode.Flags { return e.prog.Flags() }

// CaptureCount returns the number of capture slots, including group 0
// (spec §6 get_capture_count).
func (e *Engine) CaptureCount() int { return e.prog.CaptureCount() }

// GroupNames returns the capture name table (spec §6 get_group_names).
func (e *Engine) GroupNames() []bytecode.GroupName { return e.prog.GroupNames() }

// Stats returns a snapshot of the engine's search counters.
func (e *Engine) Stats() Stats {
	return Stats{
		MultiStringSearches: atomic.LoadUint64(&e.stats.MultiStringSearches),
		BitParallelSearches: atomic.LoadUint64(&e.stats.BitParallelSearches),
		PikeSearches:        atomic.LoadUint64(&e.stats.PikeSearches),
		BacktrackerSearches: atomic.LoadUint64(&e.stats.BacktrackerSearches),
		PrefilterHits:       atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses:     atomic.LoadUint64(&e.stats.PrefilterMisses),
	}
}

// ResetStats zeroes the engine's search counters.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.MultiStringSearches, 0)
	atomic.StoreUint64(&e.stats.BitParallelSearches, 0)
	atomic.StoreUint64(&e.stats.PikeSearches, 0)
	atomic.StoreUint64(&e.stats.BacktrackerSearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
}

func (e *Engine) getScratch() *vm.Scratch {
	return e.scratchPool.Get().(*vm.Scratch)
}

func (e *Engine) putScratch(s *vm.Scratch) {
	e.scratchPool.Put(s)
}
