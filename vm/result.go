package vm

import "errors"

// Result is the three-way (plus abort) outcome of Exec, modeled as a small
// enum rather than spec.md's negative integer codes (§4.4/§7) — same
// information, idiomatic Go.
type Result int

const (
	NoMatch Result = iota
	Match
	MemoryError
	Timeout
)

func (r Result) String() string {
	switch r {
	case Match:
		return "match"
	case NoMatch:
		return "no_match"
	case MemoryError:
		return "memory_error"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ErrMemory and ErrTimeout are the sentinel errors backing MemoryError and
// Timeout results, satisfying errors.Is the way the teacher's nfa.CompileError
// and meta.ConfigError expose sentinels alongside their struct types.
var (
	ErrMemory  = errors.New("vm: choice-point stack exceeded maximum size")
	ErrTimeout = errors.New("vm: execution exceeded time budget")
)
