// Package ecmaregex provides a JavaScript (ECMAScript) compatible regular
// expression engine: compile a pattern and flag string into bytecode, then
// run it against a text buffer through one of several interchangeable
// matcher backends (package strategy) to produce match positions and
// capture groups.
//
// Basic usage:
//
//	re, err := ecmaregex.Compile(`\d+`, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match := re.FindString("hello 123 world")
//	fmt.Println(match) // "123"
//
// Named captures and flags work the way they do in JavaScript source text:
//
//	re := ecmaregex.MustCompile(`(?<proto>https?)://(?<host>\w+)`, "i")
//	m := re.FindStringSubmatch("Visit HTTPS://example")
//	fmt.Println(m[1], m[2]) // HTTPS example
package ecmaregex

import (
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/strategy"
)

// Regex is a compiled ECMAScript pattern, ready to search UTF-8 text.
//
// A Regex is safe for concurrent use by multiple goroutines: searching
// never mutates compiled state. The one exception is ResetStats, which
// zeroes the shared search counters and so should not race with a
// concurrent search on the same Regex.
type Regex struct {
	engine  *strategy.Engine
	source  string
	flagStr string
}

// Compile parses pattern under the given JavaScript flag letters (any
// combination of "gimsuvy") and builds a Regex. Returns a *parser.SyntaxError
// for a malformed pattern or a *FlagError for a malformed flag string.
func Compile(pattern, flags string) (*Regex, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return nil, err
	}
	engine, err := strategy.Compile(pattern, f)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, source: pattern, flagStr: flags}, nil
}

// CompileWithConfig parses pattern under flags using custom dispatcher
// tunables, for callers that want to adjust prefilter/bit-parallel/Pike
// feasibility limits away from DefaultConfig.
func CompileWithConfig(pattern, flags string, config strategy.Config) (*Regex, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return nil, err
	}
	engine, err := strategy.CompileWithConfig(pattern, f, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, source: pattern, flagStr: flags}, nil
}

// MustCompile is like Compile but panics on error, for patterns known
// valid at init time.
func MustCompile(pattern, flags string) *Regex {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic("ecmaregex: Compile(" + pattern + ", " + flags + "): " + err.Error())
	}
	return re
}

// DefaultConfig returns the dispatcher's default tunables, for callers
// that want to start from the defaults and adjust one field.
func DefaultConfig() strategy.Config { return strategy.DefaultConfig() }

// String returns the source pattern text.
func (r *Regex) String() string { return r.source }

// Flags returns the source flag letters passed to Compile.
func (r *Regex) Flags() string { return r.flagStr }

// NumSubexp returns the number of capture groups, including group 0 (the
// entire match).
func (r *Regex) NumSubexp() int { return r.engine.CaptureCount() }

// SubexpNames returns the name of every capture group, indexed by group
// number. Group 0 and unnamed groups report "".
func (r *Regex) SubexpNames() []string {
	gn := r.engine.GroupNames()
	names := make([]string, len(gn))
	for i, g := range gn {
		names[i] = g.Name
	}
	return names
}

// GroupFlags exposes the compiled flag bit set (spec §6 get_flags), for
// callers that need the raw bytecode-level flags rather than the source
// flag string.
func (r *Regex) GroupFlags() bytecode.Flags { return r.engine.Flags() }

// Stats returns a snapshot of this Regex's backend dispatch counters.
func (r *Regex) Stats() strategy.Stats { return r.engine.Stats() }

// ResetStats zeroes this Regex's backend dispatch counters.
func (r *Regex) ResetStats() { r.engine.ResetStats() }
