// Package strategy implements the dispatcher that picks which matcher
// backend (multi-string scanner, literal-prefiltered search, bit-parallel
// NFA, Pike NFA, or the backtracker) executes a compiled program, and the
// Engine that drives the chosen backend through the unified find_at
// contract (spec §4.6). Grounded on the teacher's meta package
// (meta/config.go, meta/engine.go, meta/compile.go, meta/strategy.go):
// same Config/Validate/ConfigError shape, same Stats-counter idiom, same
// "compile once, search many times against pooled scratch" engine shape,
// driving this module's bytecode matchers instead of the teacher's NFA/DFA
// pair.
package strategy

// Config tunes strategy selection and the resource limits of the backend
// it picks.
type Config struct {
	// EnablePrefilter allows literal-based prefiltering (strategy dispatch
	// rules 1 and 2). Default: true.
	EnablePrefilter bool

	// EnableBitParallel allows the bit-parallel NFA (rule 3). Default: true.
	EnableBitParallel bool

	// EnablePike allows the Pike NFA (rule 4). Default: true.
	EnablePike bool

	// MinLiteralLen is the minimum length a single literal must have to
	// back a prefilter; shorter literals have too high a false-positive
	// rate to be worth the scan. Default: 1 (a memchr prefilter is cheap
	// even for one byte).
	MinLiteralLen int

	// MaxLiterals is range-checked by Validate but not consulted during
	// dispatch: literal.Extract applies its own fixed cap of 16 alternative
	// literals. Default: 16.
	MaxLiterals int

	// MaxBitParallelStates caps the bytecode length the bit-parallel
	// backend will accept (spec §4.5's "≤256 states" feasibility gate).
	// Default: bitparallel.MaxStates.
	MaxBitParallelStates int

	// MaxStackSize caps the backtracker's choice-point stack, mirroring
	// vm.Config.MaxStackSize. Default: 1<<20.
	MaxStackSize int

	// TimeoutCheckInterval is how many choice-point pushes elapse between
	// backtracker timeout callback invocations. Default: 10000.
	TimeoutCheckInterval int
}

// DefaultConfig returns the dispatcher's default tunables.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:      true,
		EnableBitParallel:    true,
		EnablePike:           true,
		MinLiteralLen:        1,
		MaxLiterals:          16,
		MaxBitParallelStates: 256,
		MaxStackSize:         1 << 20,
		TimeoutCheckInterval: 10000,
	}
}

// Validate checks that every tunable is within range, returning a
// *ConfigError naming the first offending field.
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{Field: "MinLiteralLen", Message: "must be between 1 and 64"}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1000 {
			return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
		}
	}
	if c.EnableBitParallel {
		if c.MaxBitParallelStates < 1 || c.MaxBitParallelStates > 4096 {
			return &ConfigError{Field: "MaxBitParallelStates", Message: "must be between 1 and 4,096"}
		}
	}
	if c.MaxStackSize < 64 || c.MaxStackSize > 1<<30 {
		return &ConfigError{Field: "MaxStackSize", Message: "must be between 64 and 1<<30"}
	}
	if c.TimeoutCheckInterval < 1 {
		return &ConfigError{Field: "TimeoutCheckInterval", Message: "must be positive"}
	}
	return nil
}

// ConfigError reports an out-of-range Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "strategy: invalid config: " + e.Field + ": " + e.Message
}
