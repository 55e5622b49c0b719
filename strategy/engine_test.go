package strategy

import (
	"testing"

	"github.com/coregx/ecmaregex/bytecode"
)

func TestCompileRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStackSize = 1
	if _, err := CompileWithConfig("abc", 0, cfg); err == nil {
		t.Fatal("CompileWithConfig() with an invalid config should fail before parsing")
	}
}

func TestCompilePropagatesParseError(t *testing.T) {
	if _, err := Compile("(unclosed", 0); err == nil {
		t.Fatal("Compile() with a malformed pattern should fail")
	}
}

func TestEngineKindForLiteralAlternation(t *testing.T) {
	e, err := Compile("cat|dog|bird", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if e.Kind() != KindMultiString {
		t.Fatalf("Kind() = %v, want KindMultiString", e.Kind())
	}
}

func TestEnginePassthroughAccessors(t *testing.T) {
	e, err := Compile("(?<year>[0-9]{4})", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if e.Program() == nil {
		t.Fatal("Program() returned nil")
	}
	if e.Flags()&bytecode.FlagNamedGroups == 0 {
		t.Fatal("Flags() should report FlagNamedGroups")
	}
	if e.CaptureCount() != 2 {
		t.Fatalf("CaptureCount() = %d, want 2", e.CaptureCount())
	}
	names := e.GroupNames()
	if len(names) != 2 || names[1].Name != "year" {
		t.Fatalf("GroupNames() = %+v, want index 1 named \"year\"", names)
	}
}

func TestEngineStatsResetStats(t *testing.T) {
	e, err := Compile("hello", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	e.ResetStats()
	stats := e.Stats()
	if stats != (Stats{}) {
		t.Fatalf("Stats() after ResetStats() = %+v, want zero value", stats)
	}
}
