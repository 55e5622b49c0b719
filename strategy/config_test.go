package strategy

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []struct {
		name  string
		mutate func(*Config)
		field string
	}{
		{"MinLiteralLen too small", func(c *Config) { c.MinLiteralLen = 0 }, "MinLiteralLen"},
		{"MinLiteralLen too large", func(c *Config) { c.MinLiteralLen = 65 }, "MinLiteralLen"},
		{"MaxLiterals too small", func(c *Config) { c.MaxLiterals = 0 }, "MaxLiterals"},
		{"MaxLiterals too large", func(c *Config) { c.MaxLiterals = 1001 }, "MaxLiterals"},
		{"MaxBitParallelStates too small", func(c *Config) { c.MaxBitParallelStates = 0 }, "MaxBitParallelStates"},
		{"MaxBitParallelStates too large", func(c *Config) { c.MaxBitParallelStates = 4097 }, "MaxBitParallelStates"},
		{"MaxStackSize too small", func(c *Config) { c.MaxStackSize = 1 }, "MaxStackSize"},
		{"TimeoutCheckInterval zero", func(c *Config) { c.TimeoutCheckInterval = 0 }, "TimeoutCheckInterval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want an error for field %s", tc.field)
			}
			cerr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want *ConfigError", err)
			}
			if cerr.Field != tc.field {
				t.Fatalf("Validate() error field = %q, want %q", cerr.Field, tc.field)
			}
		})
	}
}

func TestConfigValidateSkipsDisabledFeatureRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnablePrefilter = false
	cfg.MinLiteralLen = 0 // would be invalid if EnablePrefilter were true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil when the feature gating that field is disabled", err)
	}
}
