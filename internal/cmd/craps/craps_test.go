package craps

import (
	"flag"
	"testing"
)

func TestParseConfig_DefaultsAndFlags(t *testing.T) {
	fs := flag.NewFlagSet("craps", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8095 {
		t.Fatalf("port = %d, want 8095", cfg.Port)
	}

	fs = flag.NewFlagSet("craps", flag.ContinueOnError)
	t.Setenv("CRAPSHOOT_PORT", "9001")
	cfg, err = ParseConfig(fs, []string{"-port", "9002"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9002 {
		t.Fatalf("port = %d, want flag to win", cfg.Port)
	}
}

func TestParseConfig_RejectsBadEnv(t *testing.T) {
	t.Setenv("CRAPSHOOT_PORT", "not-a-port")
	if _, err := ParseConfig(flag.NewFlagSet("craps", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected env parse error")
	}
}
