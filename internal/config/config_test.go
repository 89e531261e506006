package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("API_RATE_LIMIT_BURST", "")
	t.Setenv("API_MAX_CONNS", "")
	t.Setenv("BRIEFING_SEED", "")

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %q", cfg.APIPort)
	}
	if cfg.NATSSubject != "files.analyze" {
		t.Fatalf("expected default nats subject files.analyze, got %q", cfg.NATSSubject)
	}
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("expected default rate limit rps 20, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 40 {
		t.Fatalf("expected default rate limit burst 40, got %d", cfg.APIRateLimitBurst)
	}
	if cfg.APIMaxConns != 256 {
		t.Fatalf("expected default max conns 256, got %d", cfg.APIMaxConns)
	}
	if cfg.BriefingSeed != 0 {
		t.Fatalf("expected default briefing seed 0, got %d", cfg.BriefingSeed)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("API_RATE_LIMIT_RPS", "5")
	t.Setenv("API_MAX_CONNS", "64")
	t.Setenv("BRIEFING_SEED", "42")

	cfg := Load()
	if cfg.APIPort != "9999" {
		t.Fatalf("expected api port override, got %q", cfg.APIPort)
	}
	if cfg.APIRateLimitRPS != 5 {
		t.Fatalf("expected rate limit rps 5, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.APIMaxConns != 64 {
		t.Fatalf("expected max conns 64, got %d", cfg.APIMaxConns)
	}
	if cfg.BriefingSeed != 42 {
		t.Fatalf("expected briefing seed 42, got %d", cfg.BriefingSeed)
	}
}

func TestLoadFallsBackOnBadInt(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("expected fallback rps 20 on bad value, got %d", cfg.APIRateLimitRPS)
	}
}
