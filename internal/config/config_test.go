package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

var envVars = []string{
	"VERDICT_PORT", "VERDICT_METRICS_PORT", "VERDICT_ADMIN_TOKEN", "VERDICT_RATE_LIMIT",
	"VERDICT_HERMES_URL", "VERDICT_WEIGHT_TOLERANCE", "VERDICT_RANK_POLICY",
	"VERDICT_LOG_LEVEL", "VERDICT_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimit)
	}
	if cfg.Hermes.URL != "" {
		t.Errorf("expected hermes disabled by default, got %s", cfg.Hermes.URL)
	}
	if cfg.Engine.WeightTolerance != saw.DefaultWeightTolerance {
		t.Errorf("expected tolerance %v, got %v", saw.DefaultWeightTolerance, cfg.Engine.WeightTolerance)
	}
	if cfg.Engine.RankPolicy != "sequential" {
		t.Errorf("expected rank policy 'sequential', got '%s'", cfg.Engine.RankPolicy)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
	if len(cfg.Options()) != 2 {
		t.Errorf("expected 2 engine options, got %d", len(cfg.Options()))
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VERDICT_PORT", "9000")
	t.Setenv("VERDICT_METRICS_PORT", "9001")
	t.Setenv("VERDICT_ADMIN_TOKEN", "secret-token")
	t.Setenv("VERDICT_RATE_LIMIT", "30")
	t.Setenv("VERDICT_HERMES_URL", "nats://nats:4222")
	t.Setenv("VERDICT_WEIGHT_TOLERANCE", "0.01")
	t.Setenv("VERDICT_RANK_POLICY", "Competition")
	t.Setenv("VERDICT_LOG_LEVEL", "debug")
	t.Setenv("VERDICT_LOG_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Server.RateLimit != 30 {
		t.Errorf("expected rate limit 30, got %d", cfg.Server.RateLimit)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Engine.WeightTolerance != 0.01 {
		t.Errorf("expected tolerance 0.01, got %v", cfg.Engine.WeightTolerance)
	}
	if cfg.Engine.RankPolicy != "competition" {
		t.Errorf("expected rank policy 'competition', got '%s'", cfg.Engine.RankPolicy)
	}
	lvl, err := cfg.LogLevel()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("expected debug level, got %v (%v)", lvl, err)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "verdict.yaml")
	body := []byte(`
server:
  port: 8800
  admin_token: from-file
engine:
  weight_tolerance: 0.05
  rank_policy: competition
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "from-file" {
		t.Errorf("expected admin token from file, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Engine.RankPolicy != "competition" {
		t.Errorf("expected competition, got '%s'", cfg.Engine.RankPolicy)
	}

	t.Setenv("VERDICT_PORT", "9100")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env to override file, got %d", cfg.Server.Port)
	}
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	t.Setenv("VERDICT_RANK_POLICY", "olympic")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown rank policy")
	}

	t.Setenv("VERDICT_RANK_POLICY", "")
	t.Setenv("VERDICT_WEIGHT_TOLERANCE", "-1")
	if _, err := Load(""); err == nil {
		t.Error("expected error for negative tolerance")
	}

	t.Setenv("VERDICT_WEIGHT_TOLERANCE", "NaN")
	if _, err := Load(""); err == nil {
		t.Error("expected error for NaN tolerance")
	}

	t.Setenv("VERDICT_WEIGHT_TOLERANCE", "")
	t.Setenv("VERDICT_LOG_LEVEL", "loud")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestLoadRankPolicyIgnoresCase(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "verdict.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  rank_policy: Competition\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine.RankPolicy != "competition" {
		t.Errorf("expected competition, got '%s'", cfg.Engine.RankPolicy)
	}
	if p, _ := saw.ParseRankPolicy(cfg.Engine.RankPolicy); p != saw.RankCompetition {
		t.Errorf("expected competition policy, got '%s'", p)
	}
}
