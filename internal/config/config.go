package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Hermes  HermesConfig  `yaml:"hermes"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port          int    `yaml:"port"`
	MetricsPort   int    `yaml:"metrics_port"`
	AdminToken    string `yaml:"admin_token"`
	RateLimit     int    `yaml:"rate_limit_per_minute"`
	ShutdownGrace int    `yaml:"shutdown_grace_ms"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// EngineConfig tunes the SAW computation.
type EngineConfig struct {
	WeightTolerance float64 `yaml:"weight_tolerance"`
	RankPolicy      string  `yaml:"rank_policy"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Options translates the engine section into saw options. Call Validate
// first.
func (c *Config) Options() []saw.Option {
	policy, _ := saw.ParseRankPolicy(c.Engine.RankPolicy)
	return []saw.Option{
		saw.WithWeightTolerance(c.Engine.WeightTolerance),
		saw.WithRankPolicy(policy),
	}
}

// Validate rejects settings the engine cannot honour.
func (c *Config) Validate() error {
	if !(c.Engine.WeightTolerance > 0) {
		return fmt.Errorf("engine.weight_tolerance must be positive, got %v", c.Engine.WeightTolerance)
	}
	if _, err := saw.ParseRankPolicy(c.Engine.RankPolicy); err != nil {
		return fmt.Errorf("engine.rank_policy: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return lvl, nil
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:          8700,
			MetricsPort:   8701,
			RateLimit:     120,
			ShutdownGrace: 10000,
		},
		Engine: EngineConfig{
			WeightTolerance: saw.DefaultWeightTolerance,
			RankPolicy:      string(saw.RankSequential),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	cfg.Engine.RankPolicy = strings.ToLower(strings.TrimSpace(cfg.Engine.RankPolicy))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VERDICT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("VERDICT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("VERDICT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("VERDICT_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("VERDICT_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("VERDICT_WEIGHT_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.WeightTolerance = f
		}
	}
	if v := os.Getenv("VERDICT_RANK_POLICY"); v != "" {
		cfg.Engine.RankPolicy = v
	}
	if v := os.Getenv("VERDICT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VERDICT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
