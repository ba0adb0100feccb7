// SPDX-License-Identifier: MIT

// Package config loads the chorewheel service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chorewheel/cost"
	"github.com/katalvlaran/chorewheel/flow"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Policy  PolicyConfig  `yaml:"policy"`
	Solver  SolverConfig  `yaml:"solver"`
	Round   RoundConfig   `yaml:"round"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`            // ":8080"
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"` // e.g. "10s"
}

// StorageConfig configures the sqlite store.
type StorageConfig struct {
	DataDir string `yaml:"dataDir"` // directory holding chorewheel.db
}

// PolicyConfig mirrors cost.Policy. Zero fields take the defaults.
type PolicyConfig struct {
	Favor         int64 `yaml:"favor"`
	Neutral       int64 `yaml:"neutral"`
	Avoid         int64 `yaml:"avoid"`
	RepeatPenalty int64 `yaml:"repeatPenalty"`
	NoiseSpan     *int  `yaml:"noiseSpan"` // nil = default, 0 = no noise
	Unassignable  int64 `yaml:"unassignable"`
}

// SolverConfig tunes the min-cost flow solver.
type SolverConfig struct {
	Strategy         string `yaml:"strategy"`         // "bellman-ford" or "dijkstra"
	MaxAugmentations int    `yaml:"maxAugmentations"` // 0 = unlimited
}

// Options converts the solver section into flow options.
// Call only on a validated configuration.
func (s SolverConfig) Options() []flow.Option {
	opts := []flow.Option{flow.WithStrategy(strategies[s.Strategy])}
	if s.MaxAugmentations > 0 {
		opts = append(opts, flow.WithMaxAugmentations(s.MaxAugmentations))
	}

	return opts
}

var strategies = map[string]flow.Strategy{
	flow.BellmanFord.String(): flow.BellmanFord,
	flow.Dijkstra.String():    flow.Dijkstra,
}

// RoundConfig configures what a round persists.
type RoundConfig struct {
	Period time.Duration `yaml:"period"` // due date = now + Period
}

// KafkaConfig configures round event publishing.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`      // "/metrics"
	Namespace string `yaml:"namespace"` // "chorewheel"
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, stack traces on warn
}

// CostPolicy converts the policy section into a cost.Policy.
func (p PolicyConfig) CostPolicy() cost.Policy {
	out := cost.Policy{
		Favor:         p.Favor,
		Neutral:       p.Neutral,
		Avoid:         p.Avoid,
		RepeatPenalty: p.RepeatPenalty,
		Unassignable:  p.Unassignable,
		NoiseSpan:     cost.DefaultNoiseSpan,
	}
	if p.NoiseSpan != nil {
		out.NoiseSpan = *p.NoiseSpan
	}

	return out
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads, defaults and validates the configuration at path.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Error if file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes, then applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "./data"
	}

	def := cost.DefaultPolicy()
	if cfg.Policy.Favor == 0 {
		cfg.Policy.Favor = def.Favor
	}
	if cfg.Policy.Neutral == 0 {
		cfg.Policy.Neutral = def.Neutral
	}
	if cfg.Policy.Avoid == 0 {
		cfg.Policy.Avoid = def.Avoid
	}
	if cfg.Policy.RepeatPenalty == 0 {
		cfg.Policy.RepeatPenalty = def.RepeatPenalty
	}
	if cfg.Policy.Unassignable == 0 {
		cfg.Policy.Unassignable = def.Unassignable
	}

	if cfg.Solver.Strategy == "" {
		cfg.Solver.Strategy = flow.BellmanFord.String()
	}
	if cfg.Round.Period == 0 {
		cfg.Round.Period = 7 * 24 * time.Hour
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "chorewheel.rounds"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "chorewheel"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func validate(cfg *Config) error {
	if err := cfg.Policy.CostPolicy().Validate(); err != nil {
		return fmt.Errorf("%w: policy: %w", ErrInvalid, err)
	}
	if _, ok := strategies[cfg.Solver.Strategy]; !ok {
		return fmt.Errorf("%w: unknown solver strategy %q", ErrInvalid, cfg.Solver.Strategy)
	}
	if cfg.Solver.MaxAugmentations < 0 {
		return fmt.Errorf("%w: solver.maxAugmentations must not be negative", ErrInvalid)
	}
	if cfg.Round.Period < 0 {
		return fmt.Errorf("%w: round.period must be positive", ErrInvalid)
	}
	if cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdownTimeout must be positive", ErrInvalid)
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka.brokers required when kafka is enabled", ErrInvalid)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, cfg.Log.Level)
	}

	return nil
}
