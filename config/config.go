package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Bot        Bot              `yaml:"bot"`
	API        APIConfig        `yaml:"api"`
	Simulation SimulationConfig `yaml:"simulation"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// Bot holds the operator-supplied trading parameters. It is the unit the
// operator replaces wholesale through Engine.Configure; immutable within a
// cycle.
type Bot struct {
	PolymarketAPIKey     string  `yaml:"polymarket_api_key"`
	PolymarketSecret     string  `yaml:"polymarket_secret"`
	PolymarketPassphrase string  `yaml:"polymarket_passphrase"`
	AnthropicAPIKey      string  `yaml:"anthropic_api_key"`
	AnthropicModel       string  `yaml:"anthropic_model"`
	InitialBalance       float64 `yaml:"initial_balance"`
	MaxBetSize           float64 `yaml:"max_bet_size"`
	MinEdgeThreshold     float64 `yaml:"min_edge_threshold"`
	MaxConcurrentOrders  uint32  `yaml:"max_concurrent_orders"` // advisory, not enforced by the cycle
	ScanIntervalSecs     uint32  `yaml:"scan_interval_secs"`
	AutoTrading          bool    `yaml:"auto_trading"` // gate on simulated order placement
	SurvivalMode         bool    `yaml:"survival_mode"`
}

// APIConfig contains the base URLs of the external services.
type APIConfig struct {
	GammaBase     string `yaml:"gamma_base"`
	AnthropicBase string `yaml:"anthropic_base"`
}

// SimulationConfig tunes the simulated settlement draw. The defaults target
// a ~65% simulated win rate; they are simulation parameters, not domain
// truth.
type SimulationConfig struct {
	WinThreshold     float64 `yaml:"win_threshold"`      // draw above this wins (~65% at 0.35)
	PartialWinFactor float64 `yaml:"partial_win_factor"` // fraction of the full payout credited on a win
	LossFactor       float64 `yaml:"loss_factor"`        // fraction of size lost on a loss
}

// StorageConfig controls the cycle journal.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, ":memory:", or empty to disable the journal
}

// LogConfig controls log format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config file and the .env file if present. Environment
// variables override the corresponding YAML keys, so credentials never have
// to live in the config file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration the engine boots with before the
// operator configures anything.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Bot.SurvivalMode = true
	return cfg
}

// ScanInterval returns the cycle interval as a time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Bot.ScanIntervalSecs) * time.Second
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POLYMARKET_API_KEY"); v != "" {
		cfg.Bot.PolymarketAPIKey = v
	}
	if v := os.Getenv("POLYMARKET_SECRET"); v != "" {
		cfg.Bot.PolymarketSecret = v
	}
	if v := os.Getenv("POLYMARKET_PASSPHRASE"); v != "" {
		cfg.Bot.PolymarketPassphrase = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Bot.AnthropicAPIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Bot.AnthropicModel == "" {
		cfg.Bot.AnthropicModel = "claude-sonnet-4-20250514"
	}
	if cfg.Bot.InitialBalance <= 0 {
		cfg.Bot.InitialBalance = 50.0
	}
	if cfg.Bot.MaxBetSize <= 0 {
		cfg.Bot.MaxBetSize = 200.0
	}
	if cfg.Bot.MinEdgeThreshold <= 0 {
		cfg.Bot.MinEdgeThreshold = 0.30
	}
	if cfg.Bot.MaxConcurrentOrders == 0 {
		cfg.Bot.MaxConcurrentOrders = 5
	}
	if cfg.Bot.ScanIntervalSecs == 0 {
		cfg.Bot.ScanIntervalSecs = 60
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.API.AnthropicBase == "" {
		cfg.API.AnthropicBase = "https://api.anthropic.com"
	}
	if cfg.Simulation.WinThreshold <= 0 {
		cfg.Simulation.WinThreshold = 0.35
	}
	if cfg.Simulation.PartialWinFactor <= 0 {
		cfg.Simulation.PartialWinFactor = 0.3
	}
	if cfg.Simulation.LossFactor <= 0 {
		cfg.Simulation.LossFactor = 0.7
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
