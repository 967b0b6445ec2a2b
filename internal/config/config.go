package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sandeepanandm7-code/invest-ai/internal/quote/yahoo"
)

type Fetch struct {
	Endpoint             string `mapstructure:"endpoint"`
	TimeoutSec           int    `mapstructure:"timeout_sec"`
	MaxAttempts          int    `mapstructure:"max_attempts"`
	RetryDelaySec        int    `mapstructure:"retry_delay_sec"`
	PacingSec            int    `mapstructure:"pacing_sec"`
	MaxRequestsPerMinute int    `mapstructure:"max_requests_per_minute"`
	Burst                int    `mapstructure:"burst"`
	CacheTTLSec          int    `mapstructure:"cache_ttl_sec"`
}

type Run struct {
	Concurrency int    `mapstructure:"concurrency"`
	Output      string `mapstructure:"output"`
}

type Config struct {
	Fetch   Fetch    `mapstructure:"fetch"`
	Run     Run      `mapstructure:"run"`
	Symbols []string `mapstructure:"symbols"`
}

// DefaultSymbols is the built-in watchlist: US megacaps, ADRs, financials,
// consumer, healthcare, and a few broad ETFs.
var DefaultSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "NFLX",
	"BABA", "BIDU", "JD", "NIO", "XPEV", "PDD",
	"INFY", "HDB", "IBN",
	"VALE", "PBR", "MELI", "NU",
	"JPM", "BAC", "WFC", "GS", "V", "MA", "PYPL",
	"WMT", "HD", "DIS", "NKE", "MCD", "SBUX", "COST", "TGT",
	"JNJ", "UNH", "PFE", "LLY", "TMO",
	"SPY", "QQQ", "DIA", "VOO", "VTI",
}

func Default() Config {
	return Config{
		Fetch: Fetch{
			Endpoint:      yahoo.DefaultEndpoint,
			TimeoutSec:    20,
			MaxAttempts:   3,
			RetryDelaySec: 2,
			PacingSec:     2,
			Burst:         1,
			CacheTTLSec:   300,
		},
		Run: Run{
			Concurrency: 1,
			Output:      "stock-analysis-data.json",
		},
		Symbols: DefaultSymbols,
	}
}

// Load reads configuration from path (YAML or JSON). If path is empty, a
// config.yaml in the working directory is used when present. INVEST_*
// environment variables override file values (INVEST_RUN_OUTPUT, ...).
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetDefault("fetch.endpoint", cfg.Fetch.Endpoint)
	v.SetDefault("fetch.timeout_sec", cfg.Fetch.TimeoutSec)
	v.SetDefault("fetch.max_attempts", cfg.Fetch.MaxAttempts)
	v.SetDefault("fetch.retry_delay_sec", cfg.Fetch.RetryDelaySec)
	v.SetDefault("fetch.pacing_sec", cfg.Fetch.PacingSec)
	v.SetDefault("fetch.max_requests_per_minute", cfg.Fetch.MaxRequestsPerMinute)
	v.SetDefault("fetch.burst", cfg.Fetch.Burst)
	v.SetDefault("fetch.cache_ttl_sec", cfg.Fetch.CacheTTLSec)
	v.SetDefault("run.concurrency", cfg.Run.Concurrency)
	v.SetDefault("run.output", cfg.Run.Output)
	v.SetDefault("symbols", cfg.Symbols)

	v.SetEnvPrefix("INVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadSymbols reads a watchlist YAML file. Two shapes are accepted: a plain
// top-level list (strings or maps with a "sym" key), or a map with an
// "items" list of the same entries.
func LoadSymbols(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbols %s: %w", path, err)
	}

	var entries []any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var alt struct {
			Items []any `yaml:"items"`
		}
		if err2 := yaml.Unmarshal(data, &alt); err2 != nil {
			return nil, fmt.Errorf("parse symbols %s: %w", path, err)
		}
		entries = alt.Items
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		switch val := e.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if s, ok := val["sym"].(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no symbols in %s", path)
	}
	return out, nil
}
