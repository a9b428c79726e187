package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the server settings. Flags win over their defaults;
// environment variables win over flags.
type Config struct {
	Addr          string
	AllowOrigins  string
	DataDir       string
	LogLevel      string
	MatchInterval time.Duration
}

// Load parses args (without the program name) and applies env overrides.
func Load(args []string) (Config, error) {
	return load(args, os.Getenv)
}

func load(args []string, getenv func(string) string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", ":3000", "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", "http://localhost:5173", "comma separated CORS origins")
	fs.StringVar(&cfg.DataDir, "data-dir", "./data/saves", "saved game directory (empty = in memory)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level")
	fs.DurationVar(&cfg.MatchInterval, "match-interval", time.Second, "matchmaking tick")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if v := getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("ALLOW_ORIGINS"); v != "" {
		cfg.AllowOrigins = v
	}
	if v := getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("MATCH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("MATCH_INTERVAL: %w", err)
		}
		cfg.MatchInterval = d
	}

	if cfg.MatchInterval <= 0 {
		return Config{}, fmt.Errorf("match interval must be positive, got %s", cfg.MatchInterval)
	}
	cfg.AllowOrigins = strings.TrimSpace(cfg.AllowOrigins)
	return cfg, nil
}
