package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for the client and the embedded
// API server.
type Config struct {
	// APIBase is the task API root, e.g. "http://localhost:5000/api".
	APIBase string `yaml:"api_base"`

	// DataDir holds the local preference database. Defaults to
	// ~/.taskhub.
	DataDir string `yaml:"data_dir"`

	// UndoWindow is how long a deferred mutation stays cancellable
	// before its remote commit fires.
	UndoWindow time.Duration `yaml:"undo_window"`

	// LogHTTP enables gateway call logging to stderr.
	LogHTTP bool `yaml:"log_http"`

	Server ServerConfig `yaml:"server"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	JWTSecret string `yaml:"jwt_secret"`
	DBPath    string `yaml:"db_path"`
	// TokenTTL bounds issued credentials; the original issued 7-day
	// tokens.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		APIBase:    "http://localhost:5000/api",
		UndoWindow: 4200 * time.Millisecond,
		Server: ServerConfig{
			Addr:     ":5000",
			TokenTTL: 7 * 24 * time.Hour,
		},
	}
}

// Load builds the effective configuration: defaults, then the optional
// YAML file at ~/.taskhub/config.yaml (or $TASKHUB_CONFIG), then
// environment overrides.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("TASKHUB_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".taskhub", "config.yaml")
		}
	}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".taskhub")
	}
	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = filepath.Join(cfg.DataDir, "server.db")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKHUB_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("TASKHUB_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TASKHUB_UNDO_WINDOW_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UndoWindow = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("TASKHUB_LOG_HTTP"); v != "" {
		cfg.LogHTTP, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TASKHUB_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TASKHUB_JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("TASKHUB_SERVER_DB"); v != "" {
		cfg.Server.DBPath = v
	}
}
