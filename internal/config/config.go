package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Store backends accepted by store_backend.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the settings setlist reads at startup.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	ProbeInterval  time.Duration
	DataDir        string
	StoreBackend   string
	LogLevel       string
	LogFile        string
}

const (
	defaultConfigPath     = "~/.config/setlist/config.toml"
	defaultDataDir        = "~/.local/share/setlist"
	defaultAPIBaseURL     = "https://music-band-1.onrender.com"
	defaultRequestTimeout = 8 * time.Second
	defaultProbeInterval  = 30 * time.Second
	defaultLogLevel       = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		RequestTimeout: defaultRequestTimeout,
		ProbeInterval:  defaultProbeInterval,
		DataDir:        mustExpand(defaultDataDir),
		StoreBackend:   StoreFile,
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the setlist config, falling back to defaults when
// the file or individual fields are missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL     string `toml:"api_base_url"`
		RequestTimeout string `toml:"request_timeout"`
		ProbeInterval  string `toml:"probe_interval"`
		DataDir        string `toml:"data_dir"`
		StoreBackend   string `toml:"store_backend"`
		LogLevel       string `toml:"log_level"`
		LogFile        string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ProbeInterval, err = parseDuration("probe_interval", raw.ProbeInterval, defaultProbeInterval); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.StoreBackend)); v != "" {
		switch v {
		case StoreFile, StoreSQLite, StoreMemory:
			cfg.StoreBackend = v
		default:
			return Config{}, fmt.Errorf("parse config: store_backend %q: want file, sqlite or memory", v)
		}
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

// SQLitePath returns the database file used by the sqlite store backend.
func (c Config) SQLitePath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/setlist.db")
	}
	return filepath.Join(c.DataDir, "setlist.db")
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", field, value)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
