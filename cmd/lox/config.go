package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultMaxErrors   = 10
	defaultPrompt      = "> "
	defaultHistorySize = 100
)

// Config is the optional lox.toml file.
type Config struct {
	LogLevel string        `toml:"log_level"`
	Scanner  ScannerConfig `toml:"scanner"`
	REPL     REPLConfig    `toml:"repl"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type ScannerConfig struct {
	// MaxErrors caps lexical errors per input. Zero disables the cap.
	MaxErrors int `toml:"max_errors"`
}

type REPLConfig struct {
	Prompt      string `toml:"prompt"`
	HistorySize int    `toml:"history_size"`
	ShowTokens  bool   `toml:"show_tokens"`
}

// DefaultConfig is what an absent config file means.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Scanner.MaxErrors = defaultMaxErrors
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads the TOML file at path.
func LoadConfig(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if !md.IsDefined("scanner", "max_errors") {
		cfg.Scanner.MaxErrors = defaultMaxErrors
	}
	if cfg.Scanner.MaxErrors < 0 {
		return nil, fmt.Errorf("config %s: scanner.max_errors must not be negative", path)
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.Path = path
	return &cfg, nil
}

// ResolveConfig loads the explicit path when given, otherwise the first
// file found among $LOX_CONFIG, ./lox.toml and ~/.config/lox/config.toml.
// Finding none is not an error.
func ResolveConfig(explicit string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	if env := os.Getenv("LOX_CONFIG"); env != "" {
		return LoadConfig(env)
	}

	candidates := []string{"lox.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "lox", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return LoadConfig(p)
		}
	}
	return DefaultConfig(), nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = defaultPrompt
	}
	if c.REPL.HistorySize <= 0 {
		c.REPL.HistorySize = defaultHistorySize
	}
}

func parseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
