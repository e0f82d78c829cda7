// Package config loads service configuration in three layers: built-in
// defaults, a YAML config file, and ASHA_* environment variables. Later
// layers win. Secrets (API keys, tokens) are accepted from the environment
// only and never read from or written to the config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Classifier ClassifierConfig
	Telephony  TelephonyConfig
	Referral   ReferralConfig
	Admin      AdminConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

type ClassifierConfig struct {
	// OpenAIAPIKey enables the remote classifier. Empty means rules only.
	OpenAIAPIKey   string
	Model          string
	TimeoutSeconds int
	// RulesOnly disables the remote classifier even when a key is set.
	RulesOnly bool
}

type TelephonyConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Configured reports whether outbound calling credentials are present.
// Without them the telephony client runs in simulation mode.
func (t TelephonyConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

type ReferralConfig struct {
	// Centers lists healthcare centers as "Name:phone,Name:phone".
	// Empty means the built-in defaults.
	Centers string
}

type AdminConfig struct {
	// Token guards the mutating dashboard endpoints. Empty disables them.
	Token string
}

type LogConfig struct {
	Level string
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 3000,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Classifier: ClassifierConfig{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "asha")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "asha")
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "asha", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "asha", "config.yaml")
}

// Load reads configuration from the default config file location,
// then applies ASHA_* environment overrides. A missing config file is not
// an error; defaults plus environment are enough to run.
func Load() (Config, error) {
	return LoadFile(defaultConfigPath())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer entirely.
func LoadFile(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		b, err := openFileBackend(path)
		if err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
		if err := applyBackend(&cfg, b); err != nil {
			return Config{}, err
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if cfg.Classifier.TimeoutSeconds <= 0 {
		return Config{}, fmt.Errorf("invalid classifier timeout %d", cfg.Classifier.TimeoutSeconds)
	}

	return cfg, nil
}
