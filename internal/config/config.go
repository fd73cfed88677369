// Package config loads and saves the savr TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/savr/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all savr configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Log     LogConfig     `toml:"log"`
	TUI     TUIConfig     `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir         string `toml:"data_dir,omitempty"`
	DefaultCurrency string `toml:"default_currency"`
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// TUIConfig holds dashboard settings.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultCurrency: string(model.DefaultCurrency),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "savr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "savr")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir returns the directory holding the database. SAVR_DATA_DIR wins
// over the config file, which wins over the XDG default.
func DataDir(cfg Config) string {
	if dir := os.Getenv("SAVR_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "savr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "savr")
}

// DBPath returns the database file path.
func DBPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "savr.db")
}

// Currency returns the configured default currency, falling back to
// model.DefaultCurrency when unset or unsupported.
func (c Config) Currency() model.Currency {
	cur, err := model.ParseCurrency(c.General.DefaultCurrency)
	if err != nil {
		return model.DefaultCurrency
	}
	return cur
}
