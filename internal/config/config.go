// Package config loads the notes settings from an optional YAML file,
// environment variables, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/vibrant-notes/internal/persist"
)

// EnvPrefix prefixes every environment override, e.g. VIBRANT_NOTES_STORAGE_BACKEND.
const EnvPrefix = "VIBRANT_NOTES"

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config is the full settings tree.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Board   BoardConfig   `mapstructure:"board" yaml:"board"`
	Notes   NotesConfig   `mapstructure:"notes" yaml:"notes"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig selects where the note blob lives.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	Key     string `mapstructure:"key" yaml:"key"`
}

// BoardConfig tunes the workflow board.
type BoardConfig struct {
	Celebration time.Duration `mapstructure:"celebration" yaml:"celebration"`
}

// NotesConfig controls first-run behaviour and day grouping.
type NotesConfig struct {
	Seed     bool   `mapstructure:"seed" yaml:"seed"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultDir returns ~/.vibrant-notes.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vibrant-notes")
}

// DefaultConfigPath returns ~/.config/vibrant-notes/config.yaml.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vibrant-notes", "config.yaml")
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(DefaultDir(), "notes.db"),
			Key:     persist.DefaultKey,
		},
		Board: BoardConfig{Celebration: 2 * time.Second},
		Notes: NotesConfig{Seed: true, Timezone: "Local"},
		Log:   LogConfig{Level: "warn", Format: "text"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("board.celebration", d.Board.Celebration)
	v.SetDefault("notes.seed", d.Notes.Seed)
	v.SetDefault("notes.timezone", d.Notes.Timezone)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads path (or the default location when path is empty). A missing
// file is not an error; defaults and environment overrides still apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || explicit {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendSQLite, BackendFile, c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path is required")
	}
	if c.Board.Celebration < 0 {
		return fmt.Errorf("board.celebration must not be negative, got %s", c.Board.Celebration)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves notes.timezone. Empty or "Local" means the system zone.
func (c Config) Location() (*time.Location, error) {
	tz := c.Notes.Timezone
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("notes.timezone: %w", err)
	}
	return loc, nil
}

// WriteDefault writes the built-in settings to path as YAML. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg := Default()
	out := map[string]any{
		"storage": cfg.Storage,
		"board":   map[string]string{"celebration": cfg.Board.Celebration.String()},
		"notes":   cfg.Notes,
		"log":     cfg.Log,
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}
