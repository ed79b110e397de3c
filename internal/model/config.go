package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig locates the SQLite record store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig selects the logger mode ("dev" or "prod").
type LogConfig struct {
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// UserConfig names the authenticated user the CLI acts on behalf of.
type UserConfig struct {
	ID string `mapstructure:"id" yaml:"id"`
}

// TimelineConfig holds paging limits for timeline reads.
type TimelineConfig struct {
	DefaultLimit int `mapstructure:"default_limit" yaml:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit" yaml:"max_limit"`
}

// TodosConfig holds paging limits for todo listings.
type TodosConfig struct {
	DefaultLimit int `mapstructure:"default_limit" yaml:"default_limit"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	User     UserConfig     `mapstructure:"user" yaml:"user"`
	Timeline TimelineConfig `mapstructure:"timeline" yaml:"timeline"`
	Todos    TodosConfig    `mapstructure:"todos" yaml:"todos"`
}

// DefaultConfigPath returns ~/.config/todojournal/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todojournal", "config.yaml")
}

// DefaultDatabasePath returns ~/.local/share/todojournal/journal.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "journal.db")
	}
	return filepath.Join(home, ".local", "share", "todojournal", "journal.db")
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: DefaultDatabasePath()},
		Log:      LogConfig{Mode: "dev"},
		User:     UserConfig{ID: "local"},
		Timeline: TimelineConfig{DefaultLimit: 50, MaxLimit: 200},
		Todos:    TodosConfig{DefaultLimit: 100},
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultAppConfig()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("user.id", d.User.ID)
	v.SetDefault("timeline.default_limit", d.Timeline.DefaultLimit)
	v.SetDefault("timeline.max_limit", d.Timeline.MaxLimit)
	v.SetDefault("todos.default_limit", d.Todos.DefaultLimit)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with TODOJOURNAL_ override file values
// (e.g. TODOJOURNAL_USER_ID). A missing file yields the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("todojournal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the services cannot run with.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.User.ID) == "" {
		return errors.New("user.id must not be empty")
	}
	if c.Timeline.DefaultLimit <= 0 || c.Timeline.MaxLimit <= 0 {
		return errors.New("timeline limits must be positive")
	}
	if c.Timeline.DefaultLimit > c.Timeline.MaxLimit {
		return fmt.Errorf("timeline.default_limit %d exceeds timeline.max_limit %d",
			c.Timeline.DefaultLimit, c.Timeline.MaxLimit)
	}
	if c.Todos.DefaultLimit <= 0 {
		return errors.New("todos.default_limit must be positive")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("user", cfg.User)
	v.Set("timeline", cfg.Timeline)
	v.Set("todos", cfg.Todos)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
