package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds viewer settings
type Config struct {
	DB    DBConfig    `yaml:"db"`
	View  ViewConfig  `yaml:"view"`
	Log   LogConfig   `yaml:"log"`
	Cache CacheConfig `yaml:"cache"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type ViewConfig struct {
	PageSize int `yaml:"page_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty = astrolog.log next to the database
}

type CacheConfig struct {
	Disabled bool `yaml:"disabled"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DB:   DBConfig{Path: "astrolog.db"},
		View: ViewConfig{PageSize: 20},
		Log:  LogConfig{Level: "info"},
	}
}

// LoadDotEnv loads a .env file if it exists (silently ignored if not found)
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order. path may be empty, in which case
// ASTROLOG_CONFIG is consulted.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("ASTROLOG_CONFIG")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("ASTROLOG_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if sizeStr := os.Getenv("ASTROLOG_PAGE_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ASTROLOG_PAGE_SIZE: %w", err)
		}
		cfg.View.PageSize = size
	}
	if level := os.Getenv("ASTROLOG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("ASTROLOG_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	if v := os.Getenv("ASTROLOG_NO_CACHE"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ASTROLOG_NO_CACHE: %w", err)
		}
		cfg.Cache.Disabled = disabled
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted sensibly
func (c Config) Validate() error {
	if c.View.PageSize < 1 {
		return fmt.Errorf("page size must be at least 1, got %d", c.View.PageSize)
	}
	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// LogPath returns where the viewer writes its log file
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(c.DB.Path), "astrolog.log")
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
