// Package config loads process settings from the environment, an optional
// .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"vitals/internal/domain"
	"vitals/internal/insight"
)

// Environment variables read by FromEnv.
const (
	EnvAddr        = "ADDR"
	EnvDatabaseURL = "DATABASE_URL"
	EnvConfigFile  = "VITALS_CONFIG"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvDevUser     = "DEV_USER"
)

// Config is the resolved process configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	DevUser     string
	LogLevel    string
	LogFormat   string

	File FileConfig
}

// FileConfig is the YAML part of the configuration.
type FileConfig struct {
	// Timezone names the IANA zone day buckets are aligned to. Empty means
	// the process's local zone.
	Timezone         string             `yaml:"timezone"`
	Windows          []int              `yaml:"windows"`
	FetchConcurrency int                `yaml:"fetch_concurrency"`
	Insights         insight.Thresholds `yaml:"insights"`
	DevUser          string             `yaml:"dev_user"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		File: FileConfig{
			Windows:  append([]int(nil), domain.DefaultWindowDays...),
			Insights: insight.DefaultThresholds(),
		},
	}
}

// Load reads .env from the working directory when present, then resolves the
// configuration from the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves the configuration using getenv. Environment values take
// precedence over the YAML file.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	if path := getenv(EnvConfigFile); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.DevUser = cfg.File.DevUser

	overlay := map[string]*string{
		EnvAddr:        &cfg.Addr,
		EnvDatabaseURL: &cfg.DatabaseURL,
		EnvDevUser:     &cfg.DevUser,
		EnvLogLevel:    &cfg.LogLevel,
		EnvLogFormat:   &cfg.LogFormat,
	}
	for key, dst := range overlay {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c.File); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if len(c.File.Windows) == 0 {
		return errors.New("windows must list at least one length")
	}
	for _, d := range c.File.Windows {
		if d <= 0 {
			return fmt.Errorf("windows: length must be positive, got %d", d)
		}
	}
	if c.File.FetchConcurrency < 0 {
		return fmt.Errorf("fetch_concurrency must not be negative, got %d", c.File.FetchConcurrency)
	}
	if err := c.File.Insights.Validate(); err != nil {
		return fmt.Errorf("insights: %w", err)
	}
	return nil
}

// Location returns the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.File.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.File.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.File.Timezone, err)
	}
	return loc, nil
}

// WindowPolicy returns the allowed dashboard windows in the configured zone.
func (c *Config) WindowPolicy() (domain.WindowPolicy, error) {
	loc, err := c.Location()
	if err != nil {
		return domain.WindowPolicy{}, err
	}
	return domain.WindowPolicy{Allowed: c.File.Windows, Location: loc}, nil
}

// NewLogger builds a slog logger writing to w at the configured level and
// format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
