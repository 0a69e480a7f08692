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

// Config holds the client settings.
type Config struct {
	APIURL         string
	ImageBase      string
	Locale         string
	Theme          string
	SearchDebounce time.Duration
	HeroInterval   time.Duration
	RequestTimeout time.Duration // zero leaves requests to the platform default
	RequestsPerSec float64       // zero is unlimited
	EpisodeRoute   string
	Log            LogConfig
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	File       string // empty discards logs
	Level      string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

const (
	defaultConfigPath   = "~/.config/cinevault/config.toml"
	defaultLogFile      = "~/.local/share/cinevault/cinevault.log"
	defaultAPIURL       = "http://localhost:5000"
	defaultImageBase    = "https://image.tmdb.org/t/p"
	defaultLocale       = "en-US"
	defaultTheme        = "Dracula"
	defaultDebounce     = 350 * time.Millisecond
	defaultHeroInterval = 6 * time.Second
	defaultEpisodeRoute = "query"
	defaultLogLevel     = "info"
	defaultMaxSizeMB    = 10
	defaultMaxBackups   = 3
)

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		ImageBase:      defaultImageBase,
		Locale:         defaultLocale,
		Theme:          defaultTheme,
		SearchDebounce: defaultDebounce,
		HeroInterval:   defaultHeroInterval,
		EpisodeRoute:   defaultEpisodeRoute,
		Log: LogConfig{
			File:       mustExpand(defaultLogFile),
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			Compress:   true,
		},
	}
}

type rawConfig struct {
	APIURL                string   `toml:"api_url"`
	ImageBase             string   `toml:"image_base"`
	Locale                string   `toml:"locale"`
	Theme                 string   `toml:"theme"`
	SearchDebounceMS      *int     `toml:"search_debounce_ms"`
	HeroIntervalSeconds   *int     `toml:"hero_interval_seconds"`
	RequestTimeoutSeconds *int     `toml:"request_timeout_seconds"`
	MaxRequestsPerSecond  *float64 `toml:"max_requests_per_second"`
	EpisodeRoute          string   `toml:"episode_route"`
	Log                   struct {
		File       *string `toml:"file"`
		Level      string  `toml:"level"`
		MaxSizeMB  *int    `toml:"max_size_mb"`
		MaxBackups *int    `toml:"max_backups"`
		Compress   *bool   `toml:"compress"`
	} `toml:"log"`
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Empty values keep their defaults.
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
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.APIURL, raw.APIURL)
	setString(&cfg.ImageBase, raw.ImageBase)
	setString(&cfg.Locale, raw.Locale)
	setString(&cfg.Theme, raw.Theme)
	setString(&cfg.EpisodeRoute, raw.EpisodeRoute)
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if v := raw.SearchDebounceMS; v != nil && *v >= 0 {
		cfg.SearchDebounce = time.Duration(*v) * time.Millisecond
	}
	if v := raw.HeroIntervalSeconds; v != nil && *v > 0 {
		cfg.HeroInterval = time.Duration(*v) * time.Second
	}
	if v := raw.RequestTimeoutSeconds; v != nil && *v > 0 {
		cfg.RequestTimeout = time.Duration(*v) * time.Second
	}
	if v := raw.MaxRequestsPerSecond; v != nil && *v > 0 {
		cfg.RequestsPerSec = *v
	}

	if v := raw.Log.File; v != nil {
		file := strings.TrimSpace(*v)
		if file == "" {
			cfg.Log.File = ""
		} else {
			cfg.Log.File = mustExpand(file)
		}
	}
	setString(&cfg.Log.Level, strings.ToLower(raw.Log.Level))
	if v := raw.Log.MaxSizeMB; v != nil && *v > 0 {
		cfg.Log.MaxSizeMB = *v
	}
	if v := raw.Log.MaxBackups; v != nil && *v >= 0 {
		cfg.Log.MaxBackups = *v
	}
	if v := raw.Log.Compress; v != nil {
		cfg.Log.Compress = *v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail far from the config file.
func (c Config) Validate() error {
	switch c.EpisodeRoute {
	case "query", "path":
	default:
		return fmt.Errorf("episode_route %q: want query or path", c.EpisodeRoute)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: want debug, info, warn or error", c.Log.Level)
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url %q: want an http or https URL", c.APIURL)
	}
	return nil
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
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
