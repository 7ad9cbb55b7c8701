// Package config loads the YAML configuration shared by the tools, with
// environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvMusicDir        = "UTA_MUSIC_DIR"
	EnvHTTPAddr        = "UTA_HTTP_ADDR"
	EnvLogLevel        = "UTA_LOG_LEVEL"
	EnvScanConcurrency = "UTA_SCAN_CONCURRENCY"
	EnvRealtime        = "UTA_REALTIME"
)

// Config represents the application configuration
type Config struct {
	Library  LibraryConfig  `yaml:"library"`
	Server   ServerConfig   `yaml:"server"`
	Playback PlaybackConfig `yaml:"playback"`
	Scan     ScanConfig     `yaml:"scan"`

	// debug, info, warn or error
	LogLevel string `yaml:"log_level"`
}

// LibraryConfig describes where tracks come from
type LibraryConfig struct {
	Directory  string   `yaml:"directory"`
	Extensions []string `yaml:"extensions"`
	Recursive  bool     `yaml:"recursive"`
}

// ServerConfig represents the now-playing HTTP server
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// PlaybackConfig represents playback settings
type PlaybackConfig struct {
	// Realtime paces output at the stream's byte rate.
	Realtime       bool   `yaml:"realtime"`
	Loop           bool   `yaml:"loop"`
	FallbackArtist string `yaml:"fallback_artist"`
	FallbackAlbum  string `yaml:"fallback_album"`
	// Seconds between elapsed-time pushes to display clients.
	TickSeconds float64 `yaml:"tick_seconds"`
}

// ScanConfig represents library scan settings
type ScanConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Directory:  "./music",
			Extensions: []string{".mp3", ".flac", ".wav"},
			Recursive:  true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Playback: PlaybackConfig{
			Realtime:       true,
			FallbackArtist: "Unknown Artist",
			FallbackAlbum:  "Unknown Album",
			TickSeconds:    1,
		},
		Scan: ScanConfig{
			Concurrency: 4,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from UTA_* environment variables.
func (c *Config) ApplyEnv() {
	c.Library.Directory = envStr(EnvMusicDir, c.Library.Directory)
	c.Server.Addr = envStr(EnvHTTPAddr, c.Server.Addr)
	c.LogLevel = envStr(EnvLogLevel, c.LogLevel)
	c.Scan.Concurrency = envInt(EnvScanConcurrency, c.Scan.Concurrency)
	c.Playback.Realtime = envBool(EnvRealtime, c.Playback.Realtime)
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Library.Directory == "" {
		return fmt.Errorf("library.directory must be set")
	}
	if c.Scan.Concurrency < 1 {
		return fmt.Errorf("scan.concurrency must be at least 1, got %d", c.Scan.Concurrency)
	}
	if c.Playback.TickSeconds <= 0 {
		return fmt.Errorf("playback.tick_seconds must be positive, got %g", c.Playback.TickSeconds)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// HasExtension reports whether path ends in one of the library extensions,
// ignoring case.
func (c *Config) HasExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.Library.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
