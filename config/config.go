// Package config loads huffgray settings from a YAML file.
//
// The file is named by the --config flag or the HUFFGRAY_CONFIG
// environment variable. Values missing from the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cocosip/go-huffman-codec/artifact"
	"github.com/cocosip/go-huffman-codec/huffman"
)

// EnvVar names the environment variable holding the config file path
const EnvVar = "HUFFGRAY_CONFIG"

// ErrNoConfig is returned by Load when HUFFGRAY_CONFIG is not set
var ErrNoConfig = errors.New(EnvVar + " environment variable not set")

// Config is the complete huffgray configuration.
type Config struct {
	// Compression is the container envelope: none, lz4 or zstd.
	// Default: none
	Compression string `yaml:"compression"`

	// Workers bounds the goroutines counting frequencies. 0 uses one per CPU.
	Workers int `yaml:"workers"`

	// TopK is how many of the most frequent values reports list.
	// Default: 5
	TopK int `yaml:"top_k"`

	// Preview configures the thumbnails written next to decompressed images.
	Preview PreviewConfig `yaml:"preview"`

	// Log configures diagnostic output on stderr.
	Log LogConfig `yaml:"log"`
}

// PreviewConfig bounds preview thumbnails. Zero disables previews.
type PreviewConfig struct {
	MaxWidth  uint `yaml:"max_width"`
	MaxHeight uint `yaml:"max_height"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Compression: artifact.CompressionNone.String(),
		Workers:     0,
		TopK:        huffman.DefaultTopK,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the file named by HUFFGRAY_CONFIG.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, ErrNoConfig
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := artifact.ParseCompressionTag(c.Compression); err != nil {
		errs = append(errs, fmt.Errorf("compression: %w", err))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.TopK < 0 {
		errs = append(errs, fmt.Errorf("top_k must not be negative, got %d", c.TopK))
	}
	if (c.Preview.MaxWidth == 0) != (c.Preview.MaxHeight == 0) {
		errs = append(errs, fmt.Errorf("preview.max_width and preview.max_height must be set together"))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CompressionTag returns the parsed compression setting
func (c *Config) CompressionTag() artifact.CompressionTag {
	tag, _ := artifact.ParseCompressionTag(c.Compression)
	return tag
}

// PreviewEnabled reports whether previews should be written
func (c *Config) PreviewEnabled() bool {
	return c.Preview.MaxWidth > 0 && c.Preview.MaxHeight > 0
}

// Logger builds a logger writing to w with the configured level and format
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
