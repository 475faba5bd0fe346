package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cocosip/go-huffman-codec/artifact"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.CompressionTag() != artifact.CompressionNone {
		t.Errorf("expected compression=none, got %s", cfg.Compression)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected top_k=5, got %d", cfg.TopK)
	}
	if cfg.PreviewEnabled() {
		t.Error("expected previews disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_RequiresEnv(t *testing.T) {
	t.Setenv(EnvVar, "")

	if _, err := Load(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected %v, got %v", ErrNoConfig, err)
	}
}

func TestLoad_WithEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "huffgray.yaml")
	configContent := `
compression: zstd
workers: 4
top_k: 10
preview:
  max_width: 128
  max_height: 96
log:
  level: debug
  format: json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvVar, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CompressionTag() != artifact.CompressionZstd {
		t.Errorf("expected compression=zstd, got %s", cfg.Compression)
	}
	if cfg.Workers != 4 || cfg.TopK != 10 {
		t.Errorf("expected workers=4 top_k=10, got %d %d", cfg.Workers, cfg.TopK)
	}
	if !cfg.PreviewEnabled() || cfg.Preview.MaxWidth != 128 {
		t.Errorf("unexpected preview config %+v", cfg.Preview)
	}

	var buf bytes.Buffer
	cfg.Logger(&buf).Debug("probe", "key", "value")
	if !strings.Contains(buf.String(), `"msg":"probe"`) {
		t.Errorf("expected JSON debug output, got %q", buf.String())
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("workers: 2\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("expected workers=2, got %d", cfg.Workers)
	}
	if cfg.TopK != 5 || cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad compression", "compression: brotli", "compression"},
		{"negative workers", "workers: -1", "workers"},
		{"negative top_k", "top_k: -3", "top_k"},
		{"half preview", "preview:\n  max_width: 10", "preview"},
		{"bad level", "log:\n  level: verbose", "log.level"},
		{"bad format", "log:\n  format: xml", "log.format"},
		{"bad yaml", "workers: [", "parsing YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLogger_Level(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}
