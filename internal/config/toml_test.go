package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[report]\ntop-emojis = 5\n\n[plot]\nbins = 8\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Report.TopEmojis == nil || *cfg.Report.TopEmojis != 5 {
		t.Fatalf("expected top-emojis 5, got %v", cfg.Report.TopEmojis)
	}
	if cfg.Plot.Bins == nil || *cfg.Plot.Bins != 8 {
		t.Fatalf("expected bins 8, got %v", cfg.Plot.Bins)
	}
	if cfg.Plot.Width != nil {
		t.Fatalf("expected unset width, got %v", *cfg.Plot.Width)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.Report.TopEmojis != nil || cfg.Plot.Bins != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[report\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
