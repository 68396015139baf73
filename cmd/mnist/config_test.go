package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "data_dir: /data/mnist\nsplit: test\nplot_dir: /tmp/plots\nplot_scale: 4\nlog_level: debug\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DataDir != "/data/mnist" || cfg.Split != "test" || cfg.PlotDir != "/tmp/plots" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.PlotScale == nil || *cfg.PlotScale != 4 {
		t.Fatalf("plot_scale: got %v", cfg.PlotScale)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("log settings: got %q %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigPathPrecedence(t *testing.T) {
	t.Setenv(envConfigFile, "/env/config.yaml")

	if got := configPath("/flag/config.yaml"); got != "/flag/config.yaml" {
		t.Fatalf("flag should win, got %q", got)
	}
	if got := configPath(""); got != "/env/config.yaml" {
		t.Fatalf("env should be used without a flag, got %q", got)
	}

	t.Setenv(envConfigFile, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := configPath(""); got != filepath.Join("/xdg", "mnist", "config.yaml") {
		t.Fatalf("default path: got %q", got)
	}
}
