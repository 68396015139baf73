package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigFile = "MNIST_CONFIG"

// Config is the optional config file (~/.config/mnist/config.yaml).
// Values only fill flags that were not set on the command line.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	Split     string `yaml:"split"`
	PlotDir   string `yaml:"plot_dir"`
	PlotScale *int   `yaml:"plot_scale"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(envConfigFile)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mnist", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyShowConfig fills show command variables from the config file.
func applyShowConfig(c *cli.Command, cfg Config, dataDir, split, plotDir *string, scale *int) {
	if cfg.DataDir != "" && !c.IsSet("data-dir") {
		*dataDir = cfg.DataDir
	}
	if cfg.Split != "" && !c.IsSet("split") {
		*split = cfg.Split
	}
	if cfg.PlotDir != "" && !c.IsSet("plot-dir") {
		*plotDir = cfg.PlotDir
	}
	if cfg.PlotScale != nil && !c.IsSet("scale") {
		*scale = *cfg.PlotScale
	}
}

type configKey struct{}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFromContext(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	return cfg
}
