package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mnist/internal/logger"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: $XDG_CONFIG_HOME/mnist/config.yaml)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func dataDirFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "data-dir",
		Aliases:     []string{"d"},
		Usage:       "directory containing the *-idx3-ubyte and *-idx1-ubyte files (or set " + envDataDir + ")",
		Destination: dst,
	}
}

// setup loads the config file and installs the logger before any command runs.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(configPath(configFile))
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	applyLogConfig(cmd, cfg)

	level := logger.ParseLevel(logLevel)
	if debug {
		level = logger.ParseLevel("debug")
	}
	log, err := logger.ForFormat(errWriter(cmd), logFormat, level)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	ctx = logger.WithContext(ctx, log)
	return withConfig(ctx, cfg), nil
}

// outWriter and errWriter honour writers set on the root command so tests can
// capture output.
func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
