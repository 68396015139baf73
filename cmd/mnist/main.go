package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mnist/internal/version"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "mnist",
		Usage:   "Inspect MNIST-family IDX datasets",
		Version: version.String(),
		Flags:   rootFlags(),
		Before:  setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			showCmd(),
			summaryCmd(),
			inspectCmd(),
			versionCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
