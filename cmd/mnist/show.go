package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mnist/internal/logger"
	"github.com/samcharles93/mnist/internal/render"
	"github.com/samcharles93/mnist/pkg/mnist"
)

func showCmd() *cli.Command {
	var (
		dataDir   string
		splitName string
		index     int
		plot      bool
		plotOut   string
		plotDir   string
		scale     int
	)

	return &cli.Command{
		Name:  "show",
		Usage: "Print one image of a split as ASCII art, or plot it to a PNG",
		Flags: []cli.Flag{
			dataDirFlag(&dataDir),
			&cli.StringFlag{
				Name:        "split",
				Aliases:     []string{"s", "dataset"},
				Usage:       "train or test",
				Value:       "train",
				Destination: &splitName,
			},
			&cli.IntFlag{
				Name:        "index",
				Aliases:     []string{"i", "image-number"},
				Usage:       "image index within the split",
				Destination: &index,
			},
			&cli.BoolFlag{Name: "plot", Usage: "render a PNG instead of ASCII art", Destination: &plot},
			&cli.StringFlag{Name: "plot-out", Usage: "PNG output path (implies --plot)", Destination: &plotOut},
			&cli.StringFlag{Name: "plot-dir", Usage: "directory for generated PNG names (default: temp dir)", Destination: &plotDir},
			&cli.IntFlag{Name: "scale", Usage: "PNG pixels per image pixel", Value: render.DefaultScale, Destination: &scale},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)
			applyShowConfig(c, configFromContext(ctx), &dataDir, &splitName, &plotDir, &scale)

			dir, err := resolveDataDir(dataDir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			split, err := mnist.ParseSplit(splitName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			log.Debug("loading split", "dir", dir, "split", split.String())
			ds, err := mnist.LoadSplit(ctx, dir, split)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", split, err), 1)
			}

			out := outWriter(c)
			_, _ = fmt.Fprintf(out, "Loaded %d %s images (%dx%d) and %d labels from %s\n",
				ds.Len(), split, ds.Rows, ds.Cols, len(ds.Labels), dir)

			img, label, err := ds.At(index)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			title := fmt.Sprintf("--- Dataset: %s | Image #%d | Label: %d ---", split, index, label)

			var r render.Renderer
			var png *render.PNG
			if plot || plotOut != "" {
				png = &render.PNG{Path: plotOut, Dir: plotDir, Scale: scale, Log: log}
				r = png
				title = fmt.Sprintf("%s #%d label %d", split, index, label)
			} else {
				_, _ = fmt.Fprintln(out)
				r = &render.ASCII{W: out}
			}

			if err := r.Render(img, title); err != nil {
				return cli.Exit(fmt.Sprintf("error: render: %v", err), 1)
			}
			if png != nil {
				_, _ = fmt.Fprintf(out, "Plot written to %s\n", png.Written)
			}
			return nil
		},
	}
}
