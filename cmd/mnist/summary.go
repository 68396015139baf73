package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mnist/pkg/mnist"
)

type labelCount struct {
	Label int `json:"label"`
	Count int `json:"count"`
}

type splitSummary struct {
	Split  string       `json:"split"`
	Images int          `json:"images"`
	Labels int          `json:"labels"`
	Rows   int          `json:"rows"`
	Cols   int          `json:"cols"`
	Counts []labelCount `json:"label_counts"`
}

type datasetSummary struct {
	Dir    string         `json:"dir"`
	Splits []splitSummary `json:"splits"`
}

func summarize(dir string, set *mnist.Set) datasetSummary {
	s := datasetSummary{Dir: dir}
	for _, ds := range []*mnist.Dataset{set.Train, set.Test} {
		counts := make([]labelCount, 0, 10)
		for l, n := range ds.LabelCounts() {
			counts = append(counts, labelCount{Label: int(l), Count: n})
		}
		sort.Slice(counts, func(i, j int) bool { return counts[i].Label < counts[j].Label })
		s.Splits = append(s.Splits, splitSummary{
			Split:  ds.Split.String(),
			Images: ds.Len(),
			Labels: len(ds.Labels),
			Rows:   ds.Rows,
			Cols:   ds.Cols,
			Counts: counts,
		})
	}
	return s
}

func printSummary(w io.Writer, s datasetSummary) {
	_, _ = fmt.Fprintf(w, "Dataset: %s\n", s.Dir)
	for _, sp := range s.Splits {
		_, _ = fmt.Fprintf(w, "\n%s: %d images (%dx%d), %d labels\n", sp.Split, sp.Images, sp.Rows, sp.Cols, sp.Labels)
		for _, lc := range sp.Counts {
			_, _ = fmt.Fprintf(w, "  label %3d: %d\n", lc.Label, lc.Count)
		}
	}
}

func summaryCmd() *cli.Command {
	var (
		dataDir string
		asJSON  bool
	)

	return &cli.Command{
		Name:  "summary",
		Usage: "Load both splits and print record counts and label distribution",
		Flags: []cli.Flag{
			dataDirFlag(&dataDir),
			&cli.BoolFlag{Name: "json", Usage: "emit JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := configFromContext(ctx)
			if cfg.DataDir != "" && !c.IsSet("data-dir") {
				dataDir = cfg.DataDir
			}
			dir, err := resolveDataDir(dataDir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			set, err := mnist.Load(ctx, dir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load: %v", err), 1)
			}

			s := summarize(dir, set)
			out := outWriter(c)
			if !asJSON {
				printSummary(out, s)
				return nil
			}
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: encode json: %v", err), 1)
			}
			_, _ = fmt.Fprintln(out, string(b))
			return nil
		},
	}
}
