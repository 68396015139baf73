package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mnist/internal/logger"
	"github.com/samcharles93/mnist/pkg/idx"
)

type inspectReport struct {
	Path       string   `json:"path"`
	Size       int64    `json:"size"`
	Magic      string   `json:"magic"`
	Type       string   `json:"type"`
	Dims       []uint32 `json:"dims"`
	Records    int      `json:"records"`
	RecordSize int      `json:"record_size"`
	Trailing   int      `json:"trailing_bytes"`
}

func inspectFile(path string) (inspectReport, error) {
	st, err := os.Stat(path)
	if err != nil {
		return inspectReport{}, err
	}
	f, err := idx.Open(path)
	if err != nil {
		return inspectReport{}, err
	}
	defer func() { _ = f.Close() }()

	m := f.Header.Magic()
	return inspectReport{
		Path:       path,
		Size:       st.Size(),
		Magic:      fmt.Sprintf("%02x%02x%02x%02x", m[0], m[1], m[2], m[3]),
		Type:       f.Header.Type.String(),
		Dims:       f.Header.Dims,
		Records:    f.Len(),
		RecordSize: f.RecordSize,
		Trailing:   f.Trailing,
	}, nil
}

func printInspect(w io.Writer, r inspectReport) {
	_, _ = fmt.Fprintf(w, "IDX Inspect: %s\n", r.Path)
	_, _ = fmt.Fprintf(w, "File:        %s (%s)\n", filepath.Base(r.Path), formatBytes(r.Size))
	_, _ = fmt.Fprintf(w, "Magic:       0x%s\n", r.Magic)
	_, _ = fmt.Fprintf(w, "Type:        %s\n", r.Type)
	_, _ = fmt.Fprintf(w, "Dims:        %v\n", r.Dims)
	_, _ = fmt.Fprintf(w, "Records:     %d x %d bytes\n", r.Records, r.RecordSize)
	if r.Trailing > 0 {
		_, _ = fmt.Fprintf(w, "Trailing:    %d bytes (ignored)\n", r.Trailing)
	}
}

func inspectCmd() *cli.Command {
	var (
		path   string
		asJSON bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Decode a single IDX file and print its header",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to an uncompressed IDX file",
				Destination: &path,
				Required:    true,
			},
			&cli.BoolFlag{Name: "json", Usage: "emit JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			r, err := inspectFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: inspect %s: %v", path, err), 1)
			}
			if r.Trailing > 0 {
				logger.FromContext(ctx).Warn("ignoring trailing bytes after payload", "file", filepath.Base(path), "bytes", r.Trailing)
			}
			out := outWriter(c)
			if !asJSON {
				printInspect(out, r)
				return nil
			}
			b, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: encode json: %v", err), 1)
			}
			_, _ = fmt.Fprintln(out, string(b))
			return nil
		},
	}
}
