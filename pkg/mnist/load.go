// Package mnist loads MNIST-family datasets stored as uncompressed IDX files.
package mnist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samcharles93/mnist/internal/logger"
	"github.com/samcharles93/mnist/pkg/idx"
)

// Canonical file names. The first name of each list is the one reported when
// nothing matches; later names are accepted alternatives.
var splitFiles = map[Split]struct {
	images []string
	labels []string
}{
	Train: {
		images: []string{"train-images-idx3-ubyte"},
		labels: []string{"train-labels-idx1-ubyte"},
	},
	Test: {
		images: []string{"t10k-images-idx3-ubyte", "test-images-idx3-ubyte"},
		labels: []string{"t10k-labels-idx1-ubyte", "test-labels-idx1-ubyte"},
	},
}

type splitPaths struct {
	images string
	labels string
}

// Files returns the canonical images and labels paths for split inside dir.
func Files(dir string, split Split) (images, labels string, err error) {
	names, ok := splitFiles[split]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownSplit, split)
	}
	return filepath.Join(dir, names.images[0]), filepath.Join(dir, names.labels[0]), nil
}

func resolveSplit(dir string, split Split) (splitPaths, error) {
	names, ok := splitFiles[split]
	if !ok {
		return splitPaths{}, fmt.Errorf("%w: %s", ErrUnknownSplit, split)
	}
	images, err := resolveFile(dir, names.images)
	if err != nil {
		return splitPaths{}, err
	}
	labels, err := resolveFile(dir, names.labels)
	if err != nil {
		return splitPaths{}, err
	}
	return splitPaths{images: images, labels: labels}, nil
}

func resolveFile(dir string, candidates []string) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		st, err := os.Stat(path)
		if err == nil {
			if st.IsDir() {
				return "", fmt.Errorf("%w: %s is a directory", ErrIO, path)
			}
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Join(dir, candidates[0]))
}

// Load reads both splits from dir. All four files must be present; nothing
// is returned if any of them fails to load.
func Load(ctx context.Context, dir string) (*Set, error) {
	train, err := resolveSplit(dir, Train)
	if err != nil {
		return nil, err
	}
	test, err := resolveSplit(dir, Test)
	if err != nil {
		return nil, err
	}

	trainSet, err := loadPaths(ctx, Train, train)
	if err != nil {
		return nil, err
	}
	testSet, err := loadPaths(ctx, Test, test)
	if err != nil {
		return nil, err
	}
	return &Set{Train: trainSet, Test: testSet}, nil
}

// LoadSplit reads the images and labels of one split from dir.
func LoadSplit(ctx context.Context, dir string, split Split) (*Dataset, error) {
	paths, err := resolveSplit(dir, split)
	if err != nil {
		return nil, err
	}
	return loadPaths(ctx, split, paths)
}

func loadPaths(ctx context.Context, split Split, paths splitPaths) (*Dataset, error) {
	log := logger.FromContext(ctx).With("split", split.String())

	images, rows, cols, err := readImages(log, paths.images)
	if err != nil {
		return nil, err
	}
	labels, err := readLabels(log, paths.labels)
	if err != nil {
		return nil, err
	}
	if len(images) != len(labels) {
		return nil, &CountMismatchError{Split: split, Images: len(images), Labels: len(labels)}
	}

	log.Debug("loaded split", "images", len(images), "rows", rows, "cols", cols)
	return &Dataset{
		Split:  split,
		Rows:   rows,
		Cols:   cols,
		Images: images,
		Labels: labels,
	}, nil
}

func readImages(log logger.Logger, path string) ([]Image, int, int, error) {
	f, err := openIDX(log, path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer func() { _ = f.Close() }()

	if d := len(f.Header.Dims); d != 3 {
		return nil, 0, 0, fmt.Errorf("%w: %s has %d dims, images need 3 (count, rows, cols)", ErrUnexpectedShape, path, d)
	}
	shape := f.Header.RecordShape()
	rows, cols := shape[0], shape[1]

	// One copy out of the mapping, shared by all images with capped slices.
	pixels := append([]uint8(nil), f.Payload()...)
	rs := f.RecordSize
	images := make([]Image, f.Len())
	for i := range images {
		images[i] = Image{
			rows:   rows,
			cols:   cols,
			pixels: pixels[i*rs : (i+1)*rs : (i+1)*rs],
		}
	}
	return images, rows, cols, nil
}

func readLabels(log logger.Logger, path string) ([]Label, error) {
	f, err := openIDX(log, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if d := len(f.Header.Dims); d != 1 {
		return nil, fmt.Errorf("%w: %s has %d dims, labels need 1 (count)", ErrUnexpectedShape, path, d)
	}
	labels := make([]Label, f.Len())
	for i, b := range f.Payload() {
		labels[i] = Label(b)
	}
	return labels, nil
}

func openIDX(log logger.Logger, path string) (*idx.File, error) {
	f, err := idx.Open(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	case idx.IsFormatError(err):
		return nil, fmt.Errorf("%s: %w", path, err)
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}

	if f.Trailing > 0 {
		log.Warn("ignoring trailing bytes after payload", "file", filepath.Base(path), "bytes", f.Trailing)
	}
	return f, nil
}
