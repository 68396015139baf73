package mnist

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Split names a partition of the dataset.
type Split int

const (
	Train Split = iota
	Test
)

func (s Split) String() string {
	switch s {
	case Train:
		return "train"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("split(%d)", int(s))
	}
}

// ParseSplit accepts "train" and "test" ("t10k" is an alias for test).
func ParseSplit(s string) (Split, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "train":
		return Train, nil
	case "test", "t10k":
		return Test, nil
	default:
		return 0, fmt.Errorf("%w: %q (want train or test)", ErrUnknownSplit, s)
	}
}

// Dataset pairs the images of one split with their labels.
// len(Images) == len(Labels) always holds.
type Dataset struct {
	Split  Split
	Rows   int
	Cols   int
	Images []Image
	Labels []Label
}

func (d *Dataset) Len() int {
	return len(d.Images)
}

// At returns the i-th image and its label.
func (d *Dataset) At(i int) (Image, Label, error) {
	if i < 0 || i >= len(d.Images) {
		return Image{}, 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(d.Images))
	}
	return d.Images[i], d.Labels[i], nil
}

// Matrix stacks every image's normalized pixels as one row of an
// N x (Rows*Cols) matrix.
func (d *Dataset) Matrix() *mat.Dense {
	n, width := len(d.Images), d.Rows*d.Cols
	if n == 0 || width == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(n, width, nil)
	for i, img := range d.Images {
		m.SetRow(i, img.F64())
	}
	return m
}

// LabelCounts tallies how many records carry each label.
func (d *Dataset) LabelCounts() map[Label]int {
	counts := make(map[Label]int)
	for _, l := range d.Labels {
		counts[l]++
	}
	return counts
}

// Set holds both splits of a dataset directory.
type Set struct {
	Train *Dataset
	Test  *Dataset
}

// ForSplit returns the dataset for split.
func (s *Set) ForSplit(split Split) (*Dataset, error) {
	switch split {
	case Train:
		return s.Train, nil
	case Test:
		return s.Test, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSplit, split)
	}
}
