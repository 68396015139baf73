// Package render draws decoded images for people: ASCII art on a terminal or
// an upscaled grayscale PNG. Backends are picked by the CLI.
package render

import (
	"fmt"
	"io"

	"github.com/samcharles93/mnist/pkg/mnist"
)

// Raster is the pixel source a renderer needs. mnist.Image satisfies it.
type Raster interface {
	Rows() int
	Cols() int
	U8() []uint8
}

// Renderer draws one raster with a title.
type Renderer interface {
	Render(r Raster, title string) error
}

var (
	_ Raster   = mnist.Image{}
	_ Renderer = (*ASCII)(nil)
	_ Renderer = (*PNG)(nil)
)

// ASCII writes the title line followed by the glyph rendering.
type ASCII struct {
	W io.Writer
}

func (a *ASCII) Render(r Raster, title string) error {
	if title != "" {
		if _, err := fmt.Fprintln(a.W, title); err != nil {
			return err
		}
	}
	_, err := io.WriteString(a.W, mnist.ASCII(r.U8(), r.Cols()))
	return err
}
