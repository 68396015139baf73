package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/samcharles93/mnist/internal/logger"
)

const (
	DefaultScale = 10

	captionHeight = 18
	captionPadX   = 4
)

// PNG plots a raster as a grayscale PNG, scaled up with nearest-neighbour
// sampling so every pixel stays a sharp square, with the title drawn in a
// strip above it.
type PNG struct {
	// Path is the output file. When empty a unique mnist-<uuid>.png is
	// created in Dir (or the system temp dir).
	Path  string
	Dir   string
	Scale int
	Log   logger.Logger

	// Written is the path of the last rendered file.
	Written string
}

func (p *PNG) Render(r Raster, title string) error {
	rows, cols := r.Rows(), r.Cols()
	if rows <= 0 || cols <= 0 {
		return errors.New("render: empty raster")
	}
	pix := r.U8()
	if len(pix) != rows*cols {
		return fmt.Errorf("render: %d pixels for %dx%d raster", len(pix), rows, cols)
	}
	scale := p.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	src := &image.Gray{Pix: pix, Stride: cols, Rect: image.Rect(0, 0, cols, rows)}
	canvas := Plot(src, scale, title)

	path, err := p.outputPath()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, canvas); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	p.Written = path
	if p.Log != nil {
		p.Log.Info("wrote plot", "path", path, "width", canvas.Bounds().Dx(), "height", canvas.Bounds().Dy())
	}
	return nil
}

func (p *PNG) outputPath() (string, error) {
	if p.Path != "" {
		if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
			return "", err
		}
		return filepath.Clean(p.Path), nil
	}
	dir := p.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "mnist-"+uuid.NewString()+".png"), nil
}

// Plot scales src by an integer factor and, when title is non-empty, puts it
// in a black caption strip above the image.
func Plot(src *image.Gray, scale int, title string) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx()*scale, b.Dy()*scale

	top := 0
	if title != "" {
		top = captionHeight
	}
	dst := image.NewGray(image.Rect(0, 0, w, h+top))
	draw.NearestNeighbor.Scale(dst, image.Rect(0, top, w, h+top), src, b, draw.Src, nil)

	if title != "" {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(color.Gray{Y: 255}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(captionPadX, captionHeight-5),
		}
		d.DrawString(title)
	}
	return dst
}
