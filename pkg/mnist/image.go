package mnist

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Label is the class byte paired with an image. Digit datasets use 0-9 but
// any byte value is accepted.
type Label uint8

// Image is an immutable row-major matrix of unsigned byte pixels.
type Image struct {
	rows, cols int
	pixels     []uint8
}

// NewImage copies pixels into a rows x cols image.
func NewImage(rows, cols int, pixels []uint8) (Image, error) {
	if rows < 0 || cols < 0 || len(pixels) != rows*cols {
		return Image{}, fmt.Errorf("%w: %d pixels for %dx%d image", ErrUnexpectedShape, len(pixels), rows, cols)
	}
	return Image{rows: rows, cols: cols, pixels: append([]uint8(nil), pixels...)}, nil
}

// ImageFromF64 rebuilds an image from normalized values. Values are clamped
// to [0, 1], scaled by 255 and rounded, so the output of F64 converts back
// to the same pixels.
func ImageFromF64(rows, cols int, values []float64) (Image, error) {
	if rows < 0 || cols < 0 || len(values) != rows*cols {
		return Image{}, fmt.Errorf("%w: %d values for %dx%d image", ErrUnexpectedShape, len(values), rows, cols)
	}
	px := make([]uint8, len(values))
	for i, v := range values {
		switch {
		case v <= 0 || math.IsNaN(v):
			px[i] = 0
		case v >= 1:
			px[i] = 255
		default:
			px[i] = uint8(math.Round(v * 255))
		}
	}
	return Image{rows: rows, cols: cols, pixels: px}, nil
}

func (img Image) Rows() int { return img.rows }
func (img Image) Cols() int { return img.cols }
func (img Image) Len() int  { return len(img.pixels) }

// At returns the pixel at row r, column c. Like a slice index, it panics if
// r or c is out of range.
func (img Image) At(r, c int) uint8 {
	if r < 0 || r >= img.rows || c < 0 || c >= img.cols {
		panic(fmt.Sprintf("mnist: pixel (%d, %d) out of range for %dx%d image", r, c, img.rows, img.cols))
	}
	return img.pixels[r*img.cols+c]
}

// Row returns a copy of pixel row r. It panics if r is out of range.
func (img Image) Row(r int) []uint8 {
	if r < 0 || r >= img.rows {
		panic(fmt.Sprintf("mnist: row %d out of range [0, %d)", r, img.rows))
	}
	start := r * img.cols
	return append([]uint8(nil), img.pixels[start:start+img.cols]...)
}

// U8 returns a copy of the raw pixels.
func (img Image) U8() []uint8 {
	return append([]uint8(nil), img.pixels...)
}

// F32 returns pixels divided by 255.
func (img Image) F32() []float32 {
	out := make([]float32, len(img.pixels))
	for i, p := range img.pixels {
		out[i] = float32(p) / 255
	}
	return out
}

// F64 returns pixels divided by 255.
func (img Image) F64() []float64 {
	out := make([]float64, len(img.pixels))
	for i, p := range img.pixels {
		out[i] = float64(p) / 255
	}
	return out
}

// Dense returns the normalized pixels as a rows x cols matrix.
func (img Image) Dense() *mat.Dense {
	if img.rows == 0 || img.cols == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(img.rows, img.cols, img.F64())
}

// Gray returns the pixels as a standard library grayscale raster.
func (img Image) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, img.cols, img.rows))
	for r := 0; r < img.rows; r++ {
		copy(g.Pix[r*g.Stride:r*g.Stride+img.cols], img.pixels[r*img.cols:(r+1)*img.cols])
	}
	return g
}

// String draws the image as ASCII art, one line per pixel row.
func (img Image) String() string {
	return ASCII(img.pixels, img.cols)
}
