package mnist

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNormalizedViews(t *testing.T) {
	t.Parallel()

	px := make([]uint8, 256)
	for i := range px {
		px[i] = uint8(i)
	}
	img, err := NewImage(16, 16, px)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}

	u8, f32, f64 := img.U8(), img.F32(), img.F64()
	if len(u8) != 256 || len(f32) != 256 || len(f64) != 256 {
		t.Fatalf("view lengths: u8 %d f32 %d f64 %d", len(u8), len(f32), len(f64))
	}
	for i := range u8 {
		want := float64(u8[i]) / 255.0
		if math.Abs(float64(f32[i])-want) > 1e-6 {
			t.Fatalf("f32[%d]: got %v want %v", i, f32[i], want)
		}
		if math.Abs(f64[i]-want) > 1e-12 {
			t.Fatalf("f64[%d]: got %v want %v", i, f64[i], want)
		}
	}
	if f64[255] != 1 || f64[0] != 0 {
		t.Fatalf("normalization endpoints: got %v and %v", f64[0], f64[255])
	}
}

func TestNormalizationIgnoresObservedMax(t *testing.T) {
	t.Parallel()

	img, err := NewImage(1, 2, []uint8{0, 51})
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	if got := img.F64()[1]; math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("expected 51/255 = 0.2, got %v", got)
	}
}

func TestImageIsImmutable(t *testing.T) {
	t.Parallel()

	src := []uint8{1, 2, 3, 4}
	img, err := NewImage(2, 2, src)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	src[0] = 99
	u8 := img.U8()
	u8[1] = 99
	row := img.Row(1)
	row[0] = 99
	if img.At(0, 0) != 1 || img.At(0, 1) != 2 || img.At(1, 0) != 3 {
		t.Fatalf("image mutated through a returned slice: %v", img.U8())
	}
}

func TestImageAccessorsPanicOutOfRange(t *testing.T) {
	t.Parallel()

	img, err := NewImage(2, 2, []uint8{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}

	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		fn()
	}
	// (0, 2) would land on row 1 of the flat buffer without a column check.
	mustPanic("At(0, 2)", func() { img.At(0, 2) })
	mustPanic("At(-1, 0)", func() { img.At(-1, 0) })
	mustPanic("At(2, 0)", func() { img.At(2, 0) })
	mustPanic("Row(2)", func() { img.Row(2) })
	mustPanic("Row(-1)", func() { img.Row(-1) })

	if got := img.At(1, 1); got != 4 {
		t.Fatalf("At(1, 1): got %d want 4", got)
	}
}

func TestNewImageShapeMismatch(t *testing.T) {
	t.Parallel()

	if _, err := NewImage(2, 2, []uint8{1, 2, 3}); !errors.Is(err, ErrUnexpectedShape) {
		t.Fatalf("expected ErrUnexpectedShape, got %v", err)
	}
	if _, err := ImageFromF64(2, 2, []float64{1}); !errors.Is(err, ErrUnexpectedShape) {
		t.Fatalf("expected ErrUnexpectedShape, got %v", err)
	}
}

func TestImageFromF64(t *testing.T) {
	t.Parallel()

	orig, err := NewImage(2, 3, []uint8{0, 1, 127, 128, 254, 255})
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	back, err := ImageFromF64(2, 3, orig.F64())
	if err != nil {
		t.Fatalf("ImageFromF64: %v", err)
	}
	if string(back.U8()) != string(orig.U8()) {
		t.Fatalf("round trip: got %v want %v", back.U8(), orig.U8())
	}

	clamped, err := ImageFromF64(1, 3, []float64{-0.5, 2, math.NaN()})
	if err != nil {
		t.Fatalf("ImageFromF64: %v", err)
	}
	if got := clamped.U8(); got[0] != 0 || got[1] != 255 || got[2] != 0 {
		t.Fatalf("clamping: got %v", got)
	}
}

func TestDenseAndGray(t *testing.T) {
	t.Parallel()

	img, err := NewImage(2, 3, []uint8{0, 51, 102, 153, 204, 255})
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	d := img.Dense()
	if r, c := d.Dims(); r != 2 || c != 3 {
		t.Fatalf("dense dims: got %dx%d want 2x3", r, c)
	}
	if got := d.At(1, 2); got != 1 {
		t.Fatalf("dense (1,2): got %v want 1", got)
	}
	if got := d.At(0, 1); math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("dense (0,1): got %v want 0.2", got)
	}

	g := img.Gray()
	if b := g.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("gray bounds: %v", b)
	}
	if got := g.GrayAt(2, 1).Y; got != 255 {
		t.Fatalf("gray (x=2,y=1): got %d want 255", got)
	}
	if got := g.GrayAt(1, 0).Y; got != 51 {
		t.Fatalf("gray (x=1,y=0): got %d want 51", got)
	}
}

func TestASCIIExtremes(t *testing.T) {
	t.Parallel()

	const rows, cols = 3, 4
	black, err := NewImage(rows, cols, make([]uint8, rows*cols))
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	want := strings.Repeat(strings.Repeat(" ", cols)+"\n", rows)
	if got := black.String(); got != want {
		t.Fatalf("all-zero image: got %q want %q", got, want)
	}

	white := make([]uint8, rows*cols)
	for i := range white {
		white[i] = 255
	}
	img, err := NewImage(rows, cols, white)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	want = strings.Repeat(strings.Repeat("@", cols)+"\n", rows)
	if got := img.String(); got != want {
		t.Fatalf("all-255 image: got %q want %q", got, want)
	}
}

func TestGlyphBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    uint8
		want byte
	}{
		{0, ' '},
		{51, ' '},
		{52, '.'},
		{102, '.'},
		{103, ':'},
		{154, '*'},
		{204, '*'},
		{205, '@'},
		{255, '@'},
	}
	for _, tc := range tests {
		if got := Glyph(tc.p); got != tc.want {
			t.Errorf("Glyph(%d): got %q want %q", tc.p, got, tc.want)
		}
	}
}

func TestASCIIEmpty(t *testing.T) {
	t.Parallel()
	if got := ASCII(nil, 28); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := ASCII([]uint8{1, 2}, 0); got != "" {
		t.Fatalf("expected empty string for zero width, got %q", got)
	}
}
