package mnist

import "strings"

// Ramp orders glyphs from darkest (blank) to brightest.
const Ramp = " .:*@"

// Glyph maps a pixel to its ramp glyph. The byte range is split into
// len(Ramp) equal bands.
func Glyph(p uint8) byte {
	return Ramp[int(p)*len(Ramp)/256]
}

// ASCII renders row-major pixels cols wide, ending every row with a newline.
func ASCII(pixels []uint8, cols int) string {
	if cols <= 0 || len(pixels) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(pixels) + len(pixels)/cols)
	for i, p := range pixels {
		sb.WriteByte(Glyph(p))
		if (i+1)%cols == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
