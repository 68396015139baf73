package idx

import "errors"

var (
	ErrInvalidMagic          = errors.New("idx: invalid magic")
	ErrUnsupportedType       = errors.New("idx: unsupported element type")
	ErrInvalidDimensionality = errors.New("idx: invalid dimensionality")
	ErrSizeOverflow          = errors.New("idx: size overflow")
	ErrTruncatedData         = errors.New("idx: truncated data")
)

// IsFormatError reports whether err is one of the decode sentinels above,
// as opposed to an I/O failure.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrInvalidMagic) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrInvalidDimensionality) ||
		errors.Is(err, ErrSizeOverflow) ||
		errors.Is(err, ErrTruncatedData)
}
