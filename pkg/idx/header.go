// Package idx decodes the IDX binary array format used to distribute MNIST
// and its format-compatible variants.
package idx

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
)

// Type is the element type code stored in byte 2 of the magic.
type Type byte

const (
	TypeUint8   Type = 0x08
	TypeInt8    Type = 0x09
	TypeInt16   Type = 0x0B
	TypeInt32   Type = 0x0C
	TypeFloat32 Type = 0x0D
	TypeFloat64 Type = 0x0E
)

func (t Type) String() string {
	switch t {
	case TypeUint8:
		return "ubyte"
	case TypeInt8:
		return "byte"
	case TypeInt16:
		return "short"
	case TypeInt32:
		return "int"
	case TypeFloat32:
		return "float"
	case TypeFloat64:
		return "double"
	default:
		return fmt.Sprintf("0x%02x", byte(t))
	}
}

const (
	magicSize = 4

	// MaxDims bounds the declared dimensionality. Real IDX files use 1 to 4.
	MaxDims = 16
)

// Header is the magic plus the big-endian dimension table at the start of an
// IDX file. Dims[0] is always the record count.
type Header struct {
	Type Type
	Dims []uint32
}

// Magic returns the four magic bytes: two zero bytes, the type code and the
// dimensionality.
func (h Header) Magic() [4]byte {
	return [4]byte{0, 0, byte(h.Type), byte(len(h.Dims))}
}

// Size is the encoded length of the header in bytes.
func (h Header) Size() int {
	return magicSize + 4*len(h.Dims)
}

// Count is the number of records declared by the header.
func (h Header) Count() int {
	if len(h.Dims) == 0 {
		return 0
	}
	return int(h.Dims[0])
}

// RecordShape returns the dimensions of one record (empty for labels).
func (h Header) RecordShape() []int {
	if len(h.Dims) < 2 {
		return nil
	}
	shape := make([]int, len(h.Dims)-1)
	for i, d := range h.Dims[1:] {
		shape[i] = int(d)
	}
	return shape
}

// RecordSize is the product of all dimensions after the first.
func (h Header) RecordSize() (int, error) {
	if len(h.Dims) == 0 {
		return 0, ErrInvalidDimensionality
	}
	n := uint64(1)
	for i, d := range h.Dims[1:] {
		hi, lo := bits.Mul64(n, uint64(d))
		if hi != 0 || lo > math.MaxInt {
			return 0, fmt.Errorf("%w: record size at dim %d", ErrSizeOverflow, i+1)
		}
		n = lo
	}
	return int(n), nil
}

// PayloadSize is Count() * RecordSize() with overflow checks. A header that
// declares records but gives them a zero-length dimension is rejected, since
// its count is not bounded by the payload.
func (h Header) PayloadSize() (int, error) {
	rs, err := h.RecordSize()
	if err != nil {
		return 0, err
	}
	if rs == 0 && h.Count() > 0 {
		return 0, fmt.Errorf("%w: %d records with a zero-length dimension %v", ErrInvalidDimensionality, h.Count(), h.Dims)
	}
	hi, lo := bits.Mul64(uint64(h.Count()), uint64(rs))
	if hi != 0 || lo > math.MaxInt {
		return 0, fmt.Errorf("%w: %d records of %d bytes", ErrSizeOverflow, h.Count(), rs)
	}
	return int(lo), nil
}

// AppendBinary appends the encoded header to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	if len(h.Dims) == 0 || len(h.Dims) > MaxDims {
		return b, fmt.Errorf("%w: %d", ErrInvalidDimensionality, len(h.Dims))
	}
	m := h.Magic()
	b = append(b, m[:]...)
	for _, d := range h.Dims {
		b = binary.BigEndian.AppendUint32(b, d)
	}
	return b, nil
}

// MarshalBinary encodes the header.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, h.Size()))
}

// ParseHeader decodes the magic and dimension table from the start of buf.
// It returns the header and the number of bytes consumed.
func ParseHeader(buf []byte) (Header, int, error) {
	if len(buf) < magicSize {
		return Header{}, 0, fmt.Errorf("%w: %d bytes, need %d for magic", ErrTruncatedData, len(buf), magicSize)
	}
	if buf[0] != 0 || buf[1] != 0 {
		return Header{}, 0, fmt.Errorf("%w: % x", ErrInvalidMagic, buf[:magicSize])
	}
	typ := Type(buf[2])
	if typ != TypeUint8 {
		return Header{}, 0, fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}
	nd := int(buf[3])
	if nd == 0 || nd > MaxDims {
		return Header{}, 0, fmt.Errorf("%w: %d", ErrInvalidDimensionality, nd)
	}

	size := magicSize + 4*nd
	if len(buf) < size {
		return Header{}, 0, fmt.Errorf("%w: %d bytes, need %d for %d dims", ErrTruncatedData, len(buf), size, nd)
	}
	dims := make([]uint32, nd)
	for i := range dims {
		off := magicSize + 4*i
		dims[i] = binary.BigEndian.Uint32(buf[off : off+4])
	}
	return Header{Type: typ, Dims: dims}, size, nil
}
