package idx

import (
	"fmt"
	"io"
)

// Encode builds an unsigned-byte IDX buffer from dims and payload. The
// payload length must equal the size the dims declare.
func Encode(dims []uint32, payload []byte) ([]byte, error) {
	hdr := Header{Type: TypeUint8, Dims: dims}
	want, err := hdr.PayloadSize()
	if err != nil {
		return nil, err
	}
	if len(payload) != want {
		return nil, fmt.Errorf("idx: payload is %d bytes, dims %v declare %d", len(payload), dims, want)
	}
	out, err := hdr.AppendBinary(make([]byte, 0, hdr.Size()+len(payload)))
	if err != nil {
		return nil, err
	}
	return append(out, payload...), nil
}

// Write encodes dims and payload to w.
func Write(w io.Writer, dims []uint32, payload []byte) error {
	buf, err := Encode(dims, payload)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}
