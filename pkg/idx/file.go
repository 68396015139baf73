package idx

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is a decoded IDX buffer. Records are slices of Data; they must not be
// retained after Close.
type File struct {
	Data       []byte
	Header     Header
	RecordSize int

	// Trailing counts bytes past the declared payload. They are ignored.
	Trailing int

	payload []byte
	mmapped bool
}

// Decode validates buf as an unsigned-byte IDX file and slices its payload
// into records. Extra bytes after the payload are tolerated and reported in
// File.Trailing; a short payload is an error.
func Decode(buf []byte) (*File, error) {
	hdr, off, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	rs, err := hdr.RecordSize()
	if err != nil {
		return nil, err
	}
	want, err := hdr.PayloadSize()
	if err != nil {
		return nil, err
	}
	have := len(buf) - off
	if have < want {
		return nil, fmt.Errorf("%w: payload is %d bytes, header declares %d records of %d bytes (%d)",
			ErrTruncatedData, have, hdr.Count(), rs, want)
	}
	return &File{
		Data:       buf,
		Header:     hdr,
		RecordSize: rs,
		Trailing:   have - want,
		payload:    buf[off : off+want],
	}, nil
}

// Len is the number of records.
func (f *File) Len() int {
	return f.Header.Count()
}

// Record returns the i-th record as a zero-copy slice.
func (f *File) Record(i int) []byte {
	if i < 0 || i >= f.Len() {
		return nil
	}
	start := i * f.RecordSize
	return f.payload[start : start+f.RecordSize : start+f.RecordSize]
}

// Records returns every record in order.
func (f *File) Records() [][]byte {
	out := make([][]byte, f.Len())
	for i := range out {
		out[i] = f.Record(i)
	}
	return out
}

// Payload returns the record bytes without header or trailing bytes.
func (f *File) Payload() []byte {
	return f.payload
}

// Open maps an IDX file read-only and decodes it.
// If mmap is unavailable, it falls back to reading the whole file.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrSizeOverflow, path, size64)
	}
	size := int(size64)
	if size < magicSize {
		// mmap rejects empty mappings; let Decode report the short buffer.
		data, err := readAllAt(f, size)
		if err != nil {
			return nil, err
		}
		return Decode(data)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		idf, decErr := Decode(data)
		if decErr != nil {
			_ = unix.Munmap(data)
			return nil, decErr
		}
		idf.mmapped = true
		return idf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// OpenReaderAt reads and decodes an IDX file from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: reader size %d", ErrSizeOverflow, size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Close releases the mapping, if any. Records obtained from f are invalid afterwards.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.payload = nil
	f.mmapped = false
	return err
}
