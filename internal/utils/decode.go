package utils

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is reported when a decode runs past the end of its input.
var ErrShortBuffer = errors.New("decode past end of buffer")

// Decoder walks a byte slice sequentially, decoding fixed-width fields in the
// byte order declared by the file header. Errors are sticky: after the first
// failure every read returns a zero value and Err reports the failure, so
// callers can decode a whole structure and check once.
type Decoder struct {
	buf   []byte
	off   int
	order binary.ByteOrder
	err   error
}

// NewDecoder returns a Decoder over buf using the given byte order.
func NewDecoder(buf []byte, order binary.ByteOrder) *Decoder {
	return &Decoder{buf: buf, order: order}
}

// Err returns the first decode failure, or nil.
func (d *Decoder) Err() error {
	return d.err
}

// Offset returns the current position within the buffer.
func (d *Decoder) Offset() int {
	return d.off
}

// Remaining returns the number of undecoded bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.off+n > len(d.buf) {
		d.err = fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrShortBuffer, n, d.off, len(d.buf))
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

// Skip advances past n bytes without decoding them.
func (d *Decoder) Skip(n int) {
	d.take(n)
}

// Byte decodes a single byte.
func (d *Decoder) Byte() byte {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Int32 decodes a 32-bit signed integer.
func (d *Decoder) Int32() int32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	//nolint:gosec // G115: SDF stores signed fields as raw 32-bit words
	return int32(d.order.Uint32(b))
}

// Int64 decodes a 64-bit signed integer.
func (d *Decoder) Int64() int64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	//nolint:gosec // G115: SDF stores signed fields as raw 64-bit words
	return int64(d.order.Uint64(b))
}

// Float32 decodes an IEEE 754 single-precision value.
func (d *Decoder) Float32() float32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(d.order.Uint32(b))
}

// Float64 decodes an IEEE 754 double-precision value.
func (d *Decoder) Float64() float64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(d.order.Uint64(b))
}

// Bytes decodes n raw bytes.
func (d *Decoder) Bytes(n int) []byte {
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// String decodes an n-byte NUL-padded field and trims the padding.
func (d *Decoder) String(n int) string {
	b := d.take(n)
	if b == nil {
		return ""
	}
	return CString(b)
}

// CString returns the contents of a NUL-padded fixed-width field up to the
// first NUL byte.
func CString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
