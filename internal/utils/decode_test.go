package utils

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecoder_Fields(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = binary.LittleEndian.AppendUint32(buf, 42)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(1<<40))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(1.5))
	buf = append(buf, 'G', 'r', 'i', 'd', 0, 0, 0, 0)
	buf = append(buf, 0xAB)

	d := NewDecoder(buf, binary.LittleEndian)
	require.Equal(t, int32(42), d.Int32())
	require.Equal(t, int64(1<<40), d.Int64())
	require.Equal(t, 1.5, d.Float64())
	require.Equal(t, "Grid", d.String(8))
	require.Equal(t, byte(0xAB), d.Byte())
	require.NoError(t, d.Err())
	require.Equal(t, 0, d.Remaining())
}

func TestDecoder_BigEndian(t *testing.T) {
	buf := binary.BigEndian.AppendUint32(nil, 7)
	d := NewDecoder(buf, binary.BigEndian)
	require.Equal(t, int32(7), d.Int32())
	require.NoError(t, d.Err())
}

func TestDecoder_NegativeValues(t *testing.T) {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(0xFFFFFFFF)) // -1
	buf = binary.LittleEndian.AppendUint64(buf, uint64(0xFFFFFFFFFFFFFFFE))

	d := NewDecoder(buf, binary.LittleEndian)
	require.Equal(t, int32(-1), d.Int32())
	require.Equal(t, int64(-2), d.Int64())
	require.NoError(t, d.Err())
}

func TestDecoder_StickyError(t *testing.T) {
	d := NewDecoder([]byte{1, 2}, binary.LittleEndian)

	// First read runs past the end.
	require.Equal(t, int32(0), d.Int32())
	require.ErrorIs(t, d.Err(), ErrShortBuffer)

	// Subsequent reads stay failed and return zero values.
	require.Equal(t, int64(0), d.Int64())
	require.Equal(t, "", d.String(4))
	require.ErrorIs(t, d.Err(), ErrShortBuffer)
}

func TestDecoder_SkipAndOffset(t *testing.T) {
	d := NewDecoder(make([]byte, 16), binary.LittleEndian)
	d.Skip(6)
	require.Equal(t, 6, d.Offset())
	require.Equal(t, 10, d.Remaining())
	require.NoError(t, d.Err())
}

func TestDecoder_BytesCopies(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	d := NewDecoder(src, binary.LittleEndian)
	got := d.Bytes(4)
	require.Equal(t, []byte{1, 2, 3, 4}, got)

	// The returned slice must not alias the input.
	src[0] = 99
	require.Equal(t, byte(1), got[0])
}

func TestCString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "padded", in: []byte{'x', 0, 0, 0}, want: "x"},
		{name: "full width", in: []byte{'a', 'b', 'c'}, want: "abc"},
		{name: "empty", in: []byte{0, 0}, want: ""},
		{name: "embedded after NUL ignored", in: []byte{'a', 0, 'b'}, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CString(tt.in))
		})
	}
}
