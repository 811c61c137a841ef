package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/scigolib/sdf/internal/utils"
)

// readFloat64Elements fills dst with len(dst) elements read from r at
// off, decoding them from dt in the given byte order and widening to
// float64.
func readFloat64Elements(r io.ReaderAt, off int64, dst []float64, dt Datatype, order binary.ByteOrder) error {
	if len(dst) == 0 {
		return nil
	}
	esize := dt.Size()
	if esize == 0 {
		return fmt.Errorf("unsupported array datatype %s", dt)
	}

	raw := make([]byte, len(dst)*esize)
	if _, err := r.ReadAt(raw, off); err != nil {
		return utils.WrapError(fmt.Sprintf("reading %d elements at offset %d", len(dst), off), err)
	}

	switch dt {
	case DatatypeReal8:
		for i := range dst {
			dst[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
	case DatatypeReal4:
		for i := range dst {
			dst[i] = float64(math.Float32frombits(order.Uint32(raw[i*4:])))
		}
	case DatatypeInteger4:
		for i := range dst {
			dst[i] = float64(int32(order.Uint32(raw[i*4:]))) //nolint:gosec // G115: intentional reinterpretation of the raw bits.
		}
	case DatatypeInteger8:
		for i := range dst {
			dst[i] = float64(int64(order.Uint64(raw[i*8:]))) //nolint:gosec // G115: intentional reinterpretation of the raw bits.
		}
	default:
		return fmt.Errorf("unsupported array datatype %s", dt)
	}
	return nil
}
