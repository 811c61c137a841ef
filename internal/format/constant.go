package format

import (
	"fmt"
	"io"

	"github.com/scigolib/sdf/internal/utils"
)

// Constant is a constant block: a single scalar value.
type Constant struct {
	BlockHeader

	// Value holds the decoded scalar. Integers keep their file width
	// as int32 or int64, reals are widened to float64, logicals
	// become bool, and characters become string.
	Value interface{}
}

func readConstant(r io.ReaderAt, loc int64, bh BlockHeader, fh *FileHeader) (*Constant, error) {
	size := bh.Datatype.Size()
	if size == 0 {
		return nil, fmt.Errorf("unsupported constant datatype %s", bh.Datatype)
	}

	buf := utils.GetBuffer(size)
	defer utils.ReleaseBuffer(buf)
	if _, err := r.ReadAt(buf, loc+int64(fh.BlockHeaderLength)); err != nil {
		return nil, utils.WrapError("reading constant value", err)
	}

	c := &Constant{BlockHeader: bh}
	d := utils.NewDecoder(buf, fh.Order)
	switch bh.Datatype {
	case DatatypeInteger4:
		c.Value = d.Int32()
	case DatatypeInteger8:
		c.Value = d.Int64()
	case DatatypeReal4:
		c.Value = float64(d.Float32())
	case DatatypeReal8:
		c.Value = d.Float64()
	case DatatypeLogical:
		c.Value = d.Byte() != 0
	case DatatypeCharacter:
		c.Value = string(rune(d.Byte()))
	default:
		return nil, fmt.Errorf("unsupported constant datatype %s", bh.Datatype)
	}
	if err := d.Err(); err != nil {
		return nil, utils.WrapError("decoding constant value", err)
	}
	return c, nil
}
