package format

import (
	"fmt"
	"io"

	"github.com/ctessum/sparse"
	"github.com/scigolib/sdf/internal/utils"
)

// Variable is a plain variable block: an n-dimensional field defined on
// a mesh, widened to float64.
type Variable struct {
	BlockHeader

	Mult    float64
	Units   string
	MeshID  string
	Dims    []int
	Stagger Stagger

	// Labels are the axis labels of the primary mesh, copied in when
	// variables are wired to their meshes.
	Labels []string

	// Mesh and MeshMid are the primary and midpoint meshes the
	// variable's MeshID names. Either may be nil when the file does
	// not contain the referenced mesh.
	Mesh    *Mesh
	MeshMid *Mesh

	// Data holds the values in row-major order with the first file
	// dimension outermost, so Data.Get(i, j, ...) takes indexes in
	// the same axis order as Dims.
	Data *sparse.DenseArray
}

func readVariable(r io.ReaderAt, loc int64, bh BlockHeader, fh *FileHeader) (*Variable, error) {
	nd := bh.NDims
	metaLen := 8 + idLength + idLength + 4*nd + 4
	buf := utils.GetBuffer(metaLen)
	defer utils.ReleaseBuffer(buf)
	if _, err := r.ReadAt(buf, loc+int64(fh.BlockHeaderLength)); err != nil {
		return nil, utils.WrapError("reading variable metadata", err)
	}

	d := utils.NewDecoder(buf, fh.Order)
	v := &Variable{BlockHeader: bh}
	v.Mult = d.Float64()
	v.Units = d.String(idLength)
	v.MeshID = d.String(idLength)
	v.Dims = make([]int, nd)
	for i := range v.Dims {
		v.Dims[i] = int(d.Int32())
	}
	v.Stagger = Stagger(d.Int32())
	if err := d.Err(); err != nil {
		return nil, utils.WrapError("decoding variable metadata", err)
	}

	total, err := utils.ElementCount(v.Dims)
	if err != nil {
		return nil, err
	}
	esize := bh.Datatype.Size()
	if esize == 0 {
		return nil, fmt.Errorf("unsupported variable datatype %s", bh.Datatype)
	}
	if bh.DataLength != int64(total*esize) {
		return nil, fmt.Errorf("data length %d does not match %d elements of %s", bh.DataLength, total, bh.Datatype)
	}

	v.Data = sparse.ZerosDense(v.Dims...)
	if nd <= 1 {
		if err := readFloat64Elements(r, bh.DataLocation, v.Data.Elements, bh.Datatype, fh.Order); err != nil {
			return nil, utils.WrapError("reading variable data", err)
		}
		return v, nil
	}

	// The file stores column-major data (first axis fastest), while
	// DenseArray indexes row-major, so elements are redistributed.
	raw := make([]float64, total)
	if err := readFloat64Elements(r, bh.DataLocation, raw, bh.Datatype, fh.Order); err != nil {
		return nil, utils.WrapError("reading variable data", err)
	}
	columnToRowMajor(v.Data.Elements, raw, v.Dims)
	return v, nil
}

// columnToRowMajor scatters column-major src into row-major dst. Both
// must hold the product of dims elements.
func columnToRowMajor(dst, src []float64, dims []int) {
	idx := make([]int, len(dims))
	for _, val := range src {
		off := 0
		for a := 0; a < len(dims); a++ {
			off = off*dims[a] + idx[a]
		}
		dst[off] = val

		// Advance the index vector with the first axis fastest,
		// matching the order src was written in.
		for a := 0; a < len(dims); a++ {
			idx[a]++
			if idx[a] < dims[a] {
				break
			}
			idx[a] = 0
		}
	}
}
