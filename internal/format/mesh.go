package format

import (
	"fmt"
	"io"

	"github.com/ctessum/sparse"
	"github.com/scigolib/sdf/internal/utils"
	"gonum.org/v1/gonum/floats"
)

// Mesh is a plain mesh block: one 1-D axis array per dimension plus the
// axis labels, units, and extents describing the simulation grid.
type Mesh struct {
	BlockHeader

	Mults    []float64
	Labels   []string
	Units    []string
	Geometry Geometry

	// Extents holds the axis minima followed by the axis maxima.
	Extents []float64

	// Dims is the number of points along each axis. Axes holds the
	// corresponding coordinate arrays, widened to float64.
	Dims []int
	Axes []*sparse.DenseArray
}

func readMesh(r io.ReaderAt, loc int64, bh BlockHeader, fh *FileHeader) (*Mesh, error) {
	nd := bh.NDims
	metaLen := 8*nd + idLength*nd + idLength*nd + 4 + 16*nd + 4*nd
	buf := utils.GetBuffer(metaLen)
	defer utils.ReleaseBuffer(buf)
	if _, err := r.ReadAt(buf, loc+int64(fh.BlockHeaderLength)); err != nil {
		return nil, utils.WrapError("reading mesh metadata", err)
	}

	d := utils.NewDecoder(buf, fh.Order)
	m := &Mesh{BlockHeader: bh}
	m.Mults = make([]float64, nd)
	for i := range m.Mults {
		m.Mults[i] = d.Float64()
	}
	m.Labels = make([]string, nd)
	for i := range m.Labels {
		m.Labels[i] = d.String(idLength)
	}
	m.Units = make([]string, nd)
	for i := range m.Units {
		m.Units[i] = d.String(idLength)
	}
	m.Geometry = Geometry(d.Int32())
	m.Extents = make([]float64, 2*nd)
	for i := range m.Extents {
		m.Extents[i] = d.Float64()
	}
	m.Dims = make([]int, nd)
	for i := range m.Dims {
		m.Dims[i] = int(d.Int32())
	}
	if err := d.Err(); err != nil {
		return nil, utils.WrapError("decoding mesh metadata", err)
	}

	if _, err := utils.ElementCount(m.Dims); err != nil {
		return nil, err
	}
	esize := bh.Datatype.Size()
	if esize == 0 {
		return nil, fmt.Errorf("unsupported mesh datatype %s", bh.Datatype)
	}
	// Axis arrays are stored back to back in the data region. For a
	// mesh the data length covers the sum of the axis sizes, not
	// their product.
	sum := 0
	for _, n := range m.Dims {
		sum += n
	}
	if bh.DataLength != int64(sum*esize) {
		return nil, fmt.Errorf("data length %d does not match %d axis points of %s", bh.DataLength, sum, bh.Datatype)
	}

	m.Axes = make([]*sparse.DenseArray, nd)
	off := bh.DataLocation
	for i, n := range m.Dims {
		axis := sparse.ZerosDense(n)
		if err := readFloat64Elements(r, off, axis.Elements, bh.Datatype, fh.Order); err != nil {
			return nil, utils.WrapError(fmt.Sprintf("reading axis %d", i), err)
		}
		m.Axes[i] = axis
		off += int64(n * esize)
	}
	return m, nil
}

// MidMesh derives the midpoint companion of m: the mesh EPOCH positions
// cell-centred variables on. Each axis holds the midpoints of adjacent
// parent points, so it is one point shorter, and the mesh is named and
// identified by appending "_mid" to the parent.
func (m *Mesh) MidMesh() *Mesh {
	mid := &Mesh{
		BlockHeader: BlockHeader{
			Name:     m.Name + "_mid",
			ID:       m.ID + "_mid",
			Type:     m.Type,
			Datatype: m.Datatype,
			NDims:    m.NDims,
		},
		Mults:    append([]float64(nil), m.Mults...),
		Labels:   append([]string(nil), m.Labels...),
		Units:    append([]string(nil), m.Units...),
		Geometry: m.Geometry,
		Extents:  append([]float64(nil), m.Extents...),
	}
	mid.Dims = make([]int, len(m.Dims))
	mid.Axes = make([]*sparse.DenseArray, len(m.Axes))
	for i, axis := range m.Axes {
		n := m.Dims[i] - 1
		if n < 0 {
			n = 0
		}
		mid.Dims[i] = n
		a := sparse.ZerosDense(n)
		floats.AddTo(a.Elements, axis.Elements[:n], axis.Elements[len(axis.Elements)-n:])
		floats.Scale(0.5, a.Elements)
		mid.Axes[i] = a
	}
	return mid
}
