package sdf

import (
	"sort"

	"github.com/ctessum/sparse"
)

// Coordinate is a named 1-D coordinate axis, built from one axis of a
// mesh block. Its name combines the axis label with the mesh name, such
// as "X_Grid" for the node grid or "X_Grid_mid" for the midpoint grid.
type Coordinate struct {
	Name  string
	Label string
	Units string

	// Values holds the axis positions in ascending file order.
	Values []float64
}

// Variable is a data variable with named coordinate axes.
type Variable struct {
	Name  string
	Units string

	// Coords names the coordinate of each axis, in axis order. The
	// lengths of the named coordinates match Data.Shape.
	Coords []string

	// Data holds the values in row-major order with the first axis
	// outermost.
	Data *sparse.DenseArray
}

// Shape returns the per-axis lengths of the variable.
func (v *Variable) Shape() []int {
	return v.Data.Shape
}

// Dataset is the labeled view of an SDF file: data variables with named
// coordinate axes, coordinate arrays for every mesh axis, and file-wide
// attributes merged from the header, run info, and constant blocks.
type Dataset struct {
	attrs    map[string]interface{}
	attrKeys []string
	coords   map[string]*Coordinate
	vars     map[string]*Variable
}

// Attr returns the attribute with the given name.
func (d *Dataset) Attr(name string) (interface{}, bool) {
	v, ok := d.attrs[name]
	return v, ok
}

// AttrNames returns attribute names in merge order: header fields,
// then run info fields, then constants in file order.
func (d *Dataset) AttrNames() []string {
	return append([]string(nil), d.attrKeys...)
}

// Coord returns the coordinate with the given name.
func (d *Dataset) Coord(name string) (*Coordinate, bool) {
	c, ok := d.coords[name]
	return c, ok
}

// CoordNames returns all coordinate names, sorted.
func (d *Dataset) CoordNames() []string {
	names := make([]string, 0, len(d.coords))
	for name := range d.coords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Var returns the data variable with the given name.
func (d *Dataset) Var(name string) (*Variable, bool) {
	v, ok := d.vars[name]
	return v, ok
}

// VarNames returns all data variable names, sorted.
func (d *Dataset) VarNames() []string {
	names := make([]string, 0, len(d.vars))
	for name := range d.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
