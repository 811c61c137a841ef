package sdf

import (
	"fmt"

	"github.com/scigolib/sdf/internal/format"
)

// resolveCoordinates matches each axis of v to a coordinate name. The
// lookup is two-level, axis label to axis size to coordinate name, and
// is populated from the variable's primary mesh first and its midpoint
// mesh second, so a same-size collision resolves to the midpoint grid.
// Both grids share axis labels, which makes the size the only signal
// telling node-centred and cell-centred axes apart: a node-centred axis
// has one point more than cells and lands on the node grid, a
// cell-centred axis lands on the midpoint grid.
func resolveCoordinates(v *format.Variable) ([]string, error) {
	if v.Mesh == nil {
		return nil, fmt.Errorf("%w: variable %q references unknown mesh %q",
			ErrUnresolvedCoordinate, v.Name, v.MeshID)
	}

	lookup := map[string]map[int]string{}
	add := func(m *format.Mesh) {
		if m == nil {
			return
		}
		base := meshBaseName(m.Name)
		for i, label := range m.Labels {
			sizes, ok := lookup[label]
			if !ok {
				sizes = map[int]string{}
				lookup[label] = sizes
			}
			sizes[m.Dims[i]] = coordName(label, base)
		}
	}
	add(v.Mesh)
	add(v.MeshMid)

	names := make([]string, len(v.Dims))
	for i, size := range v.Dims {
		if i >= len(v.Labels) {
			return nil, &UnresolvedCoordinateError{Variable: v.Name, Axis: i, Size: size}
		}
		label := v.Labels[i]
		name, ok := lookup[label][size]
		if !ok {
			return nil, &UnresolvedCoordinateError{Variable: v.Name, Label: label, Axis: i, Size: size}
		}
		names[i] = name
	}
	return names, nil
}
