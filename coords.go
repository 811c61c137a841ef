package sdf

import (
	"strings"

	"github.com/scigolib/sdf/internal/format"
)

// meshBaseName strips the leading category from a mesh name:
// "Grid/Grid" becomes "Grid" and "Grid/Grid_mid" becomes "Grid_mid".
// Names without a separator are returned unchanged.
func meshBaseName(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// coordName builds a coordinate name from an axis label and a mesh base
// name: label "X" on mesh "Grid/Grid_mid" yields "X_Grid_mid".
func coordName(label, base string) string {
	return label + "_" + base
}

// materializeCoordinates produces one named coordinate per axis of
// every mesh, in mesh file order. Two meshes sharing an axis label
// never collide because the mesh base name is part of the coordinate
// name; if names do collide the later mesh wins.
func materializeCoordinates(meshes []*format.Mesh) map[string]*Coordinate {
	coords := map[string]*Coordinate{}
	for _, m := range meshes {
		base := meshBaseName(m.Name)
		for i, label := range m.Labels {
			name := coordName(label, base)
			coords[name] = &Coordinate{
				Name:   name,
				Label:  label,
				Units:  m.Units[i],
				Values: m.Axes[i].Elements,
			}
		}
	}
	return coords
}
