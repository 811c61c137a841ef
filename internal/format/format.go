// Package format parses the SDF self-describing binary format written by
// particle-in-cell codes such as EPOCH. An SDF file is a 106-byte header
// followed by a linked chain of blocks; every block carries a fixed-size
// header, a type-specific metadata region, and an optional data region.
package format

import "fmt"

// Magic is the 4-byte signature at the start of every SDF file.
const Magic = "SDF1"

const (
	// headerLength is the fixed size of the SDF file header.
	headerLength = 106

	// idLength is the fixed width of block id, label, and unit fields.
	idLength = 32

	// endiannessCheck is the sentinel written as an int32 in the file's
	// native byte order. Decoding it with the wrong order yields a
	// different value, which is how readers detect byte-swapped files.
	endiannessCheck int32 = 16911491 // 0x01020c83

	// maxDims is the dimensionality limit of the SDF format.
	maxDims = 4
)

// Datatype identifies the element type of a block's values.
type Datatype int32

// Datatype constants match the on-disk SDF encoding.
const (
	DatatypeNull Datatype = iota
	DatatypeInteger4
	DatatypeInteger8
	DatatypeReal4
	DatatypeReal8
	DatatypeReal16
	DatatypeCharacter
	DatatypeLogical
	DatatypeOther
)

// Size returns the per-element byte width, or 0 when the type has no
// fixed width this reader understands.
func (d Datatype) Size() int {
	switch d {
	case DatatypeInteger4, DatatypeReal4:
		return 4
	case DatatypeInteger8, DatatypeReal8:
		return 8
	case DatatypeReal16:
		return 16
	case DatatypeCharacter, DatatypeLogical:
		return 1
	default:
		return 0
	}
}

func (d Datatype) String() string {
	switch d {
	case DatatypeNull:
		return "null"
	case DatatypeInteger4:
		return "integer4"
	case DatatypeInteger8:
		return "integer8"
	case DatatypeReal4:
		return "real4"
	case DatatypeReal8:
		return "real8"
	case DatatypeReal16:
		return "real16"
	case DatatypeCharacter:
		return "character"
	case DatatypeLogical:
		return "logical"
	case DatatypeOther:
		return "other"
	default:
		return fmt.Sprintf("datatype(%d)", int32(d))
	}
}

// BlockType identifies the kind of a block.
type BlockType int32

// BlockType constants match the on-disk SDF encoding. Only plain meshes,
// plain variables, constants, and run info blocks are decoded; the rest
// are surfaced as opaque entries.
const (
	BlockTypeScrubbed         BlockType = -1
	BlockTypeNull             BlockType = 0
	BlockTypePlainMesh        BlockType = 1
	BlockTypePointMesh        BlockType = 2
	BlockTypePlainVariable    BlockType = 3
	BlockTypePointVariable    BlockType = 4
	BlockTypeConstant         BlockType = 5
	BlockTypeArray            BlockType = 6
	BlockTypeRunInfo          BlockType = 7
	BlockTypeSource           BlockType = 8
	BlockTypeStitchedTensor   BlockType = 9
	BlockTypeStitchedMaterial BlockType = 10
	BlockTypeStitchedMatvar   BlockType = 11
	BlockTypeStitchedSpecies  BlockType = 12
	BlockTypeSpecies          BlockType = 13
)

func (b BlockType) String() string {
	switch b {
	case BlockTypeScrubbed:
		return "scrubbed"
	case BlockTypeNull:
		return "null"
	case BlockTypePlainMesh:
		return "plain_mesh"
	case BlockTypePointMesh:
		return "point_mesh"
	case BlockTypePlainVariable:
		return "plain_variable"
	case BlockTypePointVariable:
		return "point_variable"
	case BlockTypeConstant:
		return "constant"
	case BlockTypeArray:
		return "array"
	case BlockTypeRunInfo:
		return "run_info"
	case BlockTypeSource:
		return "source"
	case BlockTypeStitchedTensor:
		return "stitched_tensor"
	case BlockTypeStitchedMaterial:
		return "stitched_material"
	case BlockTypeStitchedMatvar:
		return "stitched_matvar"
	case BlockTypeStitchedSpecies:
		return "stitched_species"
	case BlockTypeSpecies:
		return "species"
	default:
		return fmt.Sprintf("blocktype(%d)", int32(b))
	}
}

// Geometry identifies the coordinate system of a mesh.
type Geometry int32

// Geometry constants match the on-disk SDF encoding.
const (
	GeometryNull Geometry = iota
	GeometryCartesian
	GeometryCylindrical
	GeometrySpherical
)

func (g Geometry) String() string {
	switch g {
	case GeometryNull:
		return "null"
	case GeometryCartesian:
		return "cartesian"
	case GeometryCylindrical:
		return "cylindrical"
	case GeometrySpherical:
		return "spherical"
	default:
		return fmt.Sprintf("geometry(%d)", int32(g))
	}
}

// Stagger records where a variable lives relative to its mesh cells. The
// value is a bitmask with one bit per axis: a set bit means the variable
// is offset onto the cell boundary along that axis.
type Stagger int32

// Stagger constants match the on-disk SDF encoding.
const (
	StaggerCellCentre Stagger = 0
	StaggerFaceX      Stagger = 1
	StaggerFaceY      Stagger = 2
	StaggerEdgeZ      Stagger = 3
	StaggerFaceZ      Stagger = 4
	StaggerEdgeY      Stagger = 5
	StaggerEdgeX      Stagger = 6
	StaggerVertex     Stagger = 7
)
