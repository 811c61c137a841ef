package sdf

import "github.com/scigolib/sdf/internal/format"

// The block types are defined in the format package and re-exported
// here so callers can inspect a file's raw structure without importing
// internals. A Block's concrete type is one of *MeshBlock,
// *VariableBlock, *ConstantBlock, *MetadataBlock, or an opaque entry
// for block kinds the reader does not decode.
type (
	// Block is one decoded block of an SDF file.
	Block = format.Block

	// BlockHeader holds the fields every block carries.
	BlockHeader = format.BlockHeader

	// FileHeader is the decoded SDF file header.
	FileHeader = format.FileHeader

	// MeshBlock is a plain mesh: one coordinate array per axis.
	MeshBlock = format.Mesh

	// VariableBlock is a plain variable defined on a mesh.
	VariableBlock = format.Variable

	// ConstantBlock is a scalar constant.
	ConstantBlock = format.Constant

	// MetadataBlock is a block of named fields, such as run info or
	// the header pseudo-block.
	MetadataBlock = format.Metadata
)
