package format

import (
	"fmt"
	"io"

	"github.com/scigolib/sdf/internal/utils"
)

// blockHeaderFixed is the size of a block header before the trailing
// name field, whose width is the file's string length.
const blockHeaderFixed = 68

// BlockHeader holds the fields common to every block. Concrete block
// types embed it, so its accessors are promoted onto each of them.
type BlockHeader struct {
	// Name is the human-readable block name, such as
	// "Electric Field/Ex". ID is the short machine name.
	Name string
	ID   string

	Type     BlockType
	Datatype Datatype
	NDims    int

	// DataLocation and DataLength describe the block's data region.
	// Both are zero for blocks synthesized by the reader.
	DataLocation int64
	DataLength   int64

	// NextBlockLocation links to the following block in the chain.
	NextBlockLocation int64
}

// Header returns the common header fields.
func (h BlockHeader) Header() BlockHeader { return h }

// Block is the decoded form of one SDF block. The concrete type is one
// of *Mesh, *Variable, *Constant, *Metadata, or *Opaque.
type Block interface {
	Header() BlockHeader
}

// Opaque is a block whose type this reader does not decode. The header
// is retained so callers can still see the block's name and type.
type Opaque struct {
	BlockHeader
}

// Metadata is a block decoded into named fields, such as run info.
type Metadata struct {
	BlockHeader

	// Fields maps field names to decoded values. Keys lists the field
	// names in insertion order.
	Fields map[string]interface{}
	Keys   []string
}

// NewMetadata returns an empty metadata block with the given name.
func NewMetadata(name string) *Metadata {
	return &Metadata{
		BlockHeader: BlockHeader{Name: name},
		Fields:      map[string]interface{}{},
	}
}

// Set stores a field value, keeping first-insertion order in Keys.
func (m *Metadata) Set(key string, value interface{}) {
	if _, ok := m.Fields[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Fields[key] = value
}

func readBlockHeader(r io.ReaderAt, loc int64, fh *FileHeader) (BlockHeader, error) {
	buf := utils.GetBuffer(int(fh.BlockHeaderLength))
	defer utils.ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, loc); err != nil {
		return BlockHeader{}, utils.WrapError(fmt.Sprintf("reading block header at offset %d", loc), err)
	}

	d := utils.NewDecoder(buf, fh.Order)
	var bh BlockHeader
	bh.NextBlockLocation = d.Int64()
	bh.DataLocation = d.Int64()
	bh.ID = d.String(idLength)
	bh.DataLength = d.Int64()
	bh.Type = BlockType(d.Int32())
	bh.Datatype = Datatype(d.Int32())
	bh.NDims = int(d.Int32())
	bh.Name = d.String(int(fh.StringLength))
	if err := d.Err(); err != nil {
		return BlockHeader{}, utils.WrapError(fmt.Sprintf("decoding block header at offset %d", loc), err)
	}

	if bh.NDims < 0 || bh.NDims > maxDims {
		return BlockHeader{}, fmt.Errorf("block %q: dimension count %d outside [0, %d]", bh.Name, bh.NDims, maxDims)
	}
	if bh.DataLength < 0 {
		return BlockHeader{}, fmt.Errorf("block %q: negative data length %d", bh.Name, bh.DataLength)
	}
	return bh, nil
}

// ReadBlocks walks the block chain described by h and decodes every
// block. For each plain mesh it also synthesizes the companion midpoint
// mesh, inserted directly after its parent, and after the walk it wires
// every variable to its primary and midpoint meshes by mesh id.
//
// Size is the file's length in bytes. The header's block count and
// every block's declared data region are checked against it before any
// allocation is sized from them.
func ReadBlocks(r io.ReaderAt, h *FileHeader, size int64) ([]Block, error) {
	// Each block occupies at least a block header beyond the file
	// header, which bounds how many blocks the file can hold.
	if int64(h.NBlocks) > (size-headerLength)/int64(h.BlockHeaderLength) {
		return nil, fmt.Errorf("block count %d does not fit in a %d-byte file", h.NBlocks, size)
	}
	blocks := make([]Block, 0, h.NBlocks)
	meshes := map[string]*Mesh{}

	loc := h.FirstBlockLocation
	for i := int32(0); i < h.NBlocks; i++ {
		if loc <= 0 {
			return nil, fmt.Errorf("block chain ends after %d of %d blocks", i, h.NBlocks)
		}
		bh, err := readBlockHeader(r, loc, h)
		if err != nil {
			return nil, err
		}
		if bh.DataLocation < 0 || bh.DataLocation > size || bh.DataLength > size-bh.DataLocation {
			return nil, fmt.Errorf("block %q: data region at offset %d with length %d lies outside the %d-byte file",
				bh.Name, bh.DataLocation, bh.DataLength, size)
		}

		switch bh.Type {
		case BlockTypePlainMesh:
			m, err := readMesh(r, loc, bh, h)
			if err != nil {
				return nil, utils.WrapError(fmt.Sprintf("parsing mesh block %q", bh.Name), err)
			}
			mid := m.MidMesh()
			blocks = append(blocks, m, mid)
			meshes[m.ID] = m
			meshes[mid.ID] = mid
		case BlockTypePlainVariable:
			v, err := readVariable(r, loc, bh, h)
			if err != nil {
				return nil, utils.WrapError(fmt.Sprintf("parsing variable block %q", bh.Name), err)
			}
			blocks = append(blocks, v)
		case BlockTypeConstant:
			c, err := readConstant(r, loc, bh, h)
			if err != nil {
				return nil, utils.WrapError(fmt.Sprintf("parsing constant block %q", bh.Name), err)
			}
			blocks = append(blocks, c)
		case BlockTypeRunInfo:
			md, err := readRunInfo(r, loc, bh, h)
			if err != nil {
				return nil, utils.WrapError(fmt.Sprintf("parsing run info block %q", bh.Name), err)
			}
			blocks = append(blocks, md)
		default:
			blocks = append(blocks, &Opaque{BlockHeader: bh})
		}

		loc = bh.NextBlockLocation
	}

	for _, b := range blocks {
		v, ok := b.(*Variable)
		if !ok {
			continue
		}
		v.Mesh = meshes[v.MeshID]
		v.MeshMid = meshes[v.MeshID+"_mid"]
		if v.Mesh != nil {
			v.Labels = append([]string(nil), v.Mesh.Labels...)
		}
	}
	return blocks, nil
}
