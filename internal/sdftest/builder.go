// Package sdftest builds well-formed SDF files for tests. A FileBuilder
// assembles the header and block chain byte by byte, so tests can
// construct files with exactly the blocks they need without shipping
// binary fixtures.
package sdftest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/scigolib/sdf/internal/format"
	"gonum.org/v1/gonum/floats"
)

const (
	headerLength     = 106
	idLength         = 32
	blockHeaderFixed = 68
)

type builderBlock struct {
	id   string
	name string
	bt   format.BlockType
	dt   format.Datatype
	nd   int
	meta []byte
	data []byte
}

// FileBuilder accumulates blocks and renders them as an SDF byte image.
// The zero value is not usable; call NewFileBuilder.
type FileBuilder struct {
	order        binary.ByteOrder
	stringLength int32
	codeName     string
	step         int32
	time         float64
	jobID1       int32
	jobID2       int32
	restart      bool
	blocks       []builderBlock
}

// NewFileBuilder returns a builder for a little-endian file with the
// default string length of 64.
func NewFileBuilder() *FileBuilder {
	return &FileBuilder{
		order:        binary.LittleEndian,
		stringLength: 64,
		codeName:     "Epoch3d",
	}
}

// SetOrder selects the byte order the image is written in.
func (b *FileBuilder) SetOrder(order binary.ByteOrder) *FileBuilder {
	b.order = order
	return b
}

// SetStringLength overrides the width of string fields in block headers
// and metadata.
func (b *FileBuilder) SetStringLength(n int32) *FileBuilder {
	b.stringLength = n
	return b
}

// SetCodeName sets the writing code's name recorded in the header.
func (b *FileBuilder) SetCodeName(name string) *FileBuilder {
	b.codeName = name
	return b
}

// SetStep sets the simulation step recorded in the header.
func (b *FileBuilder) SetStep(step int32) *FileBuilder {
	b.step = step
	return b
}

// SetTime sets the simulation time recorded in the header.
func (b *FileBuilder) SetTime(t float64) *FileBuilder {
	b.time = t
	return b
}

// SetJobID sets the two job id words recorded in the header.
func (b *FileBuilder) SetJobID(id1, id2 int32) *FileBuilder {
	b.jobID1 = id1
	b.jobID2 = id2
	return b
}

// SetRestart marks the file as written by a restarted run.
func (b *FileBuilder) SetRestart(restart bool) *FileBuilder {
	b.restart = restart
	return b
}

// AddPlainMesh appends a Cartesian mesh block with one axis array per
// dimension. Dims and extents are derived from the axis values, which
// are written as real8.
func (b *FileBuilder) AddPlainMesh(id, name string, labels, units []string, axes ...[]float64) *FileBuilder {
	nd := len(axes)
	if len(labels) != nd || len(units) != nd {
		panic("sdftest: one label and one unit per axis")
	}

	meta := b.encoder()
	for range axes {
		meta.f64(1.0)
	}
	for _, l := range labels {
		meta.fixedString(l, idLength)
	}
	for _, u := range units {
		meta.fixedString(u, idLength)
	}
	meta.i32(int32(format.GeometryCartesian))
	for _, axis := range axes {
		meta.f64(safeMin(axis))
	}
	for _, axis := range axes {
		meta.f64(safeMax(axis))
	}
	for _, axis := range axes {
		meta.i32(int32(len(axis)))
	}

	data := b.encoder()
	for _, axis := range axes {
		for _, v := range axis {
			data.f64(v)
		}
	}

	b.blocks = append(b.blocks, builderBlock{
		id: id, name: name,
		bt: format.BlockTypePlainMesh, dt: format.DatatypeReal8, nd: nd,
		meta: meta.bytes(), data: data.bytes(),
	})
	return b
}

// AddPlainVariable appends a variable block defined on the mesh with id
// meshID. Values are given in file order, the first dimension varying
// fastest, and are written as real8.
func (b *FileBuilder) AddPlainVariable(id, name, meshID, units string, dims []int, stagger format.Stagger, values []float64) *FileBuilder {
	total := 1
	for _, n := range dims {
		total *= n
	}
	if total != len(values) {
		panic("sdftest: value count must match the product of dims")
	}

	meta := b.encoder()
	meta.f64(1.0)
	meta.fixedString(units, idLength)
	meta.fixedString(meshID, idLength)
	for _, n := range dims {
		meta.i32(int32(n))
	}
	meta.i32(int32(stagger))

	data := b.encoder()
	for _, v := range values {
		data.f64(v)
	}

	b.blocks = append(b.blocks, builderBlock{
		id: id, name: name,
		bt: format.BlockTypePlainVariable, dt: format.DatatypeReal8, nd: len(dims),
		meta: meta.bytes(), data: data.bytes(),
	})
	return b
}

// AddConstantReal8 appends a real8 constant block.
func (b *FileBuilder) AddConstantReal8(id, name string, v float64) *FileBuilder {
	e := b.encoder()
	e.f64(v)
	return b.AddConstantRaw(id, name, format.DatatypeReal8, e.bytes())
}

// AddConstantInteger4 appends an integer4 constant block.
func (b *FileBuilder) AddConstantInteger4(id, name string, v int32) *FileBuilder {
	e := b.encoder()
	e.i32(v)
	return b.AddConstantRaw(id, name, format.DatatypeInteger4, e.bytes())
}

// AddConstantLogical appends a logical constant block.
func (b *FileBuilder) AddConstantLogical(id, name string, v bool) *FileBuilder {
	raw := []byte{0}
	if v {
		raw[0] = 1
	}
	return b.AddConstantRaw(id, name, format.DatatypeLogical, raw)
}

// AddConstantRaw appends a constant block with caller-supplied value
// bytes. Constants keep their value in the metadata region and have no
// data region.
func (b *FileBuilder) AddConstantRaw(id, name string, dt format.Datatype, raw []byte) *FileBuilder {
	b.blocks = append(b.blocks, builderBlock{
		id: id, name: name,
		bt: format.BlockTypeConstant, dt: dt, nd: 0,
		meta: raw,
	})
	return b
}

// RunInfo holds the fields of a run info block.
type RunInfo struct {
	Version        int32
	Revision       int32
	CommitID       string
	SHA1Sum        string
	CompileMachine string
	CompileFlags   string
	Defines        int64
	CompileDate    int32
	RunDate        int32
	IODate         int32
}

// AddRunInfo appends a run info block.
func (b *FileBuilder) AddRunInfo(id, name string, info RunInfo) *FileBuilder {
	sl := int(b.stringLength)
	meta := b.encoder()
	meta.i32(info.Version)
	meta.i32(info.Revision)
	meta.i64(info.Defines)
	meta.i32(info.CompileDate)
	meta.i32(info.RunDate)
	meta.i32(info.IODate)
	meta.fixedString(info.CommitID, sl)
	meta.fixedString(info.SHA1Sum, sl)
	meta.fixedString(info.CompileMachine, sl)
	meta.fixedString(info.CompileFlags, sl)

	b.blocks = append(b.blocks, builderBlock{
		id: id, name: name,
		bt: format.BlockTypeRunInfo, dt: format.DatatypeOther, nd: 0,
		meta: meta.bytes(),
	})
	return b
}

// AddRawBlock appends a block with caller-supplied type, metadata, and
// data bytes, for exercising block types the reader does not decode.
func (b *FileBuilder) AddRawBlock(id, name string, bt format.BlockType, dt format.Datatype, ndims int, meta, data []byte) *FileBuilder {
	b.blocks = append(b.blocks, builderBlock{
		id: id, name: name, bt: bt, dt: dt, nd: ndims, meta: meta, data: data,
	})
	return b
}

// Bytes renders the file image.
func (b *FileBuilder) Bytes() []byte {
	bhl := blockHeaderFixed + int64(b.stringLength)

	body := b.encoder()
	loc := int64(headerLength)
	for _, blk := range b.blocks {
		metaLoc := loc + bhl
		dataLoc := metaLoc + int64(len(blk.meta))
		next := dataLoc + int64(len(blk.data))

		body.i64(next)
		body.i64(dataLoc)
		body.fixedString(blk.id, idLength)
		body.i64(int64(len(blk.data)))
		body.i32(int32(blk.bt))
		body.i32(int32(blk.dt))
		body.i32(int32(blk.nd))
		body.fixedString(blk.name, int(b.stringLength))
		body.raw(blk.meta)
		body.raw(blk.data)
		loc = next
	}

	h := b.encoder()
	h.raw([]byte(format.Magic))
	h.i32(16911491)
	h.i32(1) // sdf_version
	h.i32(4) // sdf_revision
	h.fixedString(b.codeName, idLength)
	h.i64(headerLength) // first_block_location
	h.i64(loc)          // summary_location
	h.i32(0)            // summary_size
	h.i32(int32(len(b.blocks)))
	h.i32(int32(bhl))
	h.i32(b.step)
	h.f64(b.time)
	h.i32(b.jobID1)
	h.i32(b.jobID2)
	h.i32(b.stringLength)
	h.i32(1) // code_io_version
	if b.restart {
		h.byte(1)
	} else {
		h.byte(0)
	}
	h.byte(0) // other_domains

	return append(h.bytes(), body.bytes()...)
}

// WriteFile writes the image into tb's temp dir and returns its path.
func (b *FileBuilder) WriteFile(tb testing.TB, name string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		tb.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func safeMin(axis []float64) float64 {
	if len(axis) == 0 {
		return 0
	}
	return floats.Min(axis)
}

func safeMax(axis []float64) float64 {
	if len(axis) == 0 {
		return 0
	}
	return floats.Max(axis)
}

type encoder struct {
	buf   bytes.Buffer
	order binary.ByteOrder
}

func (b *FileBuilder) encoder() *encoder {
	return &encoder{order: b.order}
}

func (e *encoder) raw(p []byte) {
	e.buf.Write(p)
}

func (e *encoder) byte(v byte) {
	e.buf.WriteByte(v)
}

func (e *encoder) i32(v int32) {
	var b [4]byte
	e.order.PutUint32(b[:], uint32(v)) //nolint:gosec // G115: raw bit layout.
	e.buf.Write(b[:])
}

func (e *encoder) i64(v int64) {
	var b [8]byte
	e.order.PutUint64(b[:], uint64(v)) //nolint:gosec // G115: raw bit layout.
	e.buf.Write(b[:])
}

func (e *encoder) f64(v float64) {
	var b [8]byte
	e.order.PutUint64(b[:], math.Float64bits(v))
	e.buf.Write(b[:])
}

func (e *encoder) fixedString(s string, n int) {
	b := make([]byte, n)
	copy(b, s)
	e.buf.Write(b)
}

func (e *encoder) bytes() []byte {
	return e.buf.Bytes()
}
