// Package sdf provides a pure Go reader for SDF files, the
// self-describing binary output format of particle-in-cell codes such
// as EPOCH. It reads a file's block structure and assembles it into a
// labeled dataset: variables carry named coordinate axes, mesh axes
// become coordinate arrays, and header, run info, and constant blocks
// become dataset attributes.
//
// Cell-centred values in SDF live on the midpoints of the mesh that
// node-centred values live on, so a file describes two grids per mesh.
// Dataset assembly matches every variable axis to the right grid by
// comparing axis sizes, which is how plots end up against the correct
// coordinates without callers knowing about staggering.
package sdf

import (
	"os"
	"path/filepath"

	"github.com/scigolib/sdf/internal/format"
	"github.com/scigolib/sdf/internal/utils"
)

// File is a fully read SDF file: the decoded header and every block,
// including the synthesized midpoint meshes and the header pseudo-block.
// All data is materialized at open time, so a File holds no open handle
// and needs no Close.
type File struct {
	path   string
	header *format.FileHeader
	blocks []format.Block
	byName map[string]format.Block
}

// CanOpen reports whether path looks like an SDF file. A readable file
// is judged by its magic bytes alone, so one too short to hold them is
// not an SDF file; the .sdf or .SDF extension is consulted only when
// the file cannot be opened.
func CanOpen(path string) bool {
	//nolint:gosec // G304: opening a caller-provided path is the point of this library.
	f, err := os.Open(path)
	if err != nil {
		return hasSDFExt(path)
	}
	defer func() { _ = f.Close() }()

	buf := utils.GetBuffer(len(format.Magic))
	defer utils.ReleaseBuffer(buf)
	n, _ := f.ReadAt(buf, 0)
	return format.CheckMagic(buf[:n])
}

func hasSDFExt(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".sdf" || ext == ".SDF"
}

// Open reads the SDF file at path. The whole file is decoded eagerly
// and the handle is closed before Open returns.
func Open(path string) (*File, error) {
	//nolint:gosec // G304: opening a caller-provided path is the point of this library.
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, utils.WrapError("reading "+path, err)
	}
	header, err := format.ReadFileHeader(f)
	if err != nil {
		return nil, utils.WrapError("reading "+path, err)
	}
	blocks, err := format.ReadBlocks(f, header, st.Size())
	if err != nil {
		return nil, utils.WrapError("reading "+path, err)
	}

	file := &File{
		path:   path,
		header: header,
		blocks: make([]format.Block, 0, len(blocks)+1),
		byName: make(map[string]format.Block, len(blocks)+1),
	}
	file.blocks = append(file.blocks, headerBlock(path, header))
	file.blocks = append(file.blocks, blocks...)
	for _, b := range file.blocks {
		file.byName[b.Header().Name] = b
	}
	return file, nil
}

// headerBlock exposes the file header as a metadata block named
// "Header", mirroring how SDF readers conventionally present it.
func headerBlock(path string, h *format.FileHeader) *format.Metadata {
	m := format.NewMetadata("Header")
	m.Set("filename", path)
	m.Set("file_version", h.SDFVersion)
	m.Set("file_revision", h.SDFRevision)
	m.Set("code_name", h.CodeName)
	m.Set("step", h.Step)
	m.Set("time", h.Time)
	m.Set("jobid1", h.JobID1)
	m.Set("jobid2", h.JobID2)
	m.Set("code_io_version", h.CodeIOVersion)
	m.Set("restart_flag", h.Restart)
	m.Set("other_domains", h.OtherDomains)
	return m
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// Header returns the decoded file header.
func (f *File) Header() *format.FileHeader {
	return f.header
}

// Blocks returns every block in file order. The header pseudo-block
// comes first; each mesh is followed by its synthesized midpoint mesh.
func (f *File) Blocks() []format.Block {
	return f.blocks
}

// Block returns the block with the given name. When several blocks
// share a name the last one in file order wins, matching dictionary
// semantics of other SDF readers.
func (f *File) Block(name string) (format.Block, bool) {
	b, ok := f.byName[name]
	return b, ok
}
