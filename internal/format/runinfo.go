package format

import (
	"io"

	"github.com/scigolib/sdf/internal/utils"
)

// readRunInfo decodes a run info block into a Metadata block. Field
// names and their order follow the layout EPOCH writes: code version
// and revision, the build identifiers, then the timestamps as raw unix
// seconds.
func readRunInfo(r io.ReaderAt, loc int64, bh BlockHeader, fh *FileHeader) (*Metadata, error) {
	sl := int(fh.StringLength)
	metaLen := 4 + 4 + 8 + 4 + 4 + 4 + 4*sl
	buf := utils.GetBuffer(metaLen)
	defer utils.ReleaseBuffer(buf)
	if _, err := r.ReadAt(buf, loc+int64(fh.BlockHeaderLength)); err != nil {
		return nil, utils.WrapError("reading run info", err)
	}

	d := utils.NewDecoder(buf, fh.Order)
	version := d.Int32()
	revision := d.Int32()
	defines := d.Int64()
	compileDate := d.Int32()
	runDate := d.Int32()
	ioDate := d.Int32()
	commitID := d.String(sl)
	sha1sum := d.String(sl)
	compileMachine := d.String(sl)
	compileFlags := d.String(sl)
	if err := d.Err(); err != nil {
		return nil, utils.WrapError("decoding run info", err)
	}

	m := NewMetadata(bh.Name)
	m.BlockHeader = bh
	m.Set("version", version)
	m.Set("revision", revision)
	m.Set("commit_id", commitID)
	m.Set("sha1sum", sha1sum)
	m.Set("compile_machine", compileMachine)
	m.Set("compile_flags", compileFlags)
	m.Set("defines", defines)
	m.Set("compile_date", compileDate)
	m.Set("run_date", runDate)
	m.Set("io_date", ioDate)
	return m, nil
}
