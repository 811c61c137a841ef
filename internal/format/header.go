package format

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/scigolib/sdf/internal/utils"
)

// ErrNotSDF reports that a file does not start with a valid SDF header.
var ErrNotSDF = errors.New("not an SDF file")

// FileHeader holds the decoded 106-byte SDF file header.
type FileHeader struct {
	// Order is the byte order the file was written in, detected from
	// the endianness sentinel.
	Order binary.ByteOrder

	SDFVersion  int32
	SDFRevision int32
	CodeName    string

	FirstBlockLocation int64
	SummaryLocation    int64
	SummarySize        int32
	NBlocks            int32
	BlockHeaderLength  int32

	Step   int32
	Time   float64
	JobID1 int32
	JobID2 int32

	// StringLength is the width of variable-length string fields in
	// block headers and metadata regions.
	StringLength int32

	CodeIOVersion int32
	Restart       bool
	OtherDomains  bool
}

// CheckMagic reports whether buf begins with the SDF file signature. It
// needs at least the first 4 bytes of a file.
func CheckMagic(buf []byte) bool {
	return len(buf) >= len(Magic) && string(buf[:len(Magic)]) == Magic
}

// ReadFileHeader decodes the file header at the start of r. It returns
// ErrNotSDF when the magic or the endianness sentinel is wrong.
func ReadFileHeader(r io.ReaderAt) (*FileHeader, error) {
	buf := utils.GetBuffer(headerLength)
	defer utils.ReleaseBuffer(buf)

	n, err := r.ReadAt(buf, 0)
	if n < headerLength {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file shorter than %d byte header", ErrNotSDF, headerLength)
		}
		return nil, utils.WrapError("reading file header", err)
	}

	if !CheckMagic(buf) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrNotSDF, buf[:len(Magic)])
	}

	// The sentinel decodes to its written value only in the native
	// byte order, so try both.
	var order binary.ByteOrder = binary.LittleEndian
	if int32(binary.LittleEndian.Uint32(buf[4:8])) != endiannessCheck {
		if int32(binary.BigEndian.Uint32(buf[4:8])) != endiannessCheck {
			return nil, fmt.Errorf("%w: bad endianness sentinel", ErrNotSDF)
		}
		order = binary.BigEndian
	}

	d := utils.NewDecoder(buf[8:], order)
	h := &FileHeader{Order: order}
	h.SDFVersion = d.Int32()
	h.SDFRevision = d.Int32()
	h.CodeName = d.String(idLength)
	h.FirstBlockLocation = d.Int64()
	h.SummaryLocation = d.Int64()
	h.SummarySize = d.Int32()
	h.NBlocks = d.Int32()
	h.BlockHeaderLength = d.Int32()
	h.Step = d.Int32()
	h.Time = d.Float64()
	h.JobID1 = d.Int32()
	h.JobID2 = d.Int32()
	h.StringLength = d.Int32()
	h.CodeIOVersion = d.Int32()
	h.Restart = d.Byte() != 0
	h.OtherDomains = d.Byte() != 0
	if err := d.Err(); err != nil {
		return nil, utils.WrapError("decoding file header", err)
	}

	if h.NBlocks < 0 {
		return nil, fmt.Errorf("negative block count %d", h.NBlocks)
	}
	if h.StringLength <= 0 || h.StringLength > 4096 {
		return nil, fmt.Errorf("implausible string length %d", h.StringLength)
	}
	if h.BlockHeaderLength != blockHeaderFixed+h.StringLength {
		return nil, fmt.Errorf("block header length %d inconsistent with string length %d",
			h.BlockHeaderLength, h.StringLength)
	}
	if h.NBlocks > 0 && h.FirstBlockLocation < headerLength {
		return nil, fmt.Errorf("first block location %d inside file header", h.FirstBlockLocation)
	}
	return h, nil
}
