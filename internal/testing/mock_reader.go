// Package testing provides I/O test doubles for the SDF reader.
package testing

import (
	"errors"
	"io"
)

// MockReaderAt serves a byte slice through io.ReaderAt and can inject
// failures, so reader tests can hit truncation and I/O error paths
// without touching the filesystem.
type MockReaderAt struct {
	data []byte

	failAt  int64
	failErr error
}

// NewMockReaderAt creates a reader over the given file image.
func NewMockReaderAt(data []byte) *MockReaderAt {
	return &MockReaderAt{data: data, failAt: -1}
}

// FailAt makes every read that touches offset off or beyond return err
// instead of data. Reads entirely below off still succeed.
func (m *MockReaderAt) FailAt(off int64, err error) {
	m.failAt = off
	m.failErr = err
}

// ReadAt implements io.ReaderAt.
func (m *MockReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	if m.failAt >= 0 && off+int64(len(p)) > m.failAt {
		if off >= m.failAt {
			return 0, m.failErr
		}
		end := m.failAt
		if end > int64(len(m.data)) {
			end = int64(len(m.data))
		}
		n := copy(p, m.data[off:end])
		return n, m.failErr
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
