package utils

import "sync"

// SDF headers and block metadata regions are small: the file header is 106
// bytes and a block header is 132 bytes with the default string length, so
// the pool hands out short buffers.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 512)
	},
}

// GetBuffer returns a byte slice of the requested size from the pool.
func GetBuffer(size int) []byte {
	buf := bufferPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}

// ReleaseBuffer returns a buffer to the pool.
func ReleaseBuffer(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bufferPool.Put(buf[:0])
}
