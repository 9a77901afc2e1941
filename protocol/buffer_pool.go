package protocol

import (
	"bytes"
	"sync"
)

// bufferPool is a pool of bytes.Buffer objects reused by the method, header
// and frame encoders. Buffers that grew past 64KB are left to the GC so one
// large message does not pin memory in the pool.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

// getBuffer gets a buffer from the pool
func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}
