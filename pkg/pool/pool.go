// Package pool reuses byte buffers across requests to keep response
// serialization allocation free on the hot path.
package pool

import (
	"bytes"
	"sync"
)

var (
	// BytesBuffer is the shared buffer pool used by the HTTP response writer.
	BytesBuffer = NewBytesBufferPool()
)

type BytesBufferPool struct {
	pool sync.Pool
}

func NewBytesBufferPool() *BytesBufferPool {
	return &BytesBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &bytes.Buffer{}
			},
		},
	}
}

func (b *BytesBufferPool) Get() *bytes.Buffer {
	return b.pool.Get().(*bytes.Buffer)
}

func (b *BytesBufferPool) Put(buf *bytes.Buffer) {
	buf.Reset()
	b.pool.Put(buf)
}
