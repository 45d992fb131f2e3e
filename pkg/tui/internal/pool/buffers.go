// ABOUTME: sync.Pool wrappers for the byte and string builders used per frame
// ABOUTME: Row rendering and frame flushing reuse buffers instead of allocating each redraw

package pool

import (
	"bytes"
	"strings"
	"sync"
)

// maxPooled caps retained buffer capacity so one huge frame does not pin memory.
const maxPooled = 1 << 20

var bytesBufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBytesBuffer returns an empty bytes.Buffer from the pool.
func GetBytesBuffer() *bytes.Buffer {
	buf := bytesBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBytesBuffer returns a bytes.Buffer to the pool.
func PutBytesBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooled {
		return
	}
	buf.Reset()
	bytesBufferPool.Put(buf)
}

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// GetStringBuilder returns an empty strings.Builder from the pool.
func GetStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// PutStringBuilder returns a strings.Builder to the pool. Strings already
// obtained from it stay valid: Reset drops the backing array.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil || sb.Cap() > maxPooled {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}
