package tui

import (
	"bytes"
	"sync"
)

// Every keypress renders a frame, and the grid writes one styled string per
// visible cell. Frames are built in pooled buffers that keep their capacity.

// maxPooledFrame bounds what goes back to the pool, so one frame for a huge
// terminal does not stay resident.
const maxPooledFrame = 256 << 10

var framePool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// newFrame returns an empty buffer with room for about size bytes.
func newFrame(size int) *bytes.Buffer {
	b := framePool.Get().(*bytes.Buffer)
	b.Reset()
	b.Grow(max(0, size))
	return b
}

// finish copies the frame out and recycles the buffer.
func finish(b *bytes.Buffer) string {
	s := b.String()
	if b.Cap() <= maxPooledFrame {
		framePool.Put(b)
	}
	return s
}
