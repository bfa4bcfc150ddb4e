package galaxy

import (
	"github.com/gosam-model/gosam/dyn"
)

// ChunkSize is the buffer growth quantum. Forests routinely emit tens
// of thousands of galaxies, so growth comes in large flat steps rather
// than doubling.
const ChunkSize = 10000

// Buffer is a growable array of galaxies. Indices are stable across
// growth; any cached Data() view must be re-fetched after an Append
// that grows the buffer.
type Buffer struct {
	a *dyn.Array[Galaxy]
}

// NewBuffer returns an empty buffer with one chunk of capacity.
func NewBuffer() *Buffer {
	return &Buffer{dyn.Chunked[Galaxy](ChunkSize)}
}

// Append adds g and returns its index.
func (b *Buffer) Append(g Galaxy) int { return b.a.Append(g) }

// Len returns the number of galaxies in the buffer.
func (b *Buffer) Len() int { return b.a.Len() }

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int { return b.a.Cap() }

// At returns a pointer to galaxy i, valid until the next growth.
func (b *Buffer) At(i int) *Galaxy { return b.a.At(i) }

// Data returns the live galaxies as a view, valid until the next
// growth.
func (b *Buffer) Data() []Galaxy { return b.a.Data() }

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() { b.a.Reset() }

// Growths returns how many times the buffer has grown.
func (b *Buffer) Growths() int { return b.a.Growths() }
