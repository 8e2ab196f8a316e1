// vram.go - bump allocator over a fixed simulated VRAM arena

package s3dsim

import "fmt"

// Arena is a single large byte container with a monotonically increasing
// cursor. Every GPU-resident object is an (offset, length) pair into it.
// There is no free; this models committed hardware memory regions, not
// the host allocator.
type Arena struct {
	buf    []byte
	cursor uint32
}

// NewArena allocates the backing byte slice for a VRAM arena of the given
// size.
func NewArena(size uint32) *Arena {
	return &Arena{buf: make([]byte, size)}
}

// Allocate reserves n bytes and returns the offset at which they begin.
// Allocating past the arena end is a fatal programmer contract violation:
// the bump allocator never wraps.
func (a *Arena) Allocate(n uint32) uint32 {
	if n > uint32(len(a.buf))-a.cursor {
		panic(fmt.Sprintf("s3dsim: VRAM arena exhausted: requested %d bytes, %d remaining", n, uint32(len(a.buf))-a.cursor))
	}
	off := a.cursor
	a.cursor += n
	return off
}

// Cursor reports the current allocation cursor, i.e. the sum of every
// requested size so far.
func (a *Arena) Cursor() uint32 { return a.cursor }

// Bytes returns the arena's backing storage.
func (a *Arena) Bytes() []byte { return a.buf }

// Write copies src into the arena starting at off. The caller must have
// obtained off from Allocate and ensured src fits.
func (a *Arena) Write(off uint32, src []byte) {
	copy(a.buf[off:], src)
}

// Slice returns a sub-slice of the arena's backing storage, sharing the
// same memory (no copy).
func (a *Arena) Slice(off, n uint32) []byte {
	return a.buf[off : off+n]
}
