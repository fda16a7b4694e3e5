// File: shared/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Arena recycles control blocks through a pool.Slab.

package shared

import "github.com/momentics/hioload-sync/pool"

// Arena allocates control blocks for Pointers of one payload type and takes
// them back when the last handle is dropped. Blocks are never handed to
// callers; a Pointer only reaches its block while it holds a reference.
type Arena[T any] struct {
	slab *pool.Slab[block[T]]
}

// NewArena creates an arena that keeps up to capacity idle blocks.
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{slab: pool.NewSlab[block[T]](capacity)}
}

// New is like the package-level New but draws the block from the arena.
func (a *Arena[T]) New(value T, opts ...Option[T]) *Pointer[T] {
	b := a.slab.Get()
	b.value = value
	b.arena = a
	return attach(b, opts)
}

// Stats reports block usage. InUse counts payloads not yet destroyed.
func (a *Arena[T]) Stats() pool.Stats {
	return a.slab.Stats()
}

func (a *Arena[T]) release(b *block[T]) {
	a.slab.Put(b)
}
