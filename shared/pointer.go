// File: shared/pointer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shared

import (
	"log"
	"math"
	"sync/atomic"

	"github.com/momentics/hioload-sync/api"
	"golang.org/x/sys/cpu"
)

// maxRefs bounds the count: a clone observing more than this aborts before
// the counter can wrap to zero while handles are still live.
var maxRefs uint64 = math.MaxUint64 / 2

// abort terminates the process. Replaced in tests.
var abort = func(err error) {
	log.Fatalf("shared: %v", err)
}

// block is the control block: one allocation pairing the count with the payload.
type block[T any] struct {
	refs  atomic.Uint64
	_     cpu.CacheLinePad
	value T
	drop  func(*T)
	arena *Arena[T]
}

// destroy runs once, on the goroutine that took the count from 1 to 0.
// Nothing else references the block at that point.
func (b *block[T]) destroy() {
	if b.drop != nil {
		b.drop(&b.value)
		var zero T
		b.value = zero
	} else {
		api.DropValue(&b.value)
	}
	if a := b.arena; a != nil {
		a.release(b)
	}
}

// Option configures a new Pointer.
type Option[T any] func(*block[T])

// WithDrop installs fn as the payload destructor in place of api.Dropper.
func WithDrop[T any](fn func(*T)) Option[T] {
	return func(b *block[T]) { b.drop = fn }
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Pointer is one handle on a shared payload. Handles are passed around by
// pointer; copying a Pointer value would duplicate ownership without a Clone.
type Pointer[T any] struct {
	_ noCopy
	b *block[T]
}

// New allocates a control block with a count of one.
func New[T any](value T, opts ...Option[T]) *Pointer[T] {
	b := &block[T]{value: value}
	return attach(b, opts)
}

func attach[T any](b *block[T], opts []Option[T]) *Pointer[T] {
	for _, opt := range opts {
		opt(b)
	}
	b.refs.Store(1)
	return &Pointer[T]{b: b}
}

func (p *Pointer[T]) ctl() *block[T] {
	if p == nil || p.b == nil {
		panic(api.ErrReleased)
	}
	return p.b
}

// Clone returns a new handle on the same payload.
func (p *Pointer[T]) Clone() *Pointer[T] {
	b := p.ctl()
	// No data access depends on the count here, so the increment needs no
	// ordering beyond atomicity.
	if b.refs.Add(1)-1 > maxRefs {
		abort(api.ErrRefOverflow)
	}
	return &Pointer[T]{b: b}
}

// Value returns a copy of the payload. Any number of handles may read
// concurrently; mutation goes through GetMut only.
func (p *Pointer[T]) Value() T {
	return p.ctl().value
}

// GetMut returns the payload for mutation when p is the only live handle.
// Loading the count synchronizes with the decrement of every handle dropped
// before, so their writes are visible before the caller mutates.
//
// Nothing stops a later Clone from sharing the payload again, so the caller
// must stop using the returned pointer before p is next cloned.
func (p *Pointer[T]) GetMut() (*T, bool) {
	b := p.ctl()
	if b.refs.Load() != 1 {
		return nil, false
	}
	return &b.value, true
}

// Count returns a snapshot of the number of live handles.
func (p *Pointer[T]) Count() uint64 {
	return p.ctl().refs.Load()
}

// Drop releases this handle. Dropping the last handle destroys the payload.
// Any later use of p panics with api.ErrReleased.
func (p *Pointer[T]) Drop() {
	b := p.ctl()
	p.b = nil
	// The decrement publishes this goroutine's writes. The goroutine that sees
	// it reach zero has synchronized with every earlier decrement, since they
	// form one modification order on refs, so it alone owns the block.
	if b.refs.Add(^uint64(0)) == 0 {
		b.destroy()
	}
}
