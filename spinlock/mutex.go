// File: spinlock/mutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spinlock

import (
	"sync/atomic"

	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/core/concurrency"
	"golang.org/x/sys/cpu"
)

var _ api.Locker[int, *Guard[int]] = (*Mutex[int])(nil)

// Stats reports lock usage counters.
type Stats struct {
	Acquired  uint64 // successful acquisitions
	Contended uint64 // acquisitions that had to spin at least once
}

// Mutex is a spin lock collocated with the value it guards.
// The zero value is an unlocked Mutex holding the zero T.
type Mutex[T any] struct {
	locked atomic.Bool
	_      cpu.CacheLinePad
	value  T

	yieldAfter atomic.Int64
	acquired   atomic.Uint64
	contended  atomic.Uint64
}

// Option configures a Mutex.
type Option func(*options)

type options struct {
	yieldAfter int
}

// WithYieldAfter sets how many spin hints a waiter issues between scheduler
// yields. Zero keeps concurrency.DefaultYieldAfter.
func WithYieldAfter(n int) Option {
	return func(o *options) { o.yieldAfter = n }
}

// New returns an unlocked Mutex guarding value.
func New[T any](value T, opts ...Option) *Mutex[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	m := &Mutex[T]{value: value}
	m.yieldAfter.Store(int64(o.yieldAfter))
	return m
}

// SetYieldAfter retunes the waiters that start spinning after the call.
// Zero restores concurrency.DefaultYieldAfter.
func (m *Mutex[T]) SetYieldAfter(n int) {
	m.yieldAfter.Store(int64(n))
}

// Lock spins until the lock is acquired and returns the guard that owns it.
func (m *Mutex[T]) Lock() *Guard[T] {
	if !m.locked.Swap(true) {
		m.acquired.Add(1)
		return &Guard[T]{m: m}
	}
	b := concurrency.Backoff{YieldAfter: int(m.yieldAfter.Load())}
	for {
		b.Spin()
		// Test before swapping so waiters spin on a shared cache line.
		if !m.locked.Load() && !m.locked.Swap(true) {
			break
		}
	}
	m.acquired.Add(1)
	m.contended.Add(1)
	return &Guard[T]{m: m}
}

// TryLock acquires the lock only if it is free.
func (m *Mutex[T]) TryLock() (*Guard[T], bool) {
	if m.locked.Swap(true) {
		return nil, false
	}
	m.acquired.Add(1)
	return &Guard[T]{m: m}, true
}

// With runs fn while holding the lock. The lock is released even if fn panics.
func (m *Mutex[T]) With(fn func(v *T)) {
	g := m.Lock()
	defer g.Unlock()
	fn(g.Value())
}

// Stats returns a snapshot of the lock counters.
func (m *Mutex[T]) Stats() Stats {
	return Stats{
		Acquired:  m.acquired.Load(),
		Contended: m.contended.Load(),
	}
}

// Guard is exclusive access to a Mutex's payload. It belongs to the goroutine
// that acquired it and must not be used after Unlock.
type Guard[T any] struct {
	m *Mutex[T]
}

// Value returns the guarded payload. The pointer must not outlive the guard.
func (g *Guard[T]) Value() *T {
	if g.m == nil {
		panic(api.ErrReleased)
	}
	return &g.m.value
}

// Unlock releases the lock. The store publishes every write made under the
// guard to the next goroutine that wins the flag.
func (g *Guard[T]) Unlock() {
	m := g.m
	if m == nil {
		panic(api.ErrReleased)
	}
	g.m = nil
	m.locked.Store(false)
}
