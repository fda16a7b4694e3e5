// File: pool/slab_pool.go
// Package pool implements lock-free slab recycling of fixed-type objects.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-sync/core/concurrency"
)

const defaultSlabCapacity = 1024

// Stats reports slab usage counters.
type Stats struct {
	Allocated uint64 // objects created because the free list was empty
	Reused    uint64 // objects served from the free list
	Released  uint64 // objects handed back with Put
	Discarded uint64 // released objects left to the GC because the free list was full
	InUse     int64
}

// Slab recycles *T objects through a bounded free list.
// Put zeroes the object before it becomes visible to another Get.
type Slab[T any] struct {
	// The queue takes the place of a free-list stack.
	free *concurrency.LockFreeQueue[*T]

	allocated atomic.Uint64
	reused    atomic.Uint64
	released  atomic.Uint64
	discarded atomic.Uint64
}

// NewSlab creates a slab whose free list holds up to capacity objects.
func NewSlab[T any](capacity int) *Slab[T] {
	if capacity <= 0 {
		capacity = defaultSlabCapacity
	}
	return &Slab[T]{free: concurrency.NewLockFreeQueue[*T](capacity)}
}

// Get returns a zeroed object, recycled when possible.
func (s *Slab[T]) Get() *T {
	if obj, ok := s.free.Dequeue(); ok {
		s.reused.Add(1)
		return obj
	}
	s.allocated.Add(1)
	return new(T)
}

// Put zeroes obj and returns it to the free list. obj must not be used by the
// caller afterwards.
func (s *Slab[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	var zero T
	*obj = zero
	s.released.Add(1)
	if !s.free.Enqueue(obj) {
		s.discarded.Add(1)
	}
}

// Stats returns a snapshot of the slab counters.
func (s *Slab[T]) Stats() Stats {
	allocated := s.allocated.Load()
	reused := s.reused.Load()
	released := s.released.Load()
	return Stats{
		Allocated: allocated,
		Reused:    reused,
		Released:  released,
		Discarded: s.discarded.Load(),
		InUse:     int64(allocated+reused) - int64(released),
	}
}

// Idle returns the number of objects waiting on the free list.
func (s *Slab[T]) Idle() int {
	return s.free.Len()
}
