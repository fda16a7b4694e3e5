// File: core/concurrency/parker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Parker suspends one goroutine until another one unparks it.

package concurrency

import (
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sys/cpu"
)

const (
	parkEmpty    uint32 = 0
	parkNotified uint32 = 1
)

// Parker is a single-owner wake token, the goroutine analogue of a thread's
// park/unpark pair. Exactly one goroutine calls Park; any goroutine may call
// Unpark. An Unpark issued before Park makes the next Park return at once.
//
// Park may return spuriously. Callers must loop on their own condition.
type Parker struct {
	state atomic.Uint32 // futex word on Linux
	_     cpu.CacheLinePad
	id    uuid.UUID
	sys   parkerSys
}

// NewParker returns a Parker with a fresh identity.
// A Parker must not be copied after first use.
func NewParker() *Parker {
	p := &Parker{id: uuid.New()}
	p.sys.init()
	return p
}

// ID identifies the goroutine that owns this Parker.
func (p *Parker) ID() uuid.UUID { return p.id }

// String implements fmt.Stringer.
func (p *Parker) String() string { return "parker-" + p.id.String() }

// Park blocks until a token is available and consumes it.
func (p *Parker) Park() {
	if p.state.CompareAndSwap(parkNotified, parkEmpty) {
		return
	}
	p.sys.wait(&p.state)
	p.state.CompareAndSwap(parkNotified, parkEmpty)
}

// Unpark makes a token available and wakes the parked goroutine, if any.
func (p *Parker) Unpark() {
	if p.state.Swap(parkNotified) == parkEmpty {
		p.sys.wake(&p.state)
	}
}
