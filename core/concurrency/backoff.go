// File: core/concurrency/backoff.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Spin-wait helper used by busy-waiting primitives.

package concurrency

import "runtime"

// DefaultYieldAfter is the number of relax hints issued before a spinning
// goroutine hands its P back to the scheduler once.
const DefaultYieldAfter = 64

// Backoff drives one spin-wait loop. The zero value is ready to use.
// A Backoff is owned by the spinning goroutine and must not be shared.
type Backoff struct {
	// YieldAfter overrides DefaultYieldAfter when positive.
	YieldAfter int

	spins int
}

// Spin executes a processor spin-wait hint, and every YieldAfter calls yields
// the processor with runtime.Gosched. Yielding never parks the goroutine: it
// stays runnable, so this is still busy-waiting.
func (b *Backoff) Spin() {
	b.spins++
	limit := b.YieldAfter
	if limit <= 0 {
		limit = DefaultYieldAfter
	}
	if b.spins%limit == 0 {
		runtime.Gosched()
		return
	}
	cpuRelax()
}

// Spins returns how many times Spin was called since the last Reset.
func (b *Backoff) Spins() int { return b.spins }

// Reset clears the spin counter.
func (b *Backoff) Reset() { b.spins = 0 }
