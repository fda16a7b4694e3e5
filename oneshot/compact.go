// File: oneshot/compact.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Memory-compact one-shot channel: the whole protocol lives in one word.

package oneshot

import (
	"fmt"
	"sync/atomic"

	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/core/concurrency"
)

// State is the position of a Compact channel in its handoff.
type State uint32

const (
	Empty   State = iota // nothing sent
	Writing              // a sender owns the slot
	Ready                // message published
	Reading              // a receiver owns the slot, or the channel is closed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Writing:
		return "writing"
	case Ready:
		return "ready"
	case Reading:
		return "reading"
	}
	return fmt.Sprintf("state(%d)", uint32(s))
}

// The low two bits hold the State; the rest hold the split generation.
const (
	stateBits = 2
	stateMask = 1<<stateBits - 1
	genMask   = 1<<(32-stateBits) - 1
)

func pack(gen uint32, s State) uint32 { return gen<<stateBits | uint32(s) }
func unpackState(w uint32) State      { return State(w & stateMask) }
func unpackGen(w uint32) uint32       { return w >> stateBits }

var (
	_ api.Oneshot[int] = (*Compact[int])(nil)
	_ api.Dropper      = (*Compact[int])(nil)
)

// Compact is a one-shot channel driven by a single state word instead of two
// flags. It can be shared by reference or split into single-use handles.
// The zero value is an empty channel.
type Compact[T any] struct {
	msg  cell[T]
	word atomic.Uint32
}

// NewCompact returns an empty Compact channel.
func NewCompact[T any]() *Compact[T] {
	return &Compact[T]{}
}

// State returns the current state.
func (c *Compact[T]) State() State {
	return unpackState(c.word.Load())
}

// Send publishes msg. It panics with api.ErrAlreadySent on a second call.
func (c *Compact[T]) Send(msg T) {
	c.send(unpackGen(c.word.Load()), msg)
}

// IsReady reports whether a message can be received.
func (c *Compact[T]) IsReady() bool {
	return c.State() == Ready
}

// Receive takes the message. It panics with api.ErrNotReady if nothing has
// been published or the message was already taken.
func (c *Compact[T]) Receive() T {
	return c.receive(unpackGen(c.word.Load()))
}

// Split resets the channel and returns a fresh pair of handles; an unread
// message from before is dropped and older handles become stale.
func (c *Compact[T]) Split() (*CompactSender[T], *CompactReceiver[T]) {
	gen := c.reset(Empty)
	return &CompactSender[T]{ch: c, gen: gen}, &CompactReceiver[T]{ch: c, gen: gen}
}

// Close drops an unread message. Afterwards every Send and Receive panics.
func (c *Compact[T]) Close() {
	c.reset(Reading)
}

// Drop implements api.Dropper.
func (c *Compact[T]) Drop() {
	c.Close()
}

// reset starts the next generation in state next. A sender caught between
// claiming the slot and publishing is waited out, so its message either
// lands before the reset and is dropped here or its handle goes stale.
func (c *Compact[T]) reset(next State) uint32 {
	var b concurrency.Backoff
	for {
		w := c.word.Load()
		if unpackState(w) == Writing {
			b.Spin()
			continue
		}
		gen := (unpackGen(w) + 1) & genMask
		if c.word.CompareAndSwap(w, pack(gen, next)) {
			if unpackState(w) == Ready {
				c.msg.drop()
			}
			return gen
		}
	}
}

func (c *Compact[T]) send(gen uint32, msg T) {
	// Claiming the slot publishes nothing; the Ready store below does.
	if !c.word.CompareAndSwap(pack(gen, Empty), pack(gen, Writing)) {
		c.fail(gen, api.ErrAlreadySent)
	}
	c.msg.put(msg)
	c.word.Store(pack(gen, Ready))
}

func (c *Compact[T]) receive(gen uint32) T {
	// Claims the message and synchronizes with the Ready store.
	if !c.word.CompareAndSwap(pack(gen, Ready), pack(gen, Reading)) {
		c.fail(gen, api.ErrNotReady)
	}
	return c.msg.take()
}

func (c *Compact[T]) fail(gen uint32, err *api.Error) {
	if unpackGen(c.word.Load()) != gen {
		panic(api.ErrStaleHandle)
	}
	panic(err)
}

// CompactSender is the single-use right to send on a Compact channel.
type CompactSender[T any] struct {
	ch  *Compact[T]
	gen uint32
}

// Send publishes msg and consumes the handle.
func (h *CompactSender[T]) Send(msg T) {
	c := h.ch
	if c == nil {
		panic(api.ErrHandleUsed)
	}
	h.ch = nil
	c.send(h.gen, msg)
}

// CompactReceiver is the single-use right to receive from a Compact channel.
type CompactReceiver[T any] struct {
	ch  *Compact[T]
	gen uint32
}

// IsReady reports whether the message has been published.
func (h *CompactReceiver[T]) IsReady() bool {
	c := h.ch
	if c == nil {
		panic(api.ErrHandleUsed)
	}
	w := c.word.Load()
	if unpackGen(w) != h.gen {
		panic(api.ErrStaleHandle)
	}
	return unpackState(w) == Ready
}

// Receive consumes the handle and returns the message. It panics with
// api.ErrNotReady if the message has not been published yet.
func (h *CompactReceiver[T]) Receive() T {
	c := h.ch
	if c == nil {
		panic(api.ErrHandleUsed)
	}
	h.ch = nil
	return c.receive(h.gen)
}
