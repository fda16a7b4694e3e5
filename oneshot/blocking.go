// File: oneshot/blocking.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Split one-shot channel whose sender wakes the receiver directly.

package oneshot

import (
	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/core/concurrency"
)

var _ api.Dropper = (*Blocking[int])(nil)

// Blocking is a Slot whose Split binds the pair to a Parker owned by the
// receiving side. Send publishes and then unparks exactly that Parker, so
// Receive can sleep instead of polling.
type Blocking[T any] struct {
	msg cell[T]
	st  splitWord
}

// Split resets the channel and returns a pair bound to a new Parker.
// The goroutine that calls Receive is the one that sleeps on it.
func (c *Blocking[T]) Split() (*BlockingSender[T], *BlockingReceiver[T]) {
	return c.SplitWith(concurrency.NewParker())
}

// SplitWith is Split with a caller-supplied Parker, for a goroutine that
// already owns one.
func (c *Blocking[T]) SplitWith(p *concurrency.Parker) (*BlockingSender[T], *BlockingReceiver[T]) {
	gen := c.reset()
	return &BlockingSender[T]{ch: c, gen: gen, receiver: p},
		&BlockingReceiver[T]{ch: c, gen: gen, parker: p}
}

// Close drops an unread message and invalidates outstanding handles.
func (c *Blocking[T]) Close() {
	c.reset()
}

// Drop implements api.Dropper.
func (c *Blocking[T]) Drop() {
	c.Close()
}

func (c *Blocking[T]) reset() uint64 {
	return c.st.next(c.msg.drop)
}

// BlockingSender is the single-use right to send on a Blocking channel.
type BlockingSender[T any] struct {
	ch       *Blocking[T]
	gen      uint64
	receiver *concurrency.Parker
}

// Send publishes msg, wakes the receiver and consumes the handle. A sender
// from before the latest Split or Close panics with api.ErrStaleHandle.
func (h *BlockingSender[T]) Send(msg T) {
	c := h.ch
	if c == nil {
		panic(api.ErrHandleUsed)
	}
	h.ch = nil
	c.st.claim(h.gen)
	c.msg.put(msg)
	c.st.publish(h.gen)
	h.receiver.Unpark()
}

// BlockingReceiver is the single-use right to receive from a Blocking channel.
type BlockingReceiver[T any] struct {
	ch     *Blocking[T]
	gen    uint64
	parker *concurrency.Parker
}

// Parker returns the Parker the sender will wake.
func (h *BlockingReceiver[T]) Parker() *concurrency.Parker { return h.parker }

// IsReady reports whether the message has been published.
func (h *BlockingReceiver[T]) IsReady() bool {
	c := h.ch
	if c == nil {
		panic(api.ErrHandleUsed)
	}
	return c.st.ready(h.gen)
}

// Receive parks until the message is published, then consumes the handle and
// returns it. Wakeups are re-checked, so spurious ones only cost a loop.
func (h *BlockingReceiver[T]) Receive() T {
	c := h.ch
	if c == nil {
		panic(api.ErrHandleUsed)
	}
	h.ch = nil
	for !c.st.take(h.gen) {
		h.parker.Park()
	}
	msg := c.msg.take()
	c.st.taken(h.gen)
	return msg
}
