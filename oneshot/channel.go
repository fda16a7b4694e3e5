// File: oneshot/channel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package oneshot

import (
	"sync/atomic"

	"github.com/momentics/hioload-sync/api"
)

var (
	_ api.Oneshot[int] = (*Channel[int])(nil)
	_ api.Dropper      = (*Channel[int])(nil)
)

// Channel is a one-shot channel shared by reference between the sending and
// the receiving goroutine. The zero value is ready to use.
type Channel[T any] struct {
	msg   cell[T]
	inUse atomic.Bool // a Send has claimed the slot
	ready atomic.Bool // a message is published and not yet received
}

// NewChannel returns an empty Channel.
func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Send publishes msg. It panics with api.ErrAlreadySent on a second call.
func (c *Channel[T]) Send(msg T) {
	if c.inUse.Swap(true) {
		panic(api.ErrAlreadySent)
	}
	c.msg.put(msg)
	c.ready.Store(true)
}

// IsReady reports whether a message can be received.
func (c *Channel[T]) IsReady() bool {
	return c.ready.Load()
}

// Receive takes the message. It panics with api.ErrNotReady if nothing has
// been published yet or the message was already received; check IsReady first.
func (c *Channel[T]) Receive() T {
	// The swap both claims the message and makes the sender's writes visible.
	if !c.ready.Swap(false) {
		panic(api.ErrNotReady)
	}
	return c.msg.take()
}

// Close drops an unread message. The caller must be the last user of c;
// any Send or Receive afterwards panics.
func (c *Channel[T]) Close() {
	if c.ready.Load() {
		c.msg.drop()
		c.ready.Store(false)
	}
	c.inUse.Store(true)
}

// Drop implements api.Dropper: a Channel hosted in a shared.Pointer is closed
// when the last handle is dropped.
func (c *Channel[T]) Drop() {
	c.Close()
}
