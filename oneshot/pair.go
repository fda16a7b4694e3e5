// File: oneshot/pair.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Free-standing sender/receiver pair: the two handles share ownership of the
// channel, so no caller has to keep it alive.

package oneshot

import (
	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/shared"
)

// NewPair returns both ends of a fresh Channel held by a shared.Pointer.
// Each handle owns one reference and gives it up when used or closed; the
// last one to let go closes the Channel, dropping a message that was sent
// but never received.
func NewPair[T any]() (*PairSender[T], *PairReceiver[T]) {
	owner := shared.New(NewChannel[T]())
	return &PairSender[T]{ch: owner.Clone()}, &PairReceiver[T]{ch: owner}
}

// PairSender is the single-use right to send on a pair.
type PairSender[T any] struct {
	ch *shared.Pointer[*Channel[T]]
}

// Send publishes msg and consumes the handle.
func (h *PairSender[T]) Send(msg T) {
	p := h.ch
	if p == nil {
		panic(api.ErrHandleUsed)
	}
	h.ch = nil
	defer p.Drop()
	p.Value().Send(msg)
}

// Close gives up the handle without sending. It does nothing once the
// handle has been used.
func (h *PairSender[T]) Close() {
	if p := h.ch; p != nil {
		h.ch = nil
		p.Drop()
	}
}

// PairReceiver is the single-use right to receive from a pair.
type PairReceiver[T any] struct {
	ch *shared.Pointer[*Channel[T]]
}

// IsReady reports whether the message has been published.
func (h *PairReceiver[T]) IsReady() bool {
	p := h.ch
	if p == nil {
		panic(api.ErrHandleUsed)
	}
	return p.Value().IsReady()
}

// Receive consumes the handle and returns the message. It panics with
// api.ErrNotReady if the message has not been published yet.
func (h *PairReceiver[T]) Receive() T {
	p := h.ch
	if p == nil {
		panic(api.ErrHandleUsed)
	}
	h.ch = nil
	defer p.Drop()
	return p.Value().Receive()
}

// Close gives up the handle without receiving; an unread message is dropped
// if the sender is already gone. It does nothing once the handle has been
// used.
func (h *PairReceiver[T]) Close() {
	if p := h.ch; p != nil {
		h.ch = nil
		p.Drop()
	}
}
