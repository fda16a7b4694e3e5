// File: oneshot/slot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Split one-shot channel: the channel stays with the caller, the two
// capability handles travel to the goroutines that use them.

package oneshot

import "github.com/momentics/hioload-sync/api"

var _ api.Dropper = (*Slot[int])(nil)

// Slot is the storage behind a Sender/Receiver pair. The zero value is ready
// to Split. The Slot must outlive both handles.
type Slot[T any] struct {
	msg cell[T]
	st  splitWord
}

// Split resets the slot and returns a fresh pair of handles. A message left
// unread by an earlier pair is dropped; handles from that pair become stale.
// A Send or Receive already in progress on the earlier pair finishes first.
func (s *Slot[T]) Split() (*Sender[T], *Receiver[T]) {
	gen := s.reset()
	return &Sender[T]{slot: s, gen: gen}, &Receiver[T]{slot: s, gen: gen}
}

// Close drops an unread message and invalidates outstanding handles.
func (s *Slot[T]) Close() {
	s.reset()
}

// Drop implements api.Dropper, so a Slot hosted in a shared.Pointer is closed
// by the last handle.
func (s *Slot[T]) Drop() {
	s.Close()
}

func (s *Slot[T]) reset() uint64 {
	return s.st.next(s.msg.drop)
}

// Sender is the single-use right to send on a Slot.
type Sender[T any] struct {
	slot *Slot[T]
	gen  uint64
}

// Send publishes msg and consumes the handle. It panics with
// api.ErrStaleHandle if the slot was split or closed since the handle was
// issued; a Split racing this Send waits for it and then drops msg.
func (h *Sender[T]) Send(msg T) {
	s := h.slot
	if s == nil {
		panic(api.ErrHandleUsed)
	}
	h.slot = nil
	s.st.claim(h.gen)
	s.msg.put(msg)
	s.st.publish(h.gen)
}

// Receiver is the single-use right to receive from a Slot.
type Receiver[T any] struct {
	slot *Slot[T]
	gen  uint64
}

// IsReady reports whether the message has been published.
func (h *Receiver[T]) IsReady() bool {
	s := h.slot
	if s == nil {
		panic(api.ErrHandleUsed)
	}
	return s.st.ready(h.gen)
}

// Receive consumes the handle and returns the message. It panics with
// api.ErrNotReady if the message has not been published yet.
func (h *Receiver[T]) Receive() T {
	s := h.slot
	if s == nil {
		panic(api.ErrHandleUsed)
	}
	h.slot = nil
	if !s.st.take(h.gen) {
		panic(api.ErrNotReady)
	}
	msg := s.msg.take()
	s.st.taken(h.gen)
	return msg
}
