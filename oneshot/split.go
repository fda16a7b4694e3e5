// File: oneshot/split.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package oneshot

import (
	"sync/atomic"

	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/core/concurrency"
)

// Flags kept in the low bits of a splitWord; the split generation sits above
// them, so every handle checks its generation in the same CAS that moves the
// handoff forward.
const (
	flagClaimed uint64 = 1 << iota // a sender owns this generation's cell
	flagReady                      // message published
	flagTaken                      // a receiver owns the message
)

const splitFlagBits = 3

func splitPack(gen, flags uint64) uint64 { return gen<<splitFlagBits | flags }

// splitWord drives the Slot and Blocking handoff.
//
//	0                              nothing sent
//	claimed                        sender writing the cell
//	claimed|ready                  message published
//	claimed|ready|taken            receiver moving the message out
//	claimed|taken                  message received
type splitWord struct {
	w atomic.Uint64
}

// claim reserves gen's cell for one message.
func (s *splitWord) claim(gen uint64) {
	if !s.w.CompareAndSwap(splitPack(gen, 0), splitPack(gen, flagClaimed)) {
		s.fail(gen, api.ErrAlreadySent)
	}
}

// publish makes the cell written after claim visible to the receiver.
func (s *splitWord) publish(gen uint64) {
	s.w.Store(splitPack(gen, flagClaimed|flagReady))
}

func (s *splitWord) ready(gen uint64) bool {
	w := s.w.Load()
	if w>>splitFlagBits != gen {
		panic(api.ErrStaleHandle)
	}
	return w == splitPack(gen, flagClaimed|flagReady)
}

// take claims a published message. It reports false if nothing is published
// yet. On success the caller empties the cell and then calls taken.
func (s *splitWord) take(gen uint64) bool {
	if s.w.CompareAndSwap(splitPack(gen, flagClaimed|flagReady), splitPack(gen, flagClaimed|flagReady|flagTaken)) {
		return true
	}
	if s.w.Load()>>splitFlagBits != gen {
		panic(api.ErrStaleHandle)
	}
	return false
}

func (s *splitWord) taken(gen uint64) {
	s.w.Store(splitPack(gen, flagClaimed|flagTaken))
}

func (s *splitWord) fail(gen uint64, err *api.Error) {
	if s.w.Load()>>splitFlagBits != gen {
		panic(api.ErrStaleHandle)
	}
	panic(err)
}

// next moves to a new generation and returns it. A Send or Receive caught
// half way through the cell is waited out first; once the generation moves,
// handles of the old one fail their CAS. dropUnread runs when the old
// generation ends with a published message nobody took.
func (s *splitWord) next(dropUnread func()) uint64 {
	var b concurrency.Backoff
	for {
		w := s.w.Load()
		switch w & (flagClaimed | flagReady | flagTaken) {
		case flagClaimed, flagClaimed | flagReady | flagTaken:
			b.Spin()
			continue
		}
		gen := w>>splitFlagBits + 1
		if s.w.CompareAndSwap(w, splitPack(gen, 0)) {
			if w&(flagReady|flagTaken) == flagReady {
				dropUnread()
			}
			return gen
		}
	}
}
