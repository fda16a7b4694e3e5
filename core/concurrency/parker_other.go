//go:build !linux

// File: core/concurrency/parker_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable parking on a capacity-1 channel used as a wake token.

package concurrency

import "sync/atomic"

// ParkerKind names the parking mechanism on this platform.
const ParkerKind = "chan"

type parkerSys struct {
	token chan struct{}
}

func (s *parkerSys) init() {
	s.token = make(chan struct{}, 1)
}

func (s *parkerSys) wait(word *atomic.Uint32) {
	if word.Load() != parkEmpty {
		return
	}
	<-s.token
}

func (s *parkerSys) wake(*atomic.Uint32) {
	select {
	case s.token <- struct{}{}:
	default:
	}
}
