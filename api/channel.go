// Package api
// Author: momentics <momentics@gmail.com>
//
// Contracts implemented by the one-shot channel family.

package api

// Oneshot is a channel that accepts exactly one Send and permits exactly one
// Receive. Send panics with ErrAlreadySent on a second call; Receive panics
// with ErrNotReady when no completed Send is pending.
type Oneshot[T any] interface {
	Send(msg T)
	IsReady() bool
	Receive() T
	// Close drops an unread message. The channel must no longer be shared.
	Close()
}

// Locker is the guard-based lock contract of spinlock.Mutex.
type Locker[T any, G Guard[T]] interface {
	Lock() G
	TryLock() (G, bool)
}

// Guard grants exclusive access to a locked payload until Unlock.
type Guard[T any] interface {
	Value() *T
	Unlock()
}
