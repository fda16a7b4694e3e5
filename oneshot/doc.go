// Package oneshot
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One-time message handoff between two goroutines.
//
// Every type here accepts exactly one Send and permits exactly one Receive.
// Misuse (a second Send, a Receive with nothing published) panics with an
// api error rather than losing a message or reading an empty slot. Close
// tears a channel down: an unread message is dropped exactly once and a slot
// that was never written is left alone.
//
//	Channel   two flags, shared by reference (or through a shared.Pointer)
//	Slot      split into a Sender and a Receiver, each usable once
//	Blocking  split handles; Send wakes the receiver's Parker
//	Compact   one state word: Empty, Writing, Ready, Reading
//	Pair      free-standing handles sharing a Channel through a shared.Pointer
//
// Every channel type implements api.Dropper by closing itself, so hosting
// one in a shared.Pointer tears it down when the last handle is dropped.
//
// The package never starts goroutines.
package oneshot
