//go:build linux

// File: core/concurrency/parker_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Futex-backed parking. The kernel re-checks the state word before sleeping,
// so an Unpark racing with Park is never lost.

package concurrency

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Private futex ops; x/sys/unix does not export them.
const (
	futexWaitPrivate = 128 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate = 129 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
)

// ParkerKind names the parking mechanism on this platform.
const ParkerKind = "futex"

type parkerSys struct{}

func (parkerSys) init() {}

// wait sleeps while *word == parkEmpty. EAGAIN and EINTR are ordinary
// returns; the caller re-checks its condition either way.
func (parkerSys) wait(word *atomic.Uint32) {
	if word.Load() != parkEmpty {
		return
	}
	// unix.Syscall6 goes through entersyscall, so the runtime hands this P
	// to another M while the thread sleeps.
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(word)),
		futexWaitPrivate,
		uintptr(parkEmpty),
		0, 0, 0,
	)
}

func (parkerSys) wake(word *atomic.Uint32) {
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(word)),
		futexWakePrivate,
		1,
		0, 0, 0,
	)
}
