// Package shared
// Author: momentics <momentics@gmail.com>
//
// Atomic reference-counted shared ownership.
//
// A Pointer owns one handle on a control block holding a reference count and
// a payload. Clone hands out another handle, Drop gives one back, and the
// goroutine that drops the last handle destroys the payload exactly once.
// The payload may be read through any live handle; it is mutable only through
// GetMut, which succeeds only while a single handle exists.
//
//	p := shared.New(config)
//	q := p.Clone()
//	go func() { defer q.Drop(); use(q.Value()) }()
//	p.Drop()
package shared
