// Package api
// Author: momentics <momentics@gmail.com>
//
// Destruction contract for payloads owned by a primitive.

package api

// Dropper is implemented by payloads that need to observe their destruction.
// A primitive owning a Dropper calls Drop exactly once: when the last shared
// pointer goes away, or when a channel is closed holding an unread message.
// Values handed out to a caller (a received message) are not dropped.
type Dropper interface {
	Drop()
}

// DropValue runs v's Drop method if it has one and zeroes *v.
func DropValue[T any](v *T) {
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	} else if d, ok := any(*v).(Dropper); ok {
		d.Drop()
	}
	var zero T
	*v = zero
}
