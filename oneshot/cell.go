// File: oneshot/cell.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package oneshot

import "github.com/momentics/hioload-sync/api"

// cell is the message slot: either empty or holding one value.
//
// A cell does no synchronization of its own. The channel that embeds it
// guarantees, through its state machine, one put published before one take,
// and calls drop only once it is no longer shared.
type cell[T any] struct {
	value T
	full  bool
}

func (c *cell[T]) put(v T) {
	c.value = v
	c.full = true
}

// take moves the value out, leaving the cell empty. The caller owns it now.
func (c *cell[T]) take() T {
	v := c.value
	var zero T
	c.value = zero
	c.full = false
	return v
}

// drop destroys a value that was never taken.
func (c *cell[T]) drop() {
	if !c.full {
		return
	}
	api.DropValue(&c.value)
	c.full = false
}
