// Package spinlock
// Author: momentics <momentics@gmail.com>
//
// Busy-wait mutual exclusion guarding a payload.
//
// Lock spins until it wins the flag and returns a Guard; the Guard is the only
// way to reach the payload and its Unlock is the only path that clears the
// flag. There is no queueing and no fairness: keep critical sections short.
package spinlock
