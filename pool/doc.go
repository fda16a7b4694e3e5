// Package pool
// Author: momentics <momentics@gmail.com>
//
// Object recycling for hioload-sync. Slab keeps released objects on a bounded
// lock-free free list so hot allocation paths (shared pointer control blocks)
// reuse memory instead of churning the GC.
package pool
