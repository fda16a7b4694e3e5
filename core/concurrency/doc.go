// File: core/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Low-level building blocks shared by the hioload-sync primitives: spin-wait
// backoff with a CPU relax hint, a single-owner Parker (futex-backed on Linux),
// and a bounded lock-free queue used as a free list by the pool package.
//
// Nothing in this package spawns goroutines.
package concurrency
