//go:build (amd64 || arm64) && !noasm

// File: core/concurrency/relax_asm.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

// cpuRelax issues PAUSE (amd64) or YIELD (arm64).
// Implemented in relax_amd64.s / relax_arm64.s.
func cpuRelax()
