//go:build (!amd64 && !arm64) || noasm

// File: core/concurrency/relax_fallback.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

// cpuRelax is a no-op where no spin hint instruction is wired.
func cpuRelax() {}
