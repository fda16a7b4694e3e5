// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for hioload-sync.
//
// Provides:
//   - Config loaded from HIOSYNC_* environment variables
//   - ConfigStore with atomic snapshots and reload listeners
//   - DebugProbes, the api.Debug registry primitives report their Stats into
//   - MetricsRegistry, timestamped snapshots of probe output
package control
