package control

import (
	"testing"

	"github.com/momentics/hioload-sync/core/concurrency"
	"github.com/momentics/hioload-sync/spinlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugProbes_DumpAndCollect(t *testing.T) {
	dp := NewDebugProbes()
	RegisterPlatformProbes(dp)

	m := spinlock.New(0)
	m.With(func(v *int) { *v++ })
	dp.RegisterProbe("spinlock.demo", func() any { return m.Stats() })

	state := dp.DumpState()
	assert.Equal(t, concurrency.ParkerKind, state["platform.parker"])
	assert.Positive(t, state["platform.cacheline"])
	assert.Equal(t, spinlock.Stats{Acquired: 1}, state["spinlock.demo"])

	mr := NewMetricsRegistry()
	require.True(t, mr.Updated().IsZero())
	mr.Collect(dp)
	mr.Set("custom", 3)

	snap := mr.GetSnapshot()
	assert.Equal(t, 3, snap["custom"])
	assert.Contains(t, snap, "platform.cpus")
	assert.False(t, mr.Updated().IsZero())

	dp.UnregisterProbe("spinlock.demo")
	assert.NotContains(t, dp.DumpState(), "spinlock.demo")
}
