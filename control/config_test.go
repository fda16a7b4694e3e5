package control

import (
	"testing"
	"time"

	"github.com/momentics/hioload-sync/msgqueue"
	"github.com/momentics/hioload-sync/spinlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HIOSYNC_SPIN_YIELD_AFTER", "8")
	t.Setenv("HIOSYNC_POLL_INTERVAL", "250us")
	t.Setenv("HIOSYNC_ARENA_CAPACITY", "16")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.SpinYieldAfter)
	assert.Equal(t, 250*time.Microsecond, cfg.PollInterval)
	assert.Equal(t, 16, cfg.ArenaCapacity)
	assert.Len(t, cfg.SpinlockOptions(), 1)
	assert.Len(t, cfg.MsgQueueOptions(), 2)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("HIOSYNC_POLL_INTERVAL", "not-a-duration")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "parse env")
}

func TestLoadConfig_RejectsNegativeSpin(t *testing.T) {
	t.Setenv("HIOSYNC_SPIN_YIELD_AFTER", "-1")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "HIOSYNC_SPIN_YIELD_AFTER")
}

func TestConfigStore_UpdateNotifies(t *testing.T) {
	cs := NewConfigStore(DefaultConfig())

	var seen []Config
	cs.OnReload(func(c Config) { seen = append(seen, c) })

	next := DefaultConfig()
	next.SpinYieldAfter = 4
	require.NoError(t, cs.Update(next))
	assert.Equal(t, 4, cs.Snapshot().SpinYieldAfter)
	require.Len(t, seen, 1)
	assert.Equal(t, next, seen[0])

	bad := next
	bad.ArenaCapacity = 0
	assert.Error(t, cs.Update(bad))
	assert.Equal(t, next, cs.Snapshot())
	assert.Len(t, seen, 1)
}

type tuned struct {
	yieldAfter int
	poll       time.Duration
}

func (t *tuned) SetYieldAfter(n int)             { t.yieldAfter = n }
func (t *tuned) SetPollInterval(d time.Duration) { t.poll = d }

func TestConfigStore_RetunesOnReload(t *testing.T) {
	cs := NewConfigStore(DefaultConfig())
	target := &tuned{}
	q := msgqueue.New[int](cs.Snapshot().MsgQueueOptions()...)
	m := spinlock.New(0, cs.Snapshot().SpinlockOptions()...)
	cs.OnReload(Retune(target, q, m, "not tunable"))

	next := DefaultConfig()
	next.SpinYieldAfter = 2
	next.PollInterval = 50 * time.Microsecond
	require.NoError(t, cs.Update(next))
	assert.Equal(t, tuned{yieldAfter: 2, poll: 50 * time.Microsecond}, *target)

	// The retuned primitives keep working.
	m.With(func(v *int) { *v++ })
	assert.Equal(t, uint64(1), m.Stats().Acquired)
	go func() { _ = q.Send(9) }()
	got, err := q.Receive()
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}
