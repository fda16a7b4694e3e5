package oneshot

import (
	"sync/atomic"
	"testing"

	"github.com/momentics/hioload-sync/api"
	"github.com/stretchr/testify/assert"
)

func TestCompact_StateTransitions(t *testing.T) {
	c := NewCompact[string]()
	assert.Equal(t, Empty, c.State())

	c.Send("x")
	assert.Equal(t, Ready, c.State())

	assert.Equal(t, "x", c.Receive())
	assert.Equal(t, Reading, c.State())
	assert.Equal(t, "reading", c.State().String())
}

func TestCompact_SplitAfterSharedUse(t *testing.T) {
	var drops atomic.Int64
	var c Compact[tracked]
	c.Send(tracked{id: "stale", drops: &drops})

	tx, rx := c.Split()
	assert.Equal(t, int64(1), drops.Load(), "re-split drops the unread message")
	assert.Equal(t, Empty, c.State())

	tx.Send(tracked{id: "new", drops: &drops})
	assert.True(t, rx.IsReady())
	assert.Equal(t, "new", rx.Receive().id)
}

func TestCompact_StaleHandles(t *testing.T) {
	var c Compact[int]
	tx, rx := c.Split()
	_, rx2 := c.Split()

	requirePanicErr(t, api.ErrStaleHandle, func() { tx.Send(1) })
	requirePanicErr(t, api.ErrStaleHandle, func() { rx.IsReady() })
	requirePanicErr(t, api.ErrStaleHandle, func() { rx.Receive() })
	assert.False(t, rx2.IsReady())
}

func TestCompact_ClosedRejectsEverything(t *testing.T) {
	var c Compact[int]
	c.Close()
	requirePanicErr(t, api.ErrAlreadySent, func() { c.Send(1) })
	requirePanicErr(t, api.ErrNotReady, func() { c.Receive() })
}

func TestCompact_GenerationWraps(t *testing.T) {
	var c Compact[int]
	c.word.Store(pack(genMask, Empty))

	tx, rx := c.Split()
	assert.Equal(t, uint32(0), tx.gen)
	tx.Send(5)
	assert.Equal(t, 5, rx.Receive())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "writing", Writing.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "state(9)", State(9).String())
}
