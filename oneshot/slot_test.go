package oneshot

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/momentics/hioload-sync/api"
	"github.com/stretchr/testify/assert"
)

func TestSlot_ResplitDropsUnread(t *testing.T) {
	var drops atomic.Int64
	var s Slot[tracked]

	tx, _ := s.Split()
	tx.Send(tracked{id: "orphan", drops: &drops})

	tx2, rx2 := s.Split()
	assert.Equal(t, int64(1), drops.Load())
	assert.False(t, rx2.IsReady())

	tx2.Send(tracked{id: "fresh", drops: &drops})
	assert.Equal(t, "fresh", rx2.Receive().id)
	assert.Equal(t, int64(1), drops.Load())
}

func TestSlot_StaleHandlesPanic(t *testing.T) {
	var s Slot[int]
	tx, rx := s.Split()
	_, _ = s.Split()

	requirePanicErr(t, api.ErrStaleHandle, func() { tx.Send(1) })
	requirePanicErr(t, api.ErrStaleHandle, func() { rx.IsReady() })
	requirePanicErr(t, api.ErrStaleHandle, func() { rx.Receive() })
}

func TestSlot_CloseInvalidatesHandles(t *testing.T) {
	var s Slot[int]
	tx, rx := s.Split()
	s.Close()
	requirePanicErr(t, api.ErrStaleHandle, func() { tx.Send(1) })
	requirePanicErr(t, api.ErrStaleHandle, func() { rx.Receive() })
}

func TestSlot_AcrossGoroutines(t *testing.T) {
	var s Slot[string]
	tx, rx := s.Split()

	go tx.Send("sender and receiver")
	for !rx.IsReady() {
		runtime.Gosched()
	}
	assert.Equal(t, "sender and receiver", rx.Receive())
}

func TestSlot_SplitRacingEarlierSend(t *testing.T) {
	for i := 0; i < 200; i++ {
		var drops atomic.Int64
		var s Slot[tracked]
		old, _ := s.Split()

		stale := make(chan any, 1)
		go func() {
			stale <- recovered(func() { old.Send(tracked{id: "old", drops: &drops}) })
		}()
		tx, rx := s.Split()
		v := <-stale

		// Either the old message landed first and Split dropped it, or the
		// old handle found its generation gone.
		if v == nil {
			assert.Equal(t, int64(1), drops.Load(), "iteration %d", i)
		} else {
			assert.Equal(t, api.ErrStaleHandle, v, "iteration %d", i)
			assert.Zero(t, drops.Load(), "iteration %d", i)
		}

		assert.False(t, rx.IsReady())
		tx.Send(tracked{id: "new", drops: &drops})
		assert.Equal(t, "new", rx.Receive().id)
	}
}
