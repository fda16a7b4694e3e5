package oneshot

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-sync/api"
	"github.com/stretchr/testify/assert"
)

func TestPair_SenderAndReceiver(t *testing.T) {
	tx, rx := NewPair[string]()

	go tx.Send("hello world!")

	done := make(chan string, 1)
	go func() {
		for !rx.IsReady() {
			time.Sleep(time.Millisecond)
		}
		done <- rx.Receive()
	}()

	select {
	case got := <-done:
		assert.Equal(t, "hello world!", got)
	case <-time.After(5 * time.Second):
		t.Fatal("receiver never observed the message")
	}
}

func TestPair_LastHandleDropsUnread(t *testing.T) {
	for i := 0; i < 200; i++ {
		var drops atomic.Int64
		tx, rx := NewPair[tracked]()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			tx.Send(tracked{id: "unread", drops: &drops})
		}()
		go func() {
			defer wg.Done()
			rx.Close()
		}()
		wg.Wait()

		assert.Equal(t, int64(1), drops.Load(), "iteration %d", i)
	}
}

func TestPair_AbandonedSenderLeavesNothingToDrop(t *testing.T) {
	tx, rx := NewPair[tracked]()
	tx.Close()
	assert.False(t, rx.IsReady())
	requirePanicErr(t, api.ErrNotReady, func() { rx.Receive() })
	requirePanicErr(t, api.ErrHandleUsed, func() { rx.IsReady() })
}

func TestPair_UsedHandlesPanic(t *testing.T) {
	tx, rx := NewPair[int]()
	tx.Send(1)
	assert.Equal(t, 1, rx.Receive())

	requirePanicErr(t, api.ErrHandleUsed, func() { tx.Send(2) })
	requirePanicErr(t, api.ErrHandleUsed, func() { rx.Receive() })
	assert.NotPanics(t, tx.Close)
	assert.NotPanics(t, rx.Close)
}
