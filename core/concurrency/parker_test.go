package concurrency

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParker_UnparkBeforePark(t *testing.T) {
	p := NewParker()
	p.Unpark()

	done := make(chan struct{})
	go func() {
		p.Park()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Park did not consume the pending token")
	}
}

func TestParker_WakesParkedGoroutine(t *testing.T) {
	p := NewParker()
	var flag atomic.Bool

	done := make(chan struct{})
	go func() {
		defer close(done)
		for !flag.Load() {
			p.Park()
		}
	}()

	time.Sleep(20 * time.Millisecond)
	flag.Store(true)
	p.Unpark()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("parked goroutine was never woken")
	}
}

func TestParker_RepeatedHandoffs(t *testing.T) {
	p := NewParker()
	var seq atomic.Int64
	const rounds = 200

	done := make(chan struct{})
	go func() {
		defer close(done)
		for want := int64(1); want <= rounds; want++ {
			for seq.Load() < want {
				p.Park()
			}
		}
	}()

	for i := 0; i < rounds; i++ {
		seq.Add(1)
		p.Unpark()
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("stuck at %d/%d", seq.Load(), rounds)
	}
}

func TestParker_Identity(t *testing.T) {
	a, b := NewParker(), NewParker()
	require.NotEqual(t, a.ID(), b.ID())
	assert.Contains(t, a.String(), a.ID().String())
}
