// File: msgqueue/channel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package msgqueue

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/spinlock"
)

// DefaultPollInterval is the sleep between empty polls in Receive.
const DefaultPollInterval = time.Millisecond

// Stats reports message counters.
type Stats struct {
	Sent     uint64
	Received uint64
	Dropped  uint64 // messages destroyed by Close without being received
	Pending  int
}

type state struct {
	items  *queue.Queue
	closed bool
}

var _ api.Dropper = (*Channel[int])(nil)

// Channel is a FIFO channel safe for any number of senders and receivers.
type Channel[T any] struct {
	mu           *spinlock.Mutex[state]
	pollInterval atomic.Int64 // time.Duration

	sent     atomic.Uint64
	received atomic.Uint64
	dropped  atomic.Uint64
}

// Option configures a Channel.
type Option func(*options)

type options struct {
	pollInterval time.Duration
	yieldAfter   int
}

// WithPollInterval sets the sleep between empty polls.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithYieldAfter is passed to the guarding spinlock.Mutex.
func WithYieldAfter(n int) Option {
	return func(o *options) { o.yieldAfter = n }
}

// New returns an empty open Channel.
func New[T any](opts ...Option) *Channel[T] {
	o := options{pollInterval: DefaultPollInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pollInterval <= 0 {
		o.pollInterval = DefaultPollInterval
	}
	c := &Channel[T]{
		mu: spinlock.New(state{items: queue.New()}, spinlock.WithYieldAfter(o.yieldAfter)),
	}
	c.pollInterval.Store(int64(o.pollInterval))
	return c
}

// SetPollInterval changes the sleep between empty polls; receivers pick it
// up on their next poll. Non-positive values are ignored.
func (c *Channel[T]) SetPollInterval(d time.Duration) {
	if d > 0 {
		c.pollInterval.Store(int64(d))
	}
}

// SetYieldAfter retunes the guarding spinlock.Mutex.
func (c *Channel[T]) SetYieldAfter(n int) {
	c.mu.SetYieldAfter(n)
}

// Send appends msg. It returns api.ErrClosed after Close.
func (c *Channel[T]) Send(msg T) error {
	g := c.mu.Lock()
	st := g.Value()
	if st.closed {
		g.Unlock()
		return api.ErrClosed
	}
	st.items.Add(msg)
	g.Unlock()
	c.sent.Add(1)
	return nil
}

// TryReceive pops the oldest message without waiting.
func (c *Channel[T]) TryReceive() (T, bool) {
	msg, ok, _ := c.pop()
	return msg, ok
}

// Receive waits for the oldest message, polling every poll interval.
// It returns api.ErrClosed once the channel is closed and drained.
func (c *Channel[T]) Receive() (T, error) {
	return c.ReceiveContext(context.Background())
}

// ReceiveContext is Receive bounded by ctx.
func (c *Channel[T]) ReceiveContext(ctx context.Context) (T, error) {
	for {
		msg, ok, closed := c.pop()
		if ok {
			return msg, nil
		}
		if closed {
			return msg, api.ErrClosed
		}
		select {
		case <-ctx.Done():
			return msg, ctx.Err()
		case <-time.After(time.Duration(c.pollInterval.Load())):
		}
	}
}

func (c *Channel[T]) pop() (msg T, ok, closed bool) {
	g := c.mu.Lock()
	st := g.Value()
	if st.items.Length() > 0 {
		msg, _ = st.items.Remove().(T)
		ok = true
	}
	closed = st.closed
	g.Unlock()
	if ok {
		c.received.Add(1)
	}
	return msg, ok, closed
}

// Len returns the number of pending messages.
func (c *Channel[T]) Len() int {
	g := c.mu.Lock()
	defer g.Unlock()
	return g.Value().items.Length()
}

// Close rejects further sends and drops every pending message once.
// Receivers waiting in Receive return api.ErrClosed.
func (c *Channel[T]) Close() {
	g := c.mu.Lock()
	st := g.Value()
	if st.closed {
		g.Unlock()
		return
	}
	st.closed = true
	var pending []T
	for st.items.Length() > 0 {
		msg, _ := st.items.Remove().(T)
		pending = append(pending, msg)
	}
	g.Unlock()

	for i := range pending {
		api.DropValue(&pending[i])
	}
	c.dropped.Add(uint64(len(pending)))
}

// Drop implements api.Dropper by closing the channel.
func (c *Channel[T]) Drop() {
	c.Close()
}

// Stats returns a snapshot of the channel counters.
func (c *Channel[T]) Stats() Stats {
	return Stats{
		Sent:     c.sent.Load(),
		Received: c.received.Load(),
		Dropped:  c.dropped.Load(),
		Pending:  c.Len(),
	}
}
