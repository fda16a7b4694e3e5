// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Environment-driven tuning and a thread-safe store with reload propagation.

package control

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/momentics/hioload-sync/core/concurrency"
	"github.com/momentics/hioload-sync/msgqueue"
	"github.com/momentics/hioload-sync/spinlock"
)

// Config holds tuning knobs for the primitives.
type Config struct {
	// SpinYieldAfter is the number of spin hints between scheduler yields.
	SpinYieldAfter int `env:"HIOSYNC_SPIN_YIELD_AFTER" envDefault:"64"`
	// PollInterval is the sleep between empty polls of msgqueue receivers.
	PollInterval time.Duration `env:"HIOSYNC_POLL_INTERVAL" envDefault:"1ms"`
	// ArenaCapacity is the idle block capacity of shared.Arena instances.
	ArenaCapacity int `env:"HIOSYNC_ARENA_CAPACITY" envDefault:"1024"`
}

// DefaultConfig returns the values used when no environment is set.
func DefaultConfig() Config {
	return Config{
		SpinYieldAfter: concurrency.DefaultYieldAfter,
		PollInterval:   msgqueue.DefaultPollInterval,
		ArenaCapacity:  1024,
	}
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the primitives cannot use.
func (c Config) Validate() error {
	if c.SpinYieldAfter < 0 {
		return fmt.Errorf("HIOSYNC_SPIN_YIELD_AFTER must be >= 0, got %d", c.SpinYieldAfter)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("HIOSYNC_POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.ArenaCapacity <= 0 {
		return fmt.Errorf("HIOSYNC_ARENA_CAPACITY must be positive, got %d", c.ArenaCapacity)
	}
	return nil
}

// SpinlockOptions translates c into spinlock options.
func (c Config) SpinlockOptions() []spinlock.Option {
	return []spinlock.Option{spinlock.WithYieldAfter(c.SpinYieldAfter)}
}

// MsgQueueOptions translates c into msgqueue options.
func (c Config) MsgQueueOptions() []msgqueue.Option {
	return []msgqueue.Option{
		msgqueue.WithPollInterval(c.PollInterval),
		msgqueue.WithYieldAfter(c.SpinYieldAfter),
	}
}

// YieldTuner is a primitive whose spin budget can change while in use,
// such as spinlock.Mutex or msgqueue.Channel.
type YieldTuner interface {
	SetYieldAfter(n int)
}

// PollTuner is a primitive whose poll interval can change while in use,
// such as msgqueue.Channel.
type PollTuner interface {
	SetPollInterval(d time.Duration)
}

var (
	_ YieldTuner = (*spinlock.Mutex[int])(nil)
	_ YieldTuner = (*msgqueue.Channel[int])(nil)
	_ PollTuner  = (*msgqueue.Channel[int])(nil)
)

// Retune returns an OnReload listener that applies each reloaded Config to
// targets. Targets implementing neither tuner interface are skipped.
func Retune(targets ...any) func(Config) {
	return func(c Config) {
		for _, t := range targets {
			if y, ok := t.(YieldTuner); ok {
				y.SetYieldAfter(c.SpinYieldAfter)
			}
			if p, ok := t.(PollTuner); ok {
				p.SetPollInterval(c.PollInterval)
			}
		}
	}
}

// ConfigStore holds the current Config with atomic snapshot and listener support.
type ConfigStore struct {
	current   atomic.Pointer[Config]
	mu        sync.Mutex
	listeners []func(Config)
}

// NewConfigStore initializes a store with cfg.
func NewConfigStore(cfg Config) *ConfigStore {
	cs := &ConfigStore{}
	cs.current.Store(&cfg)
	return cs
}

// Snapshot returns the current Config.
func (cs *ConfigStore) Snapshot() Config {
	return *cs.current.Load()
}

// Update validates and installs cfg, then notifies listeners in order.
func (cs *ConfigStore) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.current.Store(&cfg)
	for _, fn := range cs.listeners {
		fn(cfg)
	}
	return nil
}

// OnReload registers a listener called with every installed Config.
func (cs *ConfigStore) OnReload(fn func(Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
