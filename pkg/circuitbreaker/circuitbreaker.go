// Package circuitbreaker stops calling a provider that keeps failing and tries it again
// after a cool-down.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

type State int

const (
	Closed State = iota
	Open
	// HalfOpen admits a single trial call.
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

type Config struct {
	FailureThreshold int           // Consecutive failures that open the circuit
	RecoveryTimeout  time.Duration // Cool-down before a trial call is admitted
	SuccessThreshold int           // Trial successes needed to close again
	// IsFailure decides which errors count against the circuit. Defaults to every non-nil error.
	IsFailure func(error) bool
	// OnStateChange runs after a transition, outside the breaker's lock.
	OnStateChange func(from, to State)
	Now           func() time.Time
}

func DefaultConfig() *Config {
	return &Config{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 1,
	}
}

// Snapshot is a point-in-time copy of the breaker's counters.
type Snapshot struct {
	State       State
	Failures    int
	Successes   int
	LastFailure time.Time
	NextAttempt time.Time
}

type Breaker struct {
	cfg Config

	mu          sync.Mutex
	state       State
	trialing     bool
	failures    int
	successes   int
	lastFailure time.Time
	nextAttempt time.Time
}

// New copies cfg and fills the zero fields with defaults.
func New(cfg *Config) *Breaker {
	c := *DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 1
	}
	if c.SuccessThreshold < 1 {
		c.SuccessThreshold = 1
	}
	if c.IsFailure == nil {
		c.IsFailure = func(err error) bool { return err != nil }
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return &Breaker{cfg: c, state: Closed}
}

// Do runs fn unless the circuit is open. A context that is already done is returned
// without touching the counters. A panic in fn counts as a failure and is re-raised.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trial, from, to, err := b.admit()
	b.notify(from, to)
	if err != nil {
		return err
	}

	completed := false
	defer func() {
		if !completed {
			from, to := b.record(trial, true)
			b.notify(from, to)
		}
	}()

	callErr := fn(ctx)
	completed = true

	from, to = b.record(trial, b.cfg.IsFailure(callErr))
	b.notify(from, to)
	return callErr
}

func (b *Breaker) admit() (trial bool, from, to State, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	from = b.state
	if b.state == Open && !b.cfg.Now().Before(b.nextAttempt) {
		b.state = HalfOpen
		b.successes = 0
	}
	to = b.state

	switch {
	case b.state == Open:
		return false, from, to, ErrCircuitOpen
	case b.state == HalfOpen && b.trialing:
		return false, from, to, ErrCircuitOpen
	case b.state == HalfOpen:
		b.trialing = true
		return true, from, to, nil
	default:
		return false, from, to, nil
	}
}

func (b *Breaker) record(trial, failed bool) (from, to State) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if trial {
		b.trialing = false
	}
	from = b.state

	if failed {
		now := b.cfg.Now()
		b.failures++
		b.lastFailure = now
		if b.state == HalfOpen || b.failures >= b.cfg.FailureThreshold {
			b.state = Open
			b.nextAttempt = now.Add(b.cfg.RecoveryTimeout)
		}
		return from, b.state
	}

	b.failures = 0
	if b.state == HalfOpen {
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = Closed
			b.successes = 0
		}
	}
	return from, b.state
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		State:       b.state,
		Failures:    b.failures,
		Successes:   b.successes,
		LastFailure: b.lastFailure,
		NextAttempt: b.nextAttempt,
	}
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	from := b.state
	b.state = Closed
	b.trialing = false
	b.failures = 0
	b.successes = 0
	b.mu.Unlock()

	b.notify(from, Closed)
}
