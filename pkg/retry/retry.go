// Package retry repeats outbound calls that failed before a response arrived.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"syscall"
	"time"
)

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	// Jitter spreads each delay uniformly over [delay/2, delay].
	Jitter bool
	// Retryable decides whether a failed attempt may be repeated. Defaults to IsTransportError.
	Retryable func(error) bool
	// OnRetry runs before the wait that precedes attempt+1.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultConfig keeps the total wait well inside a request's deadline.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Multiplier:  2.0,
		Jitter:      true,
	}
}

// Policy is exponential backoff over a bounded number of attempts.
type Policy struct {
	cfg Config
}

// New copies cfg and fills the zero fields with defaults.
func New(cfg *Config) *Policy {
	c := *DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Multiplier < 1 {
		c.Multiplier = 1
	}
	if c.Retryable == nil {
		c.Retryable = IsTransportError
	}
	return &Policy{cfg: c}
}

// Do calls fn until it succeeds, fails with a non-retryable error, runs out of attempts,
// or ctx is done. Exhausting the attempts yields a *MaxRetriesExceededError.
func (p *Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !p.cfg.Retryable(err) {
			return err
		}
		if attempt == p.cfg.MaxAttempts {
			break
		}

		delay := p.Delay(attempt)
		if p.cfg.OnRetry != nil {
			p.cfg.OnRetry(attempt, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}

	return &MaxRetriesExceededError{LastError: lastErr, Attempts: p.cfg.MaxAttempts}
}

// Delay is the wait after the given failed attempt, starting at 1.
func (p *Policy) Delay(attempt int) time.Duration {
	d := float64(p.cfg.BaseDelay) * math.Pow(p.cfg.Multiplier, float64(attempt-1))
	if ceiling := float64(p.cfg.MaxDelay); ceiling > 0 && d > ceiling {
		d = ceiling
	}
	if p.cfg.Jitter && d > 0 {
		d = d/2 + rand.Float64()*d/2
	}
	return time.Duration(d)
}

// IsTransportError reports failures where no HTTP response was received: refused or reset
// connections and network timeouts. Caller cancellation is never retried.
func IsTransportError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection refused", "connection reset", "timeout", "temporary failure"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

type MaxRetriesExceededError struct {
	LastError error
	Attempts  int
}

func (e *MaxRetriesExceededError) Error() string {
	return "max retries exceeded: " + e.LastError.Error()
}

func (e *MaxRetriesExceededError) Unwrap() error {
	return e.LastError
}

func IsMaxRetriesExceeded(err error) bool {
	var maxErr *MaxRetriesExceededError
	return errors.As(err, &maxErr)
}
