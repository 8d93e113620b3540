package ratelimit

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"
)

const (
	ClassAuth    = "auth"
	ClassChat    = "chat"
	ClassSearch  = "search"
	ClassDefault = "default"

	keyPrefix = "ratelimit:"

	// DefaultStoreTimeout bounds each counter store call so an unreachable store fails open quickly.
	DefaultStoreTimeout = 2 * time.Second
)

type Logger interface {
	Warn(msg string, args ...interface{})
}

// Rule is the budget of one route class.
type Rule struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultRouteClasses returns a fresh copy of the built-in class table.
func DefaultRouteClasses() map[string]Rule {
	return map[string]Rule{
		ClassAuth:    {MaxRequests: 5, Window: 60 * time.Second},
		ClassChat:    {MaxRequests: 10, Window: 60 * time.Second},
		ClassSearch:  {MaxRequests: 30, Window: 60 * time.Second},
		ClassDefault: {MaxRequests: 20, Window: 60 * time.Second},
	}
}

// ResolveRouteClass maps a request path to its class using the segment after "/api/".
// Paths that do not name a known class fall back to the default class.
func ResolveRouteClass(path string, classes map[string]Rule) string {
	rest, ok := strings.CutPrefix(path, "/api/")
	if !ok {
		return ClassDefault
	}

	segment, _, _ := strings.Cut(rest, "/")
	if _, known := classes[segment]; known && segment != "" {
		return segment
	}

	return ClassDefault
}

type Outcome int

const (
	Allow Outcome = iota
	Reject
	StoreUnavailable
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Reject:
		return "reject"
	case StoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

type Decision struct {
	Outcome Outcome
	Class   string
	Count   int64
	// RetryAfter is always the full class window on Reject.
	RetryAfter time.Duration
	Err        error
}

// CounterStore is the minimal key/counter surface the limiter needs.
type CounterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// RateLimiter checks one request against the budget of its route class.
type RateLimiter interface {
	Check(ctx context.Context, class, clientIP string) Decision
	Rule(class string) (string, Rule)
}

// FixedWindowLimiter counts requests per (class, client) in windows that start on the first
// request and end when the counter key expires.
type FixedWindowLimiter struct {
	store        CounterStore
	classes      map[string]Rule
	storeTimeout time.Duration
	logger       Logger
}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Store        CounterStore
	Classes      map[string]Rule // Optional, defaults to DefaultRouteClasses
	StoreTimeout time.Duration   // Optional, defaults to DefaultStoreTimeout
	Logger       Logger          // Optional
}

func NewRateLimiter(config *RateLimitConfig) *FixedWindowLimiter {
	classes := DefaultRouteClasses()
	if len(config.Classes) > 0 {
		classes = maps.Clone(config.Classes)
	}
	if _, ok := classes[ClassDefault]; !ok {
		classes[ClassDefault] = DefaultRouteClasses()[ClassDefault]
	}

	timeout := config.StoreTimeout
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}

	return &FixedWindowLimiter{
		store:        config.Store,
		classes:      classes,
		storeTimeout: timeout,
		logger:       config.Logger,
	}
}

// Rule resolves a class name to its rule, substituting the default class for unknown names.
func (l *FixedWindowLimiter) Rule(class string) (string, Rule) {
	if rule, ok := l.classes[class]; ok {
		return class, rule
	}
	return ClassDefault, l.classes[ClassDefault]
}

func (l *FixedWindowLimiter) Check(ctx context.Context, class, clientIP string) Decision {
	class, rule := l.Rule(class)
	key := fmt.Sprintf("%s%s:%s", keyPrefix, class, clientIP)

	count, err := l.incr(ctx, key)
	if err != nil {
		return l.unavailable(class, key, err)
	}

	// Two concurrent first requests may both see 1 and both set the TTL; that is harmless.
	if count == 1 {
		if err := l.expire(ctx, key, rule.Window); err != nil {
			return l.unavailable(class, key, err)
		}
	}

	if count > int64(rule.MaxRequests) {
		return Decision{
			Outcome:    Reject,
			Class:      class,
			Count:      count,
			RetryAfter: rule.Window,
		}
	}

	return Decision{Outcome: Allow, Class: class, Count: count}
}

func (l *FixedWindowLimiter) incr(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, l.storeTimeout)
	defer cancel()
	return l.store.Incr(ctx, key)
}

func (l *FixedWindowLimiter) expire(ctx context.Context, key string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, l.storeTimeout)
	defer cancel()
	return l.store.Expire(ctx, key, ttl)
}

func (l *FixedWindowLimiter) unavailable(class, key string, err error) Decision {
	if l.logger != nil {
		l.logger.Warn("Rate limit counter store unavailable, allowing request", "key", key, "error", err)
	}
	return Decision{Outcome: StoreUnavailable, Class: class, Err: err}
}

// The store is owned by the ApplicationConfig and closed there
func (l *FixedWindowLimiter) Close() error {
	return nil
}
