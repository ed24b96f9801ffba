// Package ratelimiter throttles state-changing requests per client with a
// token bucket kept in memory.
package ratelimiter

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidConfig = errors.New("invalid rate limit configuration")

// Config describes a bucket. Every RefillInterval adds RefillRate tokens up
// to Capacity.
type Config struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of a single Allow call.
type Result struct {
	Limit     int
	Remaining int // negative when denied
	ResetAt   time.Time
}

func (r Result) Allowed() bool { return r.Remaining >= 0 }

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter holds one bucket per key. Buckets idle for longer than the stale
// threshold are dropped by Sweep.
type Limiter struct {
	cfg   Config
	now   func() time.Time
	stale time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithStaleAfter sets how long an untouched bucket survives Sweep.
func WithStaleAfter(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.stale = d
		}
	}
}

// New validates cfg and returns an empty Limiter.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{
		cfg:     cfg,
		now:     time.Now,
		stale:   time.Hour,
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow takes one token from key's bucket.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
		l.buckets[key] = b
	}

	// capped so a long idle period cannot overflow the multiplication
	maxIntervals := int64(l.cfg.Capacity/l.cfg.RefillRate + 1)
	if n := int(min(int64(now.Sub(b.lastRefill)/l.cfg.RefillInterval), maxIntervals)); n > 0 {
		b.tokens = min(b.tokens+n*l.cfg.RefillRate, l.cfg.Capacity)
		b.lastRefill = now
	}

	res := Result{Limit: l.cfg.Capacity, ResetAt: b.lastRefill.Add(l.cfg.RefillInterval)}
	if b.tokens > 0 {
		b.tokens--
		res.Remaining = b.tokens
	} else {
		res.Remaining = -1
	}
	b.lastAccess = now
	return res
}

// Sweep drops stale buckets and reports how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > l.stale {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
