package listing

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

const (
	DefaultSearchDelay = 500 * time.Millisecond
	DefaultRevealStep  = 50 * time.Millisecond
)

// Config holds engine timing loaded from the environment.
type Config struct {
	SearchDelay time.Duration `env:"LISTING_SEARCH_DELAY" envDefault:"500ms"`
	RevealStep  time.Duration `env:"LISTING_REVEAL_STEP" envDefault:"50ms"`
}

type Option func(*Engine)

// WithConfig applies timing from cfg. Zero values keep the defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		if cfg.SearchDelay > 0 {
			e.searchDelay = cfg.SearchDelay
		}
		if cfg.RevealStep > 0 {
			e.revealStep = cfg.RevealStep
		}
	}
}

func WithSearchDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.searchDelay = d
		}
	}
}

func WithRevealStep(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.revealStep = d
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRegistry renders into r instead of a fresh registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

func defaultEngine() *Engine {
	return &Engine{
		searchDelay: DefaultSearchDelay,
		revealStep:  DefaultRevealStep,
		sched:       NewTimerScheduler(),
		log:         logger.NewNop(),
		registry:    NewRegistry(),
		filters:     DefaultFilters(),
	}
}
