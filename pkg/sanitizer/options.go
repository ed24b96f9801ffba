package sanitizer

import (
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// DefaultMaxBodySize limits how much of a request body the middlewares read.
const DefaultMaxBodySize int64 = 1 << 20

type middlewareOptions struct {
	logger      *slog.Logger
	maxBodySize int64
}

// Option configures Middleware and InjectionGuard.
type Option func(*middlewareOptions)

// WithLogger sets the logger used for dropped keys and refusals.
func WithLogger(l *slog.Logger) Option {
	return func(o *middlewareOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *middlewareOptions) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

func newMiddlewareOptions(opts []Option) *middlewareOptions {
	o := &middlewareOptions{
		logger:      logger.NewNop(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
