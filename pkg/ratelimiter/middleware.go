package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/storefront/pkg/clientip"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// KeyFunc extracts the bucket key from a request.
type KeyFunc func(r *http.Request) string

// ByClientIP keys buckets on the resolved client address.
func ByClientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.FromRequest(r)
}

// Middleware limits POST, PUT, PATCH and DELETE requests. Reads pass
// through untouched. A nil limiter disables the middleware.
func Middleware(l *Limiter, key KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			k := key(r)
			res := l.Allow(k)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(1, retry)))
				log.WarnContext(r.Context(), "rate limit exceeded",
					logger.Component("ratelimiter"),
					slog.String("key", k),
					slog.String("path", r.URL.Path),
				)
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
