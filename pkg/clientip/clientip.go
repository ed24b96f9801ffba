// Package clientip resolves the address of the client behind the proxies
// the storefront runs behind.
package clientip

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// Headers checked in order before X-Forwarded-For and RemoteAddr.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Real-IP"}

// FromRequest returns the normalized client IP or "" when none parses.
// X-Forwarded-For contributes its first valid entry.
func FromRequest(r *http.Request) string {
	for _, h := range proxyHeaders {
		if ip := normalize(r.Header.Get(h)); ip != "" {
			return ip
		}
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for part := range strings.SplitSeq(fwd, ",") {
			if ip := normalize(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

type ctxKey struct{}

// Middleware stores the client IP in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ctxKey{}, FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the IP stored by Middleware.
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ctxKey{}).(string)
	return ip
}
