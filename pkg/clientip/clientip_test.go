package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "10.0.0.7:5123", want: "10.0.0.7"},
		{name: "remote addr without port", remoteAddr: "10.0.0.7", want: "10.0.0.7"},
		{name: "cloudflare wins", headers: map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Real-IP": "2.2.2.2"}, remoteAddr: "10.0.0.7:1", want: "1.1.1.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "2.2.2.2"}, remoteAddr: "10.0.0.7:1", want: "2.2.2.2"},
		{name: "first valid forwarded entry", headers: map[string]string{"X-Forwarded-For": "garbage, 3.3.3.3, 4.4.4.4"}, remoteAddr: "10.0.0.7:1", want: "3.3.3.3"},
		{name: "invalid header falls through", headers: map[string]string{"CF-Connecting-IP": "not-an-ip"}, remoteAddr: "10.0.0.7:1", want: "10.0.0.7"},
		{name: "ipv6 normalized", remoteAddr: "[2001:db8:0:0::1]:443", want: "2001:db8::1"},
		{name: "nothing parses", remoteAddr: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.9", got)
}
