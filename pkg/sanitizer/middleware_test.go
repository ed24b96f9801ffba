package sanitizer_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

type echoResponse struct {
	Body     string `json:"body"`
	ID       string `json:"id"`
	Q        string `json:"q"`
	HasWhere bool   `json:"has_where"`
	Length   int64  `json:"length"`
}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = json.NewEncoder(w).Encode(echoResponse{
		Body:     string(body),
		ID:       chi.URLParam(r, "id"),
		Q:        r.URL.Query().Get("q"),
		HasWhere: r.URL.Query().Has("$where"),
		Length:   r.ContentLength,
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("sanitizes json body, query and path params", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.With(sanitizer.Middleware()).Post("/items/{id}", echoHandler)

		target := "/items/abc;?q=" + url.QueryEscape("<script>s</script>") + "&" + url.QueryEscape("$where") + "=1"
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"b":"<b>x</b>","$set":{"a":1},"a":"ok;"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var got echoResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, `{"b":"x","a":"ok"}`, got.Body)
		assert.Equal(t, int64(len(got.Body)), got.Length)
		assert.Equal(t, "abc", got.ID)
		assert.Equal(t, "s", got.Q)
		assert.False(t, got.HasWhere)
	})

	t.Run("sanitizes form body", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.With(sanitizer.Middleware()).Post("/form", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			_, _ = w.Write([]byte(r.PostForm.Get("nombre") + "|" + r.PostForm.Get("$ne")))
		})

		form := url.Values{"nombre": {"<b>Ana</b>;"}, "$ne": {"1"}}
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)
		assert.Equal(t, "Ana|", rec.Body.String())
	})

	t.Run("malformed json passes through untouched", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.With(sanitizer.Middleware()).Post("/items/{id}", echoHandler)

		req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(`{"a":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		var got echoResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, `{"a":`, got.Body)
	})

	t.Run("keeps large integers exact", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			body string
			want string
		}{
			{name: "object", body: `{"id":12345678901234567891,"price":1.50}`, want: `{"id":12345678901234567891,"price":1.50}`},
			{name: "nested", body: `{"items":[{"id":98765432109876543210,"$gt":1}]}`, want: `{"items":[{"id":98765432109876543210}]}`},
			{name: "bare number", body: `12345678901234567891`, want: `12345678901234567891`},
			{name: "array", body: `[12345678901234567891,"<i>a</i>"]`, want: `[12345678901234567891,"a"]`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				r := chi.NewRouter()
				r.With(sanitizer.Middleware()).Post("/items/{id}", echoHandler)

				req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
				rec := httptest.NewRecorder()

				r.ServeHTTP(rec, req)

				var got echoResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, tt.want, got.Body)
			})
		}
	})

	t.Run("trailing data passes through untouched", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.With(sanitizer.Middleware()).Post("/items/{id}", echoHandler)

		req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(`{"a":"<b>x</b>"} {"b":1}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		var got echoResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, `{"a":"<b>x</b>"} {"b":1}`, got.Body)
	})

	t.Run("always calls next", func(t *testing.T) {
		t.Parallel()

		called := false
		h := sanitizer.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, called)
	})
}

func TestInjectionGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantNext    bool
	}{
		{"or tautology", "application/json", `{"q":"1 OR 1=1"}`, http.StatusBadRequest, false},
		{"drop table", "application/json", `{"name":"a'; DROP TABLE users;--"}`, http.StatusBadRequest, false},
		{"benign json", "application/json", `{"name":"Android phone"}`, http.StatusOK, true},
		{"suspicious form", "application/x-www-form-urlencoded", "name=DROP+TABLE", http.StatusBadRequest, false},
		{"empty body", "application/json", "", http.StatusOK, true},
		{"non json body ignored", "text/plain", "SELECT 1", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var nextBody string
			called := false
			h := sanitizer.InjectionGuard()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				b, _ := io.ReadAll(r.Body)
				nextBody = string(b)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)

			if tt.wantNext {
				assert.Equal(t, tt.body, nextBody)
				return
			}

			var refusal sanitizer.Refusal
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refusal))
			assert.Equal(t, sanitizer.Refusal{
				Success: false,
				Error:   "Suspicious request",
				Message: "SQL injection patterns detected",
			}, refusal)
		})
	}
}

func TestSanitizeThenGuard(t *testing.T) {
	t.Parallel()

	h := sanitizer.Middleware()(sanitizer.InjectionGuard()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a'; DROP TABLE users;--"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
