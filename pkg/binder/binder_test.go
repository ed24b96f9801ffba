package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/binder"
)

type productRequest struct {
	ID       string   `path:"id" json:"-"`
	Name     string   `json:"name" form:"name" query:"name"`
	Price    int64    `json:"price" form:"price" query:"price"`
	Tags     []string `json:"tags" form:"tags" query:"tags"`
	Featured *bool    `json:"featured,omitempty" form:"featured" query:"featured"`
	Ignored  string   `json:"-" form:"-" query:"-" path:"-"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
		want        productRequest
	}{
		{
			name:        "valid body is decoded and sanitized",
			contentType: "application/json; charset=utf-8",
			body:        `{"name":"<b>Elden</b> Ring;","price":250000,"tags":["rpg","{souls}"]}`,
			want:        productRequest{Name: "Elden Ring", Price: 250000, Tags: []string{"rpg", "souls"}},
		},
		{
			name:    "missing content type",
			body:    `{"name":"x"}`,
			wantErr: binder.ErrMissingContentType,
		},
		{
			name:        "wrong media type",
			contentType: "text/plain",
			body:        `{"name":"x"}`,
			wantErr:     binder.ErrUnsupportedMediaType,
		},
		{
			name:        "unknown field",
			contentType: "application/json",
			body:        `{"nombre":"x"}`,
			wantErr:     binder.ErrFailedToParseJSON,
		},
		{
			name:        "trailing data",
			contentType: "application/json",
			body:        `{"name":"x"} {"name":"y"}`,
			wantErr:     binder.ErrFailedToParseJSON,
		},
		{
			name:        "empty body",
			contentType: "application/json",
			wantErr:     binder.ErrFailedToParseJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var got productRequest
			err := binder.JSON()(req, &got)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, binder.IsBindingError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSON_TooLarge(t *testing.T) {
	t.Parallel()

	body := `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var got productRequest
	err := binder.JSON()(req, &got)
	require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	assert.Contains(t, err.Error(), "too large")
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()

		form := url.Values{
			"name":     {"Hollow <i>Knight</i>"},
			"price":    {"85000"},
			"tags":     {"metroidvania,indie", "2d"},
			"featured": {"on"},
			"Ignored":  {"nope"},
		}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got productRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "Hollow Knight", got.Name)
		assert.Equal(t, int64(85000), got.Price)
		assert.Equal(t, []string{"metroidvania", "indie", "2d"}, got.Tags)
		require.NotNil(t, got.Featured)
		assert.True(t, *got.Featured)
		assert.Empty(t, got.Ignored)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("price=abc"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got productRequest
		err := binder.Form()(req, &got)
		require.ErrorIs(t, err, binder.ErrFailedToParseForm)
		assert.Contains(t, err.Error(), "Price")
	})

	t.Run("json is not a form", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		var got productRequest
		require.ErrorIs(t, binder.Form()(req, &got), binder.ErrUnsupportedMediaType)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?name=zelda&price=320000&tags=aventura&tags=sandbox", nil)

	var got productRequest
	require.NoError(t, binder.Query()(req, &got))
	assert.Equal(t, "zelda", got.Name)
	assert.Equal(t, int64(320000), got.Price)
	assert.Equal(t, []string{"aventura", "sandbox"}, got.Tags)
	assert.Nil(t, got.Featured)

	var target string
	err := binder.Query()(req, &target)
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
}

func TestPath(t *testing.T) {
	t.Parallel()

	t.Run("chi params", func(t *testing.T) {
		t.Parallel()

		var got productRequest
		r := chi.NewRouter()
		r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, binder.Path()(r, &got))
			w.WriteHeader(http.StatusNoContent)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/elden-ring", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "elden-ring", got.ID)
	})

	t.Run("not routed by chi", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/products/x", nil).WithContext(context.Background())
		var got productRequest
		assert.ErrorIs(t, binder.Path()(req, &got), binder.ErrBinderNotApplicable)
		assert.False(t, binder.IsBindingError(binder.ErrBinderNotApplicable))
	})
}
