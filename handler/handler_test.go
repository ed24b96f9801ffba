package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

type updateRequest struct {
	ID    string `path:"id" json:"-"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func decodeEnvelope(t *testing.T, body io.Reader) handler.JSONResponse {
	t.Helper()
	var env handler.JSONResponse
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func TestWrap_BindsPathAndBody(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(ctx handler.Context, req updateRequest) handler.Response {
			return handler.JSON(req, handler.WithJSONMeta(map[string]any{"source": "test"}))
		},
		handler.WithBinders[handler.Context, updateRequest](binder.Path(), binder.JSON()),
	)

	r := chi.NewRouter()
	r.Put("/api/products/{id}", h)

	req := httptest.NewRequest(http.MethodPut, "/api/products/p-1", strings.NewReader(`{"name":"Elden Ring","price":250000}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec.Body)
	assert.Nil(t, env.Error)
	assert.Equal(t, "test", env.Meta["source"])
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Elden Ring", data["name"])
	assert.InDelta(t, 250000, data["price"], 0)
}

func TestWrap_ErrorPaths(t *testing.T) {
	t.Parallel()

	t.Run("binding error is a bad request", func(t *testing.T) {
		t.Parallel()

		called := false
		h := handler.Wrap(
			func(ctx handler.Context, req updateRequest) handler.Response {
				called = true
				return handler.Empty()
			},
			handler.WithBinders[handler.Context, updateRequest](binder.JSON()),
		)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		var got error
		h := handler.Wrap(
			func(ctx handler.Context, req struct{}) handler.Response { return nil },
			handler.WithErrorHandler[handler.Context, struct{}](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()

		var order []string
		mark := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}

		h := handler.Wrap(
			func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, "handler")
				return handler.Empty()
			},
			handler.WithDecorators(mark("outer"), mark("inner")),
		)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	ve := handler.NewValidationError()
	ve.Add("name", "field is required")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails bool
	}{
		{name: "http error", err: handler.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "http.error.not_found"},
		{name: "wrapped http error", err: errors.Join(errors.New("lookup"), handler.ErrConflict), wantStatus: http.StatusConflict, wantCode: "http.error.conflict"},
		{name: "validation error", err: ve, wantStatus: http.StatusUnprocessableEntity, wantCode: "validation_error", wantDetails: true},
		{
			name:        "validator errors",
			err:         validator.Apply(validator.RequiredString("email", "")),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "validation_error",
			wantDetails: true,
		},
		{name: "binding error", err: binder.ErrFailedToParseQuery, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSON(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec.Body)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Nil(t, env.Data)
			if tt.wantDetails {
				assert.NotEmpty(t, env.Error.Details)
			} else {
				assert.Empty(t, env.Error.Details)
			}
		})
	}
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("plain request renders html", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := handler.Templ(text("<p>hola</p>"), handler.WithTarget("#main")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hola</p>", rec.Body.String())
	})

	t.Run("partial falls back to the full page", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := handler.TemplPartial(text("partial"), text("full")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "full", rec.Body.String())
	})

	t.Run("datastar request streams patches", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Datastar-Request", "true")
		rec := httptest.NewRecorder()

		err := handler.TemplMulti(
			handler.Patch(text(`<div id="counter">3 of 4</div>`)),
			handler.Patch(text(`<div id="empty"></div>`), handler.WithPatchMode(handler.PatchOuter)),
		).Render(rec, req)
		require.NoError(t, err)
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, `3 of 4`)
		assert.Contains(t, body, `id="empty"`)
	})

	t.Run("status is kept for plain requests", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplWithStatus(http.StatusNotFound, text("nada")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/checkout").Render(rec, httptest.NewRequest(http.MethodPost, "/cart", nil)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
}

func TestError(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(ctx handler.Context, _ struct{}) handler.Response {
			return handler.Error(handler.ErrNotFound)
		},
		handler.WithErrorHandler[handler.Context, struct{}](func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, got, handler.ErrNotFound)
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r *http.Request)
		url   string
		want  bool
	}{
		{name: "plain", url: "/", want: false},
		{name: "accept header", url: "/", setup: func(r *http.Request) { r.Header.Set("Accept", "text/event-stream") }, want: true},
		{name: "request header", url: "/", setup: func(r *http.Request) { r.Header.Set("Datastar-Request", "true") }, want: true},
		{name: "query param", url: "/?datastar=%7B%7D", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.setup != nil {
				tt.setup(r)
			}
			assert.Equal(t, tt.want, handler.IsDataStar(r))
		})
	}
}

func TestDataStarBinder(t *testing.T) {
	t.Parallel()

	type signals struct {
		Search   string `json:"search"`
		Category string `json:"category"`
	}

	var plain signals
	err := handler.DataStar()(httptest.NewRequest(http.MethodGet, "/", nil), &plain)
	assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)

	var got signals
	req := httptest.NewRequest(http.MethodGet, `/?datastar=%7B%22search%22%3A%22zelda%22%2C%22category%22%3A%22aventura%22%7D`, nil)
	require.NoError(t, handler.DataStar()(req, &got))
	assert.Equal(t, signals{Search: "zelda", Category: "aventura"}, got)
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	page := func(p handler.ErrorPageParams) templ.Component {
		return text("error page " + p.Error)
	}
	eh := handler.NewErrorHandler(logger.NewNop(), handler.ErrorHandlerConfig{ErrorPage: page})

	t.Run("api path answers json", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/api/products/x", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec.Body)
		require.NotNil(t, env.Error)
		assert.Equal(t, "http.error.not_found", env.Error.Code)
	})

	t.Run("browser gets the error page", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/products/x", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "error page http.error.not_found", rec.Body.String())
	})
}
