package binder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Path binds chi URL parameters using `path` struct tags. Requests that were
// not routed by chi are skipped with ErrBinderNotApplicable.
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return ErrBinderNotApplicable
		}

		values := make(map[string][]string, len(rctx.URLParams.Keys))
		for i, key := range rctx.URLParams.Keys {
			if i < len(rctx.URLParams.Values) && key != "*" {
				values[key] = []string{rctx.URLParams.Values[i]}
			}
		}
		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}
