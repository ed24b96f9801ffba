package binder

import (
	"fmt"
	"net/http"
	"net/url"
)

// Query binds URL query parameters using `query` struct tags.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
		}
		return bindToStruct(v, "query", values, ErrFailedToParseQuery)
	}
}
