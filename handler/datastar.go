package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/storefront/pkg/binder"
)

const (
	DataStarAcceptHeader = "text/event-stream"
	DataStarQueryParam   = "datastar"
)

// Element patch modes.
const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r was issued by the datastar client.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return r.Header.Get("Datastar-Request") == "true"
}

// DataStar binds the datastar signals of the request into v. Requests not
// coming from datastar are skipped with binder.ErrBinderNotApplicable.
func DataStar() Bind {
	return func(r *http.Request, v any) error {
		if !IsDataStar(r) {
			return binder.ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return ErrBadRequest.WithKey("http.error.invalid_signals")
		}
		return nil
	}
}
