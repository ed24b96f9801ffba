package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is the Context handed to SSE handlers.
type StreamContext interface {
	Context
	SendComponent(component TemplComponent, opts ...TemplOption) error
	SendMultiple(patches ...TemplPatch) error
	// SendSignals patches datastar signals with the JSON encoding of v.
	SendSignals(v any) error
}

// SSEHandler drives a datastar event stream.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return ErrBadRequest.WithKey("http.error.datastar_required")
	}
	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE returns a Response that runs handler over a datastar stream.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	for _, p := range patches {
		if err := c.sse.PatchElementTempl(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (c *streamContext) SendSignals(v any) error {
	return c.sse.MarshalAndPatchSignals(v)
}
