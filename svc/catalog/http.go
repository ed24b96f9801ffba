package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

type getRequest struct {
	Ref string `path:"id"`
}

type updateRequest struct {
	ID string `path:"id" json:"-"`
	Product
}

type deleteRequest struct {
	ID string `path:"id"`
}

// Router serves the product API. Every route runs behind the request
// sanitizer and the injection guard; they are attached per route so chi
// path parameters are already resolved when they run.
func Router(svc Service, log *slog.Logger) chi.Router {
	if svc == nil {
		panic("catalog: service cannot be nil")
	}

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{})
	h := &httpHandler{svc: svc}

	r := chi.NewRouter()
	guarded := r.With(
		sanitizer.Middleware(sanitizer.WithLogger(log)),
		sanitizer.InjectionGuard(sanitizer.WithLogger(log)),
	)

	guarded.Get("/", handler.Wrap(h.list,
		handler.WithBinders[handler.Context, Query](binder.Query()),
		handler.WithErrorHandler[handler.Context, Query](errorHandler),
	))
	guarded.Get("/{id}", handler.Wrap(h.get,
		handler.WithBinders[handler.Context, getRequest](binder.Path()),
		handler.WithErrorHandler[handler.Context, getRequest](errorHandler),
	))
	guarded.Post("/", handler.Wrap(h.create,
		handler.WithBinders[handler.Context, Product](binder.JSON()),
		handler.WithErrorHandler[handler.Context, Product](errorHandler),
	))
	guarded.Put("/{id}", handler.Wrap(h.update,
		handler.WithBinders[handler.Context, updateRequest](binder.Path(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, updateRequest](errorHandler),
	))
	guarded.Delete("/{id}", handler.Wrap(h.delete,
		handler.WithBinders[handler.Context, deleteRequest](binder.Path()),
		handler.WithErrorHandler[handler.Context, deleteRequest](errorHandler),
	))
	return r
}

type httpHandler struct {
	svc Service
}

func (h *httpHandler) list(ctx handler.Context, q Query) handler.Response {
	res, err := h.svc.List(ctx, q)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	views := make([]ProductView, len(res.Items))
	for i, p := range res.Items {
		views[i] = p.View()
	}
	return handler.JSON(views, handler.WithJSONMeta(map[string]any{
		"total":    res.Total,
		"page":     res.Page,
		"per_page": res.PerPage,
	}))
}

func (h *httpHandler) get(ctx handler.Context, req getRequest) handler.Response {
	p, err := h.svc.Get(ctx, req.Ref)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(p.View())
}

func (h *httpHandler) create(ctx handler.Context, in Product) handler.Response {
	p, err := h.svc.Create(ctx, in)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(p.View(), handler.WithJSONStatus(http.StatusCreated))
}

func (h *httpHandler) update(ctx handler.Context, req updateRequest) handler.Response {
	p, err := h.svc.Update(ctx, req.ID, req.Product)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(p.View())
}

func (h *httpHandler) delete(ctx handler.Context, req deleteRequest) handler.Response {
	if err := h.svc.Delete(ctx, req.ID); err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.Empty()
}

// httpError attaches the HTTP status for catalog errors.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return errors.Join(handler.ErrNotFound.WithKey("catalog.product_not_found"), err)
	case errors.Is(err, ErrDuplicateProduct):
		return errors.Join(handler.ErrConflict.WithKey("catalog.duplicate_product"), err)
	default:
		return err
	}
}
