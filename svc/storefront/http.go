package storefront

import (
	"cmp"
	"errors"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/svc/catalog"
	"github.com/dmitrymomot/storefront/svc/listing"
)

type empty struct{}

// filterRequest carries the changed field in the query string. Datastar
// requests send every control value as signals; plain requests pass the
// new value as a query parameter.
type filterRequest struct {
	Field      string `query:"field" json:"-"`
	Value      string `query:"value" json:"-"`
	Search     string `query:"-" json:"search"`
	Category   string `query:"-" json:"category"`
	PriceRange string `query:"-" json:"priceRange"`
	SortBy     string `query:"-" json:"sortBy"`
}

func (r filterRequest) signal(f listing.Field) string {
	switch f {
	case listing.FieldSearch:
		return r.Search
	case listing.FieldCategory:
		return r.Category
	case listing.FieldPriceRange:
		return r.PriceRange
	default:
		return r.SortBy
	}
}

type searchRequest struct {
	Term string `query:"term"`
}

type productRequest struct {
	PathID  string `path:"id"`
	QueryID string `query:"id"`
}

// DebugResponse is the body of the listing debug endpoints.
type DebugResponse struct {
	State    listing.DebugState      `json:"state"`
	Elements []listing.ElementReport `json:"elements"`
}

// Router serves the storefront pages behind the request sanitizer.
func Router(catalogSvc catalog.Service, sessions *Sessions, log *slog.Logger) chi.Router {
	if catalogSvc == nil || sessions == nil {
		panic("storefront: catalog service and sessions are required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	h := &httpHandler{catalog: catalogSvc, sessions: sessions, log: log}
	errorHandler := handler.NewErrorHandler(log, ErrorHandlerConfig())

	r := chi.NewRouter()
	guarded := r.With(
		sanitizer.Middleware(sanitizer.WithLogger(log)),
		sanitizer.InjectionGuard(sanitizer.WithLogger(log)),
	)

	guarded.Get("/", handler.Wrap(h.home,
		handler.WithErrorHandler[handler.Context, empty](errorHandler),
	))
	guarded.Post("/listing/filter", handler.Wrap(h.filter,
		handler.WithBinders[handler.Context, filterRequest](binder.Query(), handler.DataStar()),
		handler.WithErrorHandler[handler.Context, filterRequest](errorHandler),
	))
	guarded.Post("/listing/reset", handler.Wrap(h.reset,
		handler.WithErrorHandler[handler.Context, empty](errorHandler),
	))
	guarded.Get("/listing/debug", handler.Wrap(h.debug,
		handler.WithErrorHandler[handler.Context, empty](errorHandler),
	))
	guarded.Post("/listing/debug/search", handler.Wrap(h.forceSearch,
		handler.WithBinders[handler.Context, searchRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, searchRequest](errorHandler),
	))
	guarded.Post("/listing/debug/show-all", handler.Wrap(h.showAll,
		handler.WithErrorHandler[handler.Context, empty](errorHandler),
	))

	product := handler.Wrap(h.product,
		handler.WithBinders[handler.Context, productRequest](binder.Path(), binder.Query()),
		handler.WithErrorHandler[handler.Context, productRequest](errorHandler),
	)
	guarded.Get("/products", product)
	guarded.Get("/products/{id}", product)
	return r
}

type httpHandler struct {
	catalog  catalog.Service
	sessions *Sessions
	log      *slog.Logger
}

func (h *httpHandler) home(ctx handler.Context, _ empty) handler.Response {
	sess, err := h.sessions.Session(ctx.ResponseWriter(), ctx.Request())
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(CatalogPage(sess.View()))
}

// filter applies one control change. It answers once the engine applied
// the change; a search superseded by a newer keystroke gets 204 and no
// patches.
func (h *httpHandler) filter(ctx handler.Context, req filterRequest) handler.Response {
	field, err := listing.ParseField(req.Field)
	if err != nil {
		return handler.Error(errors.Join(handler.ErrBadRequest.WithKey("storefront.unknown_filter"), err))
	}

	r := ctx.Request()
	sess, err := h.sessions.Session(ctx.ResponseWriter(), r)
	if err != nil {
		return handler.Error(err)
	}

	value := req.Value
	if handler.IsDataStar(r) {
		value = req.signal(field)
	}

	status, err := sess.Engine.UpdateFilter(field, value).Wait(ctx)
	if err != nil {
		return handler.Error(err)
	}
	if status != listing.TicketDone {
		h.log.DebugContext(ctx, "filter update not applied",
			logger.Component("storefront"),
			logger.SessionID(sess.ID),
			slog.String("field", string(field)),
			slog.String("status", status.String()),
		)
		return handler.Empty()
	}

	if !handler.IsDataStar(r) {
		return handler.Redirect("/")
	}
	return gridPatches(sess.View())
}

func (h *httpHandler) reset(ctx handler.Context, _ empty) handler.Response {
	sess, err := h.sessions.Session(ctx.ResponseWriter(), ctx.Request())
	if err != nil {
		return handler.Error(err)
	}
	sess.Engine.ResetFilters()

	if !handler.IsDataStar(ctx.Request()) {
		return handler.Redirect("/")
	}
	data := sess.View()
	return handler.SSE(func(sc handler.StreamContext) error {
		if err := sc.SendSignals(data.View.Filters); err != nil {
			return err
		}
		return sc.SendMultiple(patches(data)...)
	})
}

func (h *httpHandler) debug(ctx handler.Context, _ empty) handler.Response {
	sess, err := h.sessions.Session(ctx.ResponseWriter(), ctx.Request())
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(debugResponse(sess.Engine))
}

func (h *httpHandler) forceSearch(ctx handler.Context, req searchRequest) handler.Response {
	sess, err := h.sessions.Session(ctx.ResponseWriter(), ctx.Request())
	if err != nil {
		return handler.Error(err)
	}
	sess.Engine.ForceSearch(req.Term)
	return handler.JSON(debugResponse(sess.Engine))
}

func (h *httpHandler) showAll(ctx handler.Context, _ empty) handler.Response {
	sess, err := h.sessions.Session(ctx.ResponseWriter(), ctx.Request())
	if err != nil {
		return handler.Error(err)
	}
	sess.Engine.ShowAll()
	return handler.JSON(debugResponse(sess.Engine))
}

// product renders the detail page. Unknown or missing references fall back
// to the default product.
func (h *httpHandler) product(ctx handler.Context, req productRequest) handler.Response {
	ref := cmp.Or(req.PathID, req.QueryID, catalog.DefaultProductCode)

	p, err := h.catalog.Get(ctx, ref)
	if errors.Is(err, catalog.ErrProductNotFound) && ref != catalog.DefaultProductCode {
		h.log.InfoContext(ctx, "unknown product, showing default",
			logger.Component("storefront"),
			slog.String("ref", ref),
		)
		p, err = h.catalog.Get(ctx, catalog.DefaultProductCode)
	}
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return handler.Error(errors.Join(handler.ErrNotFound, err))
	case err != nil:
		return handler.Error(err)
	}
	return handler.Templ(ProductPage(p))
}

func patches(d CatalogData) []handler.TemplPatch {
	return []handler.TemplPatch{
		handler.Patch(ResultsCounter(d.View.Counter)),
		handler.Patch(Grid(LayoutCards(d.Products, d.View))),
		handler.Patch(EmptyState(d.View.Empty)),
	}
}

func gridPatches(d CatalogData) handler.Response {
	return handler.TemplMulti(patches(d)...)
}

func debugResponse(e *listing.Engine) DebugResponse {
	return DebugResponse{State: e.State(), Elements: e.Diagnose()}
}
