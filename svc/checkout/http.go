package checkout

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/storefront"
)

// Notice codes passed to the cart page after a rejected change.
const (
	NoticeUnknownProduct    = "unknown_product"
	NoticeOutOfStock        = "out_of_stock"
	NoticeInsufficientStock = "insufficient_stock"
	NoticeCartFull          = "cart_full"
)

var notices = map[string]string{
	NoticeUnknownProduct:    "El producto ya no está disponible.",
	NoticeOutOfStock:        "El producto está agotado.",
	NoticeInsufficientStock: "No hay suficientes unidades disponibles.",
	NoticeCartFull:          "Tu carrito alcanzó el máximo de productos.",
}

func noticeFor(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrUnknownProduct):
		return NoticeUnknownProduct, true
	case errors.Is(err, ErrOutOfStock):
		return NoticeOutOfStock, true
	case errors.Is(err, ErrInsufficientStock):
		return NoticeInsufficientStock, true
	case errors.Is(err, ErrCartFull):
		return NoticeCartFull, true
	}
	return "", false
}

type empty struct{}

type cartRequest struct {
	Notice string `query:"notice"`
}

type addRequest struct {
	Product  string `form:"product"`
	Quantity int    `form:"quantity"`
}

type removeRequest struct {
	ID string `path:"id"`
}

type checkoutRequest struct {
	Step string `query:"step"`
}

// Router serves the cart and checkout pages behind the request sanitizer.
func Router(svc Service, store *Store, log *slog.Logger) chi.Router {
	if svc == nil || store == nil {
		panic("checkout: service and store are required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	h := &httpHandler{svc: svc, store: store, log: log}
	errorHandler := handler.NewErrorHandler(log, storefront.ErrorHandlerConfig())

	r := chi.NewRouter()
	guarded := r.With(
		sanitizer.Middleware(sanitizer.WithLogger(log)),
		sanitizer.InjectionGuard(sanitizer.WithLogger(log)),
	)

	guarded.Get("/cart", handler.Wrap(h.cart,
		handler.WithBinders[handler.Context, cartRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, cartRequest](errorHandler),
	))
	guarded.Post("/cart/items", handler.Wrap(h.add,
		handler.WithBinders[handler.Context, addRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, addRequest](errorHandler),
	))
	remove := handler.Wrap(h.remove,
		handler.WithBinders[handler.Context, removeRequest](binder.Path()),
		handler.WithErrorHandler[handler.Context, removeRequest](errorHandler),
	)
	guarded.Delete("/cart/items/{id}", remove)
	guarded.Post("/cart/items/{id}/delete", remove)

	guarded.Get("/checkout", handler.Wrap(h.checkout,
		handler.WithBinders[handler.Context, checkoutRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, checkoutRequest](errorHandler),
	))
	guarded.Post("/checkout/step/{id}", handler.Wrap(h.submit,
		handler.WithBinders[handler.Context, StepForm](binder.Form()),
		handler.WithErrorHandler[handler.Context, StepForm](errorHandler),
	))
	guarded.Post("/checkout/confirm", handler.Wrap(h.confirm,
		handler.WithErrorHandler[handler.Context, empty](errorHandler),
	))
	return r
}

type httpHandler struct {
	svc   Service
	store *Store
	log   *slog.Logger
}

// lines prices the request's cart and rewrites the cookie when products
// were dropped or capped.
func (h *httpHandler) lines(ctx handler.Context) ([]Line, error) {
	cart := h.store.Cart(ctx.Request())
	pruned, lines, err := h.svc.Lines(ctx, cart)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(pruned.Items, cart.Items) {
		if err := h.store.SaveCart(ctx.ResponseWriter(), pruned); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

func (h *httpHandler) cart(ctx handler.Context, req cartRequest) handler.Response {
	lines, err := h.lines(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(CartPage(CartData{
		Lines:  lines,
		Totals: h.svc.Totals(lines),
		Notice: notices[req.Notice],
	}))
}

func (h *httpHandler) add(ctx handler.Context, req addRequest) handler.Response {
	if req.Product == "" {
		return handler.Error(handler.ErrBadRequest.WithKey("checkout.product_required"))
	}

	cart, err := h.svc.Add(ctx, h.store.Cart(ctx.Request()), req.Product, req.Quantity)
	if code, ok := noticeFor(err); ok {
		return handler.Redirect("/cart?notice=" + url.QueryEscape(code))
	}
	if err != nil {
		return handler.Error(err)
	}
	if err := h.store.SaveCart(ctx.ResponseWriter(), cart); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect("/cart")
}

func (h *httpHandler) remove(ctx handler.Context, req removeRequest) handler.Response {
	cart, removed := h.store.Cart(ctx.Request()).Remove(req.ID)
	if !removed {
		return handler.Error(errors.Join(handler.ErrNotFound.WithKey("checkout.not_in_cart"), ErrNotInCart))
	}
	if err := h.store.SaveCart(ctx.ResponseWriter(), cart); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect("/cart")
}

func (h *httpHandler) checkout(ctx handler.Context, req checkoutRequest) handler.Response {
	lines, err := h.lines(ctx)
	if err != nil {
		return handler.Error(err)
	}
	if len(lines) == 0 {
		return handler.Redirect("/cart")
	}

	progress := h.store.Progress(ctx.Request())
	step := progress.Reached
	if req.Step != "" {
		s, err := ParseStep(req.Step)
		if err != nil || !progress.CanVisit(s) {
			return handler.Redirect("/checkout")
		}
		step = s
	}

	return handler.Templ(CheckoutPage(CheckoutData{
		Step:     step,
		Progress: progress,
		Lines:    lines,
		Totals:   h.svc.Totals(lines),
		Form:     progress.Form(),
	}))
}

func (h *httpHandler) submit(ctx handler.Context, form StepForm) handler.Response {
	step, err := ParseStep(chi.URLParam(ctx.Request(), "id"))
	if err != nil || step == StepReview {
		return handler.Error(errors.Join(handler.ErrNotFound.WithKey("checkout.unknown_step"), ErrUnknownStep))
	}

	lines, err := h.lines(ctx)
	if err != nil {
		return handler.Error(err)
	}
	if len(lines) == 0 {
		return handler.Redirect("/cart")
	}

	progress := h.store.Progress(ctx.Request())
	next, err := progress.Submit(ctx, step, form)
	switch {
	case errors.Is(err, ErrStepLocked):
		return handler.Redirect("/checkout")
	case errors.Is(err, ErrInvalidStep):
		h.log.InfoContext(ctx, "checkout step rejected",
			logger.Component("checkout"),
			slog.String("step", step.String()),
			slog.Any("fields", validator.Extract(err).Fields()),
		)
		return handler.TemplWithStatus(http.StatusUnprocessableEntity, CheckoutPage(CheckoutData{
			Step:     step,
			Progress: progress,
			Lines:    lines,
			Totals:   h.svc.Totals(lines),
			Form:     form,
			Errors:   validator.Extract(err),
		}))
	case err != nil:
		return handler.Error(err)
	}

	if err := h.store.SaveProgress(ctx.ResponseWriter(), next); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect("/checkout")
}

func (h *httpHandler) confirm(ctx handler.Context, _ empty) handler.Response {
	r := ctx.Request()
	order, err := h.svc.PlaceOrder(ctx, h.store.Cart(r), h.store.Progress(r))
	switch {
	case errors.Is(err, ErrEmptyCart):
		return handler.Redirect("/cart")
	case errors.Is(err, ErrCheckoutIncomplete):
		return handler.Redirect("/checkout")
	case err != nil:
		return handler.Error(err)
	}

	h.store.Clear(ctx.ResponseWriter())
	return handler.Templ(ConfirmationPage(order))
}
