package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/pkg/email"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/svc/catalog"
)

// Service prices carts against the catalog and places orders.
type Service interface {
	// Add puts quantity units of the product referenced by ref (id, slug
	// or code) into cart. Quantities below one add a single unit.
	Add(ctx context.Context, cart Cart, ref string, quantity int) (Cart, error)
	// Lines prices cart. Products that disappeared or went out of stock are
	// dropped and quantities are capped to stock; the returned cart
	// reflects those changes.
	Lines(ctx context.Context, cart Cart) (Cart, []Line, error)
	Totals(lines []Line) Totals
	// PlaceOrder confirms a complete checkout and mails the confirmation.
	PlaceOrder(ctx context.Context, cart Cart, progress Progress) (Order, error)
}

type ServiceOption func(*service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	catalog catalog.Service
	mailer  email.Sender
	cfg     Config
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates the checkout service. Panics when catalogSvc or mailer
// is nil.
func NewService(catalogSvc catalog.Service, mailer email.Sender, cfg Config, opts ...ServiceOption) Service {
	if catalogSvc == nil {
		panic("checkout: catalog service cannot be nil")
	}
	if mailer == nil {
		panic("checkout: email sender cannot be nil")
	}

	s := &service{
		catalog: catalogSvc,
		mailer:  mailer,
		cfg:     cfg.withDefaults(),
		log:     logger.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Add(ctx context.Context, cart Cart, ref string, quantity int) (Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	p, err := s.catalog.Get(ctx, ref)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return cart, errors.Join(ErrUnknownProduct, err)
	}
	if err != nil {
		return cart, err
	}
	if !purchasable(p) {
		return cart, ErrOutOfStock
	}

	current := cart.Quantity(p.ID)
	if current == 0 && len(cart.Items) >= s.cfg.MaxItems {
		return cart, ErrCartFull
	}
	want := current + quantity
	if want > min(p.Quantity, s.cfg.MaxQuantity) {
		return cart, ErrInsufficientStock
	}

	s.log.InfoContext(ctx, "product added to cart",
		logger.Component("checkout"),
		logger.ProductID(p.ID),
		logger.Count(want),
	)
	return cart.Set(p.ID, want), nil
}

func (s *service) Lines(ctx context.Context, cart Cart) (Cart, []Line, error) {
	pruned := Cart{}
	lines := make([]Line, 0, len(cart.Items))

	for _, it := range cart.Items {
		p, err := s.catalog.Get(ctx, it.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			s.log.WarnContext(ctx, "cart product no longer exists",
				logger.Component("checkout"),
				logger.ProductID(it.ProductID),
			)
			continue
		}
		if err != nil {
			return cart, nil, err
		}
		if !purchasable(p) {
			continue
		}

		qty := min(it.Quantity, p.Quantity, s.cfg.MaxQuantity)
		if qty < 1 {
			continue
		}
		pruned = pruned.Set(p.ID, qty)
		lines = append(lines, Line{Product: p, Quantity: qty})
	}
	return pruned, lines, nil
}

func (s *service) Totals(lines []Line) Totals {
	return ComputeTotals(lines, s.cfg)
}

func (s *service) PlaceOrder(ctx context.Context, cart Cart, progress Progress) (Order, error) {
	if !progress.Complete() {
		return Order{}, ErrCheckoutIncomplete
	}
	_, lines, err := s.Lines(ctx, cart)
	if err != nil {
		return Order{}, err
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		Number:   newOrderNumber(),
		PlacedAt: s.now(),
		Customer: *progress.Customer,
		Address:  *progress.Address,
		Payment:  *progress.Payment,
		Lines:    lines,
		Totals:   s.Totals(lines),
	}

	s.log.InfoContext(ctx, "order placed",
		logger.Component("checkout"),
		logger.OrderID(order.Number),
		logger.Count(len(lines)),
		slog.Int64("total", order.Totals.Total),
	)

	// The order stands even when the confirmation cannot be mailed.
	if err := s.sendConfirmation(ctx, order); err != nil {
		s.log.ErrorContext(ctx, "order confirmation not sent",
			logger.Component("checkout"),
			logger.OrderID(order.Number),
			logger.Error(err),
		)
	}
	return order, nil
}

func (s *service) sendConfirmation(ctx context.Context, order Order) error {
	body, err := email.Render(ctx, ConfirmationEmail(order))
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, email.Message{
		To:       order.Customer.Email,
		Subject:  "Confirmación de tu pedido " + order.Number,
		HTMLBody: body,
		Tag:      "order-confirmation",
	})
}

func purchasable(p catalog.Product) bool {
	return p.Status == catalog.StatusActive && p.Quantity > 0
}
