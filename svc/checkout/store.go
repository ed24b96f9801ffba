package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Store keeps the cart and checkout progress in encrypted cookies.
type Store struct {
	cookies *cookie.Manager
	cfg     Config
	log     *slog.Logger
}

// NewStore creates a cookie store. Panics when cookies is nil.
func NewStore(cookies *cookie.Manager, cfg Config, log *slog.Logger) *Store {
	if cookies == nil {
		panic("checkout: cookie manager cannot be nil")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{cookies: cookies, cfg: cfg.withDefaults(), log: log}
}

// Cart returns the request's cart. A missing or unreadable cookie yields
// an empty cart.
func (s *Store) Cart(r *http.Request) Cart {
	var c Cart
	if err := s.cookies.GetJSON(r, s.cfg.CartCookie, &c); err != nil {
		s.logUnreadable(r, s.cfg.CartCookie, err)
		return Cart{}
	}
	return c
}

func (s *Store) SaveCart(w http.ResponseWriter, c Cart) error {
	if c.IsEmpty() {
		s.cookies.Delete(w, s.cfg.CartCookie)
		return nil
	}
	return s.cookies.SetJSON(w, s.cfg.CartCookie, c, cookie.WithMaxAge(int(s.cfg.CookieTTL.Seconds())))
}

// Progress returns the request's checkout progress, starting over when the
// cookie is missing, unreadable or out of range.
func (s *Store) Progress(r *http.Request) Progress {
	var p Progress
	if err := s.cookies.GetJSON(r, s.cfg.ProgressCookie, &p); err != nil {
		s.logUnreadable(r, s.cfg.ProgressCookie, err)
		return NewProgress()
	}
	if p.Reached < StepCustomer || p.Reached > StepReview {
		return NewProgress()
	}
	return p
}

func (s *Store) SaveProgress(w http.ResponseWriter, p Progress) error {
	return s.cookies.SetJSON(w, s.cfg.ProgressCookie, p, cookie.WithMaxAge(int(s.cfg.CookieTTL.Seconds())))
}

// Clear drops the cart and the progress.
func (s *Store) Clear(w http.ResponseWriter) {
	s.cookies.Delete(w, s.cfg.CartCookie)
	s.cookies.Delete(w, s.cfg.ProgressCookie)
}

func (s *Store) logUnreadable(r *http.Request, name string, err error) {
	if errors.Is(err, cookie.ErrCookieNotFound) {
		return
	}
	s.log.WarnContext(r.Context(), "unreadable checkout cookie",
		logger.Component("checkout"),
		slog.String("cookie", name),
		logger.Error(err),
	)
}
