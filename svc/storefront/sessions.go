package storefront

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/svc/catalog"
	"github.com/dmitrymomot/storefront/svc/listing"
)

// Session is one browsing session: the products its grid was rendered from
// and the engine filtering them.
type Session struct {
	ID       string
	Products []catalog.Product
	Engine   *listing.Engine
}

// View returns the page data for the session's current filters.
func (s *Session) View() CatalogData {
	v := s.Engine.View()
	return CatalogData{Products: s.Products, View: &v}
}

// SessionOption configures Sessions.
type SessionOption func(*Sessions)

// WithEngineOptions passes opts to every engine Sessions creates.
func WithEngineOptions(opts ...listing.Option) SessionOption {
	return func(s *Sessions) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Sessions) {
		if l != nil {
			s.log = l
		}
	}
}

// Sessions keeps browsing sessions in an LRU keyed by a signed session
// cookie. Evicted and expired sessions have their engine closed.
type Sessions struct {
	cookies    *cookie.Manager
	catalog    catalog.Service
	cfg        Config
	engineOpts []listing.Option
	log        *slog.Logger

	sessions *cache.LRU[string, *Session]

	mu     sync.Mutex
	closed bool
}

// NewSessions creates the session store. Panics when cookies or catalogSvc
// is nil.
func NewSessions(cookies *cookie.Manager, catalogSvc catalog.Service, cfg Config, opts ...SessionOption) *Sessions {
	if cookies == nil {
		panic("storefront: cookie manager cannot be nil")
	}
	if catalogSvc == nil {
		panic("storefront: catalog service cannot be nil")
	}

	s := &Sessions{
		cookies: cookies,
		catalog: catalogSvc,
		cfg:     cfg.withDefaults(),
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = cache.New(s.cfg.MaxSessions,
		cache.WithTTL[string, *Session](s.cfg.SessionTTL),
		cache.WithEvictCallback(func(_ string, sess *Session) { sess.Engine.Close() }),
	)
	return s
}

// Lookup returns the request's session without creating one.
func (s *Sessions) Lookup(r *http.Request) (*Session, bool) {
	id, err := s.cookies.GetSigned(r, s.cfg.SessionCookie)
	if err != nil {
		return nil, false
	}
	return s.sessions.Get(id)
}

// Session returns the request's session, starting a new one and setting the
// session cookie when the request has none or it expired. No lock is held
// while the grid renders.
func (s *Sessions) Session(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if sess, ok := s.Lookup(r); ok {
		return sess, nil
	}

	sess, err := s.start(r.Context())
	if err != nil {
		return nil, errors.Join(ErrSessionUnavailable, err)
	}
	if err := s.keep(sess); err != nil {
		return nil, err
	}
	if err := s.cookies.SetSigned(w, s.cfg.SessionCookie, sess.ID,
		cookie.WithMaxAge(int(s.cfg.SessionTTL.Seconds())),
	); err != nil {
		s.sessions.Remove(sess.ID)
		return nil, errors.Join(ErrSessionUnavailable, err)
	}
	return sess, nil
}

// keep stores sess unless the store was closed while it was being built.
func (s *Sessions) keep(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		sess.Engine.Close()
		return errors.Join(ErrSessionUnavailable, ErrSessionsClosed)
	}
	s.sessions.Put(sess.ID, sess)
	return nil
}

// start renders the grid from the current catalog and initializes an
// engine from that markup.
func (s *Sessions) start(ctx context.Context) (*Session, error) {
	res, err := s.catalog.List(ctx, catalog.Query{
		Status:  catalog.StatusActive,
		Sort:    catalog.SortNewest,
		PerPage: s.cfg.GridSize,
	})
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	if err := CatalogBody(CatalogData{Products: res.Items}).Render(ctx, &page); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	engine := listing.New(append([]listing.Option{
		listing.WithLogger(s.log.With(logger.SessionID(id))),
	}, s.engineOpts...)...)
	if err := engine.Initialize(&page); err != nil {
		engine.Close()
		return nil, err
	}

	s.log.InfoContext(ctx, "browsing session started",
		logger.Component("storefront"),
		logger.SessionID(id),
		logger.Count(len(res.Items)),
	)
	return &Session{ID: id, Products: res.Items, Engine: engine}, nil
}

// Reset drops the request's session and closes its engine.
func (s *Sessions) Reset(w http.ResponseWriter, r *http.Request) {
	if id, err := s.cookies.GetSigned(r, s.cfg.SessionCookie); err == nil {
		s.sessions.Remove(id)
	}
	s.cookies.Delete(w, s.cfg.SessionCookie)
}

// Close closes every session engine. Sessions started afterwards are
// refused.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.sessions.Clear()
}

// Len reports how many sessions are live.
func (s *Sessions) Len() int {
	return s.sessions.Len()
}
