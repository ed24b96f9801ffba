package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Service manages catalog products.
type Service interface {
	List(ctx context.Context, q Query) (ListResult, error)
	// Get resolves ref as an id, then a slug, then a product code.
	Get(ctx context.Context, ref string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
	LowStock(ctx context.Context) ([]Product, error)
	// Seed inserts products whose code is not stored yet and returns how
	// many were added.
	Seed(ctx context.Context, products []Product) (int, error)
}

type ServiceOption func(*service)

func WithCache(c Cache) ServiceOption {
	return func(s *service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	storage Storage
	cache   Cache
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a catalog service. Panics when storage is nil.
func NewService(storage Storage, opts ...ServiceOption) Service {
	if storage == nil {
		panic("catalog: storage cannot be nil")
	}
	s := &service{
		storage: storage,
		cache:   NoOpCache{},
		log:     logger.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, q Query) (ListResult, error) {
	q = q.Normalize()
	items, total, err := s.storage.Find(ctx, q)
	if err != nil {
		return ListResult{}, err
	}
	if items == nil {
		items = []Product{}
	}
	return ListResult{Items: items, Total: total, Page: q.Page, PerPage: q.PerPage}, nil
}

func (s *service) Get(ctx context.Context, ref string) (Product, error) {
	if ref == "" {
		return Product{}, ErrProductNotFound
	}
	if p, ok := s.cache.Get(ctx, idKey(ref)); ok {
		return *p, nil
	}

	lookups := []func(context.Context, string) (Product, error){
		s.storage.FindByID,
		s.storage.FindBySlug,
		s.storage.FindByCode,
	}
	for _, find := range lookups {
		p, err := find(ctx, ref)
		if errors.Is(err, ErrProductNotFound) {
			continue
		}
		if err != nil {
			return Product{}, err
		}
		s.store(ctx, p)
		return p, nil
	}
	return Product{}, ErrProductNotFound
}

func (s *service) Create(ctx context.Context, p Product) (Product, error) {
	p.ID = bson.NewObjectID().Hex()
	if p.LowStockAlert == 0 {
		p.LowStockAlert = DefaultLowStockAlert
	}
	p.CreatedAt = time.Time{}
	p.prepare(s.now())

	if err := p.Validate(); err != nil {
		return Product{}, errors.Join(ErrInvalidProduct, err)
	}
	if err := s.storage.Insert(ctx, p); err != nil {
		return Product{}, err
	}

	s.log.InfoContext(ctx, "product created",
		logger.Component("catalog"),
		logger.ProductID(p.ID),
		slog.String("slug", p.Slug),
	)
	return p, nil
}

// Update replaces the editable fields of product id. Identity, creation
// time and counters collected by the store are kept.
func (s *service) Update(ctx context.Context, id string, p Product) (Product, error) {
	current, err := s.storage.FindByID(ctx, id)
	if err != nil {
		return Product{}, err
	}

	p.ID = current.ID
	p.CreatedAt = current.CreatedAt
	p.Rating = current.Rating
	p.SalesCount = current.SalesCount
	p.ViewCount = current.ViewCount
	if p.Slug == "" {
		p.Slug = current.Slug
	}
	p.prepare(s.now())

	if err := p.Validate(); err != nil {
		return Product{}, errors.Join(ErrInvalidProduct, err)
	}
	if err := s.storage.Replace(ctx, p); err != nil {
		return Product{}, err
	}

	s.evict(ctx, current)
	s.log.InfoContext(ctx, "product updated", logger.Component("catalog"), logger.ProductID(p.ID))
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	current, err := s.storage.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, current)
	s.log.InfoContext(ctx, "product deleted", logger.Component("catalog"), logger.ProductID(id))
	return nil
}

func (s *service) LowStock(ctx context.Context) ([]Product, error) {
	return s.storage.FindLowStock(ctx)
}

func (s *service) Seed(ctx context.Context, products []Product) (int, error) {
	added := 0
	for _, p := range products {
		if p.Code != "" {
			_, err := s.storage.FindByCode(ctx, p.Code)
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrProductNotFound) {
				return added, err
			}
		}
		if _, err := s.Create(ctx, p); err != nil {
			if errors.Is(err, ErrDuplicateProduct) {
				continue
			}
			return added, err
		}
		added++
	}
	s.log.InfoContext(ctx, "catalog seeded", logger.Component("catalog"), logger.Count(added))
	return added, nil
}

func (s *service) store(ctx context.Context, p Product) {
	for _, key := range cacheKeys(p) {
		if err := s.cache.Set(ctx, key, &p); err != nil {
			s.log.WarnContext(ctx, "failed to cache product",
				logger.Component("catalog"),
				logger.ProductID(p.ID),
				logger.Error(err),
			)
			return
		}
	}
}

func (s *service) evict(ctx context.Context, p Product) {
	for _, key := range cacheKeys(p) {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.log.WarnContext(ctx, "failed to evict product",
				logger.Component("catalog"),
				logger.ProductID(p.ID),
				logger.Error(err),
			)
		}
	}
}

// Every lookup reference of a product shares one key space so Get can hit
// the cache before knowing whether ref is an id, slug or code.
func idKey(ref string) string { return "product:" + ref }

func cacheKeys(p Product) []string {
	keys := []string{idKey(p.ID), idKey(p.Slug)}
	if p.Code != "" {
		keys = append(keys, idKey(p.Code))
	}
	return keys
}
