package catalog

import (
	"context"
	"sync"
)

// MemoryStorage keeps products in process memory. It backs development
// runs without MongoDB and the package tests.
type MemoryStorage struct {
	mu       sync.RWMutex
	products map[string]Product
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{products: make(map[string]Product)}
}

func (s *MemoryStorage) Insert(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; exists {
		return ErrDuplicateProduct
	}
	if s.conflicts(p) {
		return ErrDuplicateProduct
	}
	s.products[p.ID] = p.clone()
	return nil
}

func (s *MemoryStorage) Replace(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		return ErrProductNotFound
	}
	if s.conflicts(p) {
		return ErrDuplicateProduct
	}
	s.products[p.ID] = p.clone()
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStorage) FindByID(ctx context.Context, id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p.clone(), nil
}

func (s *MemoryStorage) FindBySlug(ctx context.Context, slug string) (Product, error) {
	return s.findOne(func(p Product) bool { return p.Slug == slug })
}

func (s *MemoryStorage) FindByCode(ctx context.Context, code string) (Product, error) {
	return s.findOne(func(p Product) bool { return p.Code != "" && p.Code == code })
}

func (s *MemoryStorage) Find(ctx context.Context, q Query) ([]Product, int64, error) {
	matched := s.filter(q.matches)
	sortProducts(matched, q.Sort)

	total := int64(len(matched))
	start := min(q.Offset(), len(matched))
	end := min(start+q.PerPage, len(matched))
	return matched[start:end], total, nil
}

func (s *MemoryStorage) FindLowStock(ctx context.Context) ([]Product, error) {
	low := s.filter(func(p Product) bool {
		return p.Status == StatusActive && p.Quantity <= p.LowStockAlert
	})
	sortProducts(low, SortName)
	return low, nil
}

func (s *MemoryStorage) findOne(match func(Product) bool) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if match(p) {
			return p.clone(), nil
		}
	}
	return Product{}, ErrProductNotFound
}

func (s *MemoryStorage) filter(match func(Product) bool) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product
	for _, p := range s.products {
		if match(p) {
			out = append(out, p.clone())
		}
	}
	return out
}

// conflicts reports whether another product already uses p's slug or code.
func (s *MemoryStorage) conflicts(p Product) bool {
	for _, other := range s.products {
		if other.ID == p.ID {
			continue
		}
		if other.Slug == p.Slug || (p.Code != "" && other.Code == p.Code) {
			return true
		}
	}
	return false
}
