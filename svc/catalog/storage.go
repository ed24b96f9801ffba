package catalog

import "context"

// Storage persists products. Implementations return ErrProductNotFound for
// missing documents and ErrDuplicateProduct for id, slug or code clashes.
type Storage interface {
	Insert(ctx context.Context, p Product) error
	Replace(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (Product, error)
	FindBySlug(ctx context.Context, slug string) (Product, error)
	FindByCode(ctx context.Context, code string) (Product, error)
	// Find returns one page of products matching q and the total match count.
	// q is already normalized.
	Find(ctx context.Context, q Query) ([]Product, int64, error)
	// FindLowStock returns active products at or below their low stock alert.
	FindLowStock(ctx context.Context) ([]Product, error)
}
