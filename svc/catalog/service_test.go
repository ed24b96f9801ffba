package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/catalog"
)

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (*catalog.Product, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*catalog.Product), args.Bool(1)
}

func (m *mockCache) Set(ctx context.Context, key string, p *catalog.Product) error {
	return m.Called(ctx, key, p).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newService(t *testing.T, opts ...catalog.ServiceOption) (catalog.Service, *catalog.MemoryStorage) {
	t.Helper()
	storage := catalog.NewMemoryStorage()
	opts = append([]catalog.ServiceOption{catalog.WithClock(func() time.Time { return fixedNow })}, opts...)
	return catalog.NewService(storage, opts...), storage
}

func TestNewService_PanicsWithoutStorage(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { catalog.NewService(nil) })
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	assert.Len(t, p.ID, 24)
	assert.Equal(t, "hollow-knight", p.Slug)
	assert.Equal(t, catalog.CategoryMetroidvania, p.Category)
	assert.Equal(t, catalog.StatusActive, p.Status)
	assert.True(t, p.InStock)
	assert.Equal(t, 20, p.Discount)
	assert.Equal(t, catalog.DefaultLowStockAlert, p.LowStockAlert)
	assert.Equal(t, []string{"indie", "metroidvania"}, p.Tags)
	assert.Equal(t, []string{"hollow knight", "team cherry", "metroidvania", "hollow", "knight"}, p.Keywords)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, fixedNow, p.UpdatedAt)

	t.Run("out of stock", func(t *testing.T) {
		t.Parallel()

		in := validProduct()
		in.Code = "HK-2"
		in.Name = "Hollow Knight Silksong"
		in.Quantity = 0
		p, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.False(t, p.InStock)
	})

	t.Run("invalid product", func(t *testing.T) {
		t.Parallel()

		in := validProduct()
		in.Code = ""
		in.Name = "Otro juego"
		in.Images = nil
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, catalog.ErrInvalidProduct)
		assert.True(t, validator.Extract(err).Has("images"))
	})
}

func TestService_CreateDuplicateSlug(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	dup := validProduct()
	dup.Code = "HK-9"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, catalog.ErrDuplicateProduct)
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	for _, ref := range []string{created.ID, created.Slug, created.Code} {
		got, err := svc.Get(ctx, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, created.ID, got.ID)
	}

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestService_GetUsesCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("hit skips storage", func(t *testing.T) {
		t.Parallel()

		cached := &catalog.Product{ID: "cached", Name: "From cache"}
		c := &mockCache{}
		c.On("Get", mock.Anything, "product:cached").Return(cached, true).Once()

		svc, _ := newService(t, catalog.WithCache(c))
		got, err := svc.Get(ctx, "cached")
		require.NoError(t, err)
		assert.Equal(t, "From cache", got.Name)
		c.AssertExpectations(t)
	})

	t.Run("miss stores every reference", func(t *testing.T) {
		t.Parallel()

		c := &mockCache{}
		svc, _ := newService(t, catalog.WithCache(c))

		created, err := svc.Create(ctx, validProduct())
		require.NoError(t, err)

		c.On("Get", mock.Anything, "product:HK-1").Return(nil, false).Once()
		for _, key := range []string{"product:" + created.ID, "product:hollow-knight", "product:HK-1"} {
			c.On("Set", mock.Anything, key, mock.AnythingOfType("*catalog.Product")).Return(nil).Once()
		}

		got, err := svc.Get(ctx, "HK-1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		c.AssertExpectations(t)
	})

	t.Run("cache failure does not fail the lookup", func(t *testing.T) {
		t.Parallel()

		c := &mockCache{}
		svc, _ := newService(t, catalog.WithCache(c))

		created, err := svc.Create(ctx, validProduct())
		require.NoError(t, err)

		c.On("Get", mock.Anything, mock.Anything).Return(nil, false)
		c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(catalog.ErrCache).Once()

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		c.AssertNumberOfCalls(t, "Set", 1)
	})
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	c := &mockCache{}
	svc, _ := newService(t, catalog.WithCache(c))
	ctx := context.Background()

	created, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	for _, key := range []string{"product:" + created.ID, "product:hollow-knight", "product:HK-1"} {
		c.On("Delete", mock.Anything, key).Return(nil).Once()
	}

	in := validProduct()
	in.ID = "ignored"
	in.Price = 50_000
	in.Quantity = 0
	in.SalesCount = 999

	updated, err := svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	c.AssertExpectations(t)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Zero(t, updated.SalesCount)
	assert.Equal(t, int64(50_000), updated.Price)
	assert.Equal(t, 37, updated.Discount)
	assert.False(t, updated.InStock)

	_, err = svc.Update(ctx, "missing", validProduct())
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestService_Delete(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), catalog.ErrProductNotFound)
}

func TestService_List(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	added, err := svc.Seed(ctx, catalog.SeedProducts())
	require.NoError(t, err)
	require.Equal(t, len(catalog.SeedProducts()), added)

	yes := true

	tests := []struct {
		name  string
		query catalog.Query
		total int64
		first string
	}{
		{"all sorted by price", catalog.Query{Sort: catalog.SortPriceAsc}, 10, "HK-1"},
		{"search in description", catalog.Query{Search: "hyrule"}, 1, "ZLOZ-4"},
		{"search is case insensitive", catalog.Query{Search: "APPLE", Sort: catalog.SortName}, 2, "airpods-pro"},
		{"category", catalog.Query{Category: "Aventura", Sort: catalog.SortPriceDesc}, 2, "ZLOZ-4"},
		{"brand", catalog.Query{Brand: "nintendo"}, 1, "ZLOZ-4"},
		{"price range", catalog.Query{MinPrice: 200_000, MaxPrice: 250_000, Sort: catalog.SortPriceAsc}, 2, "ER-3"},
		{"in stock only", catalog.Query{InStock: &yes, Search: "apple"}, 1, catalog.DefaultProductCode},
		{"featured", catalog.Query{Featured: &yes}, 1, catalog.DefaultProductCode},
		{"rating", catalog.Query{Sort: catalog.SortRating}, 10, catalog.DefaultProductCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := svc.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.total, res.Total)
			require.NotEmpty(t, res.Items)
			assert.Equal(t, tt.first, res.Items[0].Code)
		})
	}

	t.Run("pagination", func(t *testing.T) {
		t.Parallel()

		res, err := svc.List(ctx, catalog.Query{Sort: catalog.SortName, Page: 3, PerPage: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(10), res.Total)
		assert.Equal(t, 3, res.Page)
		assert.Len(t, res.Items, 2)
	})

	t.Run("page past the end", func(t *testing.T) {
		t.Parallel()

		res, err := svc.List(ctx, catalog.Query{Page: 9})
		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})
}

func TestService_Seed(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	added, err := svc.Seed(ctx, catalog.SeedProducts())
	require.NoError(t, err)
	assert.Equal(t, 10, added)

	added, err = svc.Seed(ctx, catalog.SeedProducts())
	require.NoError(t, err)
	assert.Zero(t, added)

	p, err := svc.Get(ctx, catalog.DefaultProductCode)
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro 16", p.Name)
}

func TestService_LowStock(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx, catalog.SeedProducts())
	require.NoError(t, err)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)

	codes := make([]string, len(low))
	for i, p := range low {
		codes[i] = p.Code
	}
	assert.Equal(t, []string{"airpods-pro", "ER-3", "rtx-4070"}, codes)
}

type failingStorage struct {
	catalog.Storage
}

func (failingStorage) Find(context.Context, catalog.Query) ([]catalog.Product, int64, error) {
	return nil, 0, catalog.ErrStorage
}

func (failingStorage) FindByID(context.Context, string) (catalog.Product, error) {
	return catalog.Product{}, errors.Join(catalog.ErrStorage, errors.New("connection reset"))
}

func TestService_StorageErrors(t *testing.T) {
	t.Parallel()

	svc := catalog.NewService(failingStorage{})
	ctx := context.Background()

	_, err := svc.List(ctx, catalog.Query{})
	assert.ErrorIs(t, err, catalog.ErrStorage)

	_, err = svc.Get(ctx, "any")
	assert.ErrorIs(t, err, catalog.ErrStorage)
}
