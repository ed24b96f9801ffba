package listing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/svc/listing"
)

const controls = `
<input id="search-input" type="search">
<select id="category-filter"></select>
<select id="price-filter"></select>
<select id="sort-filter"></select>`

const cards = `
<div id="products-grid">
  <article class="product-card shadow"><h3> Wireless   Mouse </h3><span class="text-2xl">$89.000</span><p>Ergonomic mouse</p></article>
  <article class="product-card"><h3>Gaming Laptop Dell</h3><span class="text-2xl font-bold">$4.500.000</span><p>RTX graphics</p></article>
  <article class="product-card"><h3>iPhone 15</h3><span class="text-2xl">$3.200.000</span><p>Apple smartphone</p></article>
  <article class="product-card"><h3>AirPods Pro</h3><span class="text-2xl">$1.100.000</span><p>Noise cancelling</p></article>
</div>`

const page = `<html><body>` + controls + cards + `</body></html>`

func TestExtract(t *testing.T) {
	t.Parallel()

	entries, diags, err := listing.Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, entries, 4)

	assert.Equal(t, listing.Entry{
		ID:          "product-0",
		Title:       "Wireless Mouse",
		Price:       89000,
		Description: "Ergonomic mouse",
		Category:    listing.CategoryOtros,
		Brand:       listing.BrandOtros,
		Handle:      0,
		Index:       0,
	}, entries[0])

	assert.Equal(t, "Gaming Laptop Dell", entries[1].Title)
	assert.Equal(t, int64(4500000), entries[1].Price)
	assert.Equal(t, listing.CategoryMetroidvania, entries[1].Category)
	assert.Equal(t, listing.BrandDell, entries[1].Brand)

	assert.Equal(t, listing.CategoryAventura, entries[2].Category)
	assert.Equal(t, listing.CategoryAccesorios, entries[3].Category)
	for i, e := range entries {
		assert.Equal(t, i, e.Index)
	}
}

func TestExtract_DegradedCards(t *testing.T) {
	t.Parallel()

	markup := `<div>
	  <div class="product-card"><span class="text-2xl">Consultar</span></div>
	  <div class="product-card"><h3>Elden Ring</h3><p>Open world</p></div>
	  <div class="product-card"><h3>Hollow Knight</h3><span class="text-2xl">$85.000</span><p>Bugs</p></div>
	</div>`

	entries, diags, err := listing.Extract(strings.NewReader(markup))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Product 1", entries[0].Title)
	assert.Equal(t, int64(0), entries[0].Price)
	assert.Equal(t, listing.PlaceholderDescription, entries[0].Description)

	assert.Equal(t, "Elden Ring", entries[1].Title)
	assert.Equal(t, int64(0), entries[1].Price)

	assert.Equal(t, int64(85000), entries[2].Price)

	fields := make([]string, 0, len(diags))
	for _, d := range diags {
		fields = append(fields, d.String())
	}
	assert.Len(t, diags, 4)
	assert.Contains(t, fields[0], "card 0 title")
	assert.Contains(t, fields[1], "card 0 price")
	assert.Contains(t, fields[2], "card 0 description")
	assert.Contains(t, fields[3], "card 1 price")
}

func TestCategoryAndBrand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title    string
		category string
		brand    string
	}{
		{"MacBook Pro 14", listing.CategoryMetroidvania, listing.BrandOtros},
		{"Samsung Galaxy S24", listing.CategoryAventura, listing.BrandSamsung},
		{"NVIDIA RTX 4090", listing.CategoryRPG, listing.BrandNvidia},
		{"AMD Ryzen 9", listing.CategoryRPG, listing.BrandAMD},
		{"Silla Gamer", listing.CategoryAccesorios, listing.BrandOtros},
		{"Apple AirPods", listing.CategoryAccesorios, listing.BrandApple},
		{"Dell Laptop", listing.CategoryMetroidvania, listing.BrandDell},
		{"Hollow Knight", listing.CategoryOtros, listing.BrandOtros},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.category, listing.CategoryFor(tt.title))
			assert.Equal(t, tt.brand, listing.BrandFor(tt.title))
		})
	}
}
