package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/svc/catalog"
	"github.com/dmitrymomot/storefront/svc/checkout"
)

func TestCart(t *testing.T) {
	t.Parallel()

	var c checkout.Cart
	assert.True(t, c.IsEmpty())

	c = c.Set("a", 2).Set("b", 1).Set("a", 3)
	assert.Equal(t, []checkout.Item{{ProductID: "a", Quantity: 3}, {ProductID: "b", Quantity: 1}}, c.Items)
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, 3, c.Quantity("a"))
	assert.Zero(t, c.Quantity("missing"))

	same := c.Set("missing", 0)
	assert.Equal(t, c.Items, same.Items, "zero quantity for an absent product is a no-op")

	c, removed := c.Remove("a")
	assert.True(t, removed)
	assert.Equal(t, []checkout.Item{{ProductID: "b", Quantity: 1}}, c.Items)

	_, removed = c.Remove("a")
	assert.False(t, removed)
}

func TestCart_SetDoesNotAlias(t *testing.T) {
	t.Parallel()

	orig := checkout.Cart{}.Set("a", 1)
	changed := orig.Set("a", 5)
	assert.Equal(t, 1, orig.Quantity("a"))
	assert.Equal(t, 5, changed.Quantity("a"))
}

func linesOf(prices ...int64) []checkout.Line {
	lines := make([]checkout.Line, 0, len(prices))
	for _, p := range prices {
		lines = append(lines, checkout.Line{Product: catalog.Product{Price: p}, Quantity: 1})
	}
	return lines
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []checkout.Line
		want     checkout.Totals
		shipping string
	}{
		{
			name:     "empty cart still pays shipping",
			want:     checkout.Totals{Shipping: 10000, Total: 10000},
			shipping: "$10.000",
		},
		{
			name:     "below free shipping",
			lines:    linesOf(63000),
			want:     checkout.Totals{Subtotal: 63000, Tax: 11970, Shipping: 10000, Total: 84970},
			shipping: "$10.000",
		},
		{
			name:     "tax rounds to nearest peso",
			lines:    linesOf(99999),
			want:     checkout.Totals{Subtotal: 99999, Tax: 19000, Shipping: 10000, Total: 128999},
			shipping: "$10.000",
		},
		{
			name:     "free shipping from threshold",
			lines:    linesOf(60000, 40000),
			want:     checkout.Totals{Subtotal: 100000, Tax: 19000, Total: 119000},
			shipping: checkout.FreeShippingLabel,
		},
		{
			name:     "quantities multiply",
			lines:    []checkout.Line{{Product: catalog.Product{Price: 63000}, Quantity: 2}},
			want:     checkout.Totals{Subtotal: 126000, Tax: 23940, Total: 149940},
			shipping: "Gratis",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := checkout.ComputeTotals(tt.lines, checkout.DefaultConfig())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.shipping, got.FormattedShipping())
		})
	}
}

func TestComputeTotals_Config(t *testing.T) {
	t.Parallel()

	cfg := checkout.DefaultConfig()
	cfg.TaxRate = 0.1
	cfg.ShippingCost = 5000
	cfg.FreeShippingFrom = 50000

	got := checkout.ComputeTotals(linesOf(40000), cfg)
	assert.Equal(t, checkout.Totals{Subtotal: 40000, Tax: 4000, Shipping: 5000, Total: 49000}, got)
	assert.Equal(t, "$49.000", got.FormattedTotal())

	assert.Equal(t, checkout.ComputeTotals(linesOf(40000), checkout.DefaultConfig()),
		checkout.ComputeTotals(linesOf(40000), checkout.Config{}), "zero config uses defaults")
}
