package checkout

import (
	"math"
	"slices"

	"github.com/dmitrymomot/storefront/pkg/money"
	"github.com/dmitrymomot/storefront/svc/catalog"
)

// FreeShippingLabel is shown instead of a zero shipping fee.
const FreeShippingLabel = "Gratis"

// Item is one cart entry as stored in the cart cookie.
type Item struct {
	ProductID string `json:"p"`
	Quantity  int    `json:"q"`
}

// Cart is the list of products a visitor intends to buy, in insertion order.
type Cart struct {
	Items []Item `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count is the number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Quantity returns how many units of productID the cart holds.
func (c Cart) Quantity(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// Set replaces the quantity of productID, appending it when missing.
// Quantities below one remove the product.
func (c Cart) Set(productID string, quantity int) Cart {
	items := slices.Clone(c.Items)
	i := c.index(productID)
	switch {
	case quantity <= 0 && i >= 0:
		items = slices.Delete(items, i, i+1)
	case quantity <= 0:
	case i >= 0:
		items[i].Quantity = quantity
	default:
		items = append(items, Item{ProductID: productID, Quantity: quantity})
	}
	return Cart{Items: items}
}

// Remove drops productID. The second result reports whether it was there.
func (c Cart) Remove(productID string) (Cart, bool) {
	if c.index(productID) < 0 {
		return c, false
	}
	return c.Set(productID, 0), true
}

func (c Cart) index(productID string) int {
	return slices.IndexFunc(c.Items, func(it Item) bool { return it.ProductID == productID })
}

// Line is a cart item priced from the catalog.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

func (l Line) FormattedTotal() string {
	return money.Format(l.Total())
}

// Totals is the price breakdown of a set of lines.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals sums lines and applies the tax rate and shipping rule of cfg.
// Tax is rounded to the nearest peso.
func ComputeTotals(lines []Line, cfg Config) Totals {
	cfg = cfg.withDefaults()

	var t Totals
	for _, l := range lines {
		t.Subtotal += l.Total()
	}
	t.Tax = int64(math.Round(float64(t.Subtotal) * cfg.TaxRate))
	if t.Subtotal < cfg.FreeShippingFrom {
		t.Shipping = cfg.ShippingCost
	}
	t.Total = t.Subtotal + t.Tax + t.Shipping
	return t
}

func (t Totals) FormattedSubtotal() string { return money.Format(t.Subtotal) }
func (t Totals) FormattedTax() string      { return money.Format(t.Tax) }
func (t Totals) FormattedShipping() string { return money.FormatOrFree(t.Shipping, FreeShippingLabel) }
func (t Totals) FormattedTotal() string    { return money.Format(t.Total) }
