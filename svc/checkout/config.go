package checkout

import "time"

// Config holds pricing rules and cookie settings loaded from the environment.
type Config struct {
	TaxRate          float64       `env:"CHECKOUT_TAX_RATE" envDefault:"0.19"`
	ShippingCost     int64         `env:"CHECKOUT_SHIPPING_COST" envDefault:"10000"`
	FreeShippingFrom int64         `env:"CHECKOUT_FREE_SHIPPING_FROM" envDefault:"100000"`
	MaxItems         int           `env:"CHECKOUT_MAX_ITEMS" envDefault:"20"`
	MaxQuantity      int           `env:"CHECKOUT_MAX_QUANTITY" envDefault:"10"`
	CartCookie       string        `env:"CHECKOUT_CART_COOKIE" envDefault:"sf_cart"`
	ProgressCookie   string        `env:"CHECKOUT_PROGRESS_COOKIE" envDefault:"sf_checkout"`
	CookieTTL        time.Duration `env:"CHECKOUT_COOKIE_TTL" envDefault:"168h"`
}

// DefaultConfig returns the settings used when nothing is configured. Zero
// fields of a Config fall back to these values.
func DefaultConfig() Config {
	return Config{
		TaxRate:          0.19,
		ShippingCost:     10000,
		FreeShippingFrom: 100000,
		MaxItems:         20,
		MaxQuantity:      10,
		CartCookie:       "sf_cart",
		ProgressCookie:   "sf_checkout",
		CookieTTL:        7 * 24 * time.Hour,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TaxRate <= 0 {
		c.TaxRate = d.TaxRate
	}
	if c.ShippingCost <= 0 {
		c.ShippingCost = d.ShippingCost
	}
	if c.FreeShippingFrom <= 0 {
		c.FreeShippingFrom = d.FreeShippingFrom
	}
	if c.MaxItems <= 0 {
		c.MaxItems = d.MaxItems
	}
	if c.MaxQuantity <= 0 {
		c.MaxQuantity = d.MaxQuantity
	}
	if c.CartCookie == "" {
		c.CartCookie = d.CartCookie
	}
	if c.ProgressCookie == "" {
		c.ProgressCookie = d.ProgressCookie
	}
	if c.CookieTTL <= 0 {
		c.CookieTTL = d.CookieTTL
	}
	return c
}
