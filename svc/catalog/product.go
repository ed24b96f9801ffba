package catalog

import (
	"math"
	"time"

	"github.com/dmitrymomot/storefront/pkg/money"
)

// Product categories.
const (
	CategoryComputadoras     = "computadoras"
	CategoryLaptops          = "laptops"
	CategorySmartphones      = "smartphones"
	CategoryTablets          = "tablets"
	CategoryAccesorios       = "accesorios"
	CategoryAudio            = "audio"
	CategoryGaming           = "gaming"
	CategoryHogarInteligente = "hogar-inteligente"
	CategoryWearables        = "wearables"
	CategoryOtros            = "otros"
	CategoryAventura         = "aventura"
	CategoryMetroidvania     = "metroidvania"
	CategoryRPG              = "rpg"
	CategorySandbox          = "sandbox"
)

// Categories lists every accepted category.
var Categories = []string{
	CategoryComputadoras, CategoryLaptops, CategorySmartphones, CategoryTablets,
	CategoryAccesorios, CategoryAudio, CategoryGaming, CategoryHogarInteligente,
	CategoryWearables, CategoryOtros, CategoryAventura, CategoryMetroidvania,
	CategoryRPG, CategorySandbox,
}

// Status is the publication state of a product.
type Status string

const (
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusDiscontinued Status = "discontinued"
	StatusComingSoon   Status = "coming-soon"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusDiscontinued, StatusComingSoon}

var statusTexts = map[Status]string{
	StatusActive:       "Activo",
	StatusInactive:     "Inactivo",
	StatusDiscontinued: "Descontinuado",
	StatusComingSoon:   "Próximamente",
}

// Stock states.
const (
	StockOut = "out-of-stock"
	StockLow = "low-stock"
	StockIn  = "in-stock"
)

const DefaultLowStockAlert = 5

type RatingBreakdown struct {
	Five  int `bson:"five" json:"five"`
	Four  int `bson:"four" json:"four"`
	Three int `bson:"three" json:"three"`
	Two   int `bson:"two" json:"two"`
	One   int `bson:"one" json:"one"`
}

type Rating struct {
	Average   float64         `bson:"average" json:"average"`
	Count     int             `bson:"count" json:"count"`
	Breakdown RatingBreakdown `bson:"breakdown" json:"breakdown"`
}

// Product is the catalog document stored in the products collection.
type Product struct {
	ID            string    `bson:"_id" json:"id"`
	Code          string    `bson:"code,omitempty" json:"code,omitempty"`
	Name          string    `bson:"name" json:"name"`
	Slug          string    `bson:"slug" json:"slug"`
	Description   string    `bson:"description" json:"description"`
	Price         int64     `bson:"price" json:"price"`
	OriginalPrice int64     `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Discount      int       `bson:"discount" json:"discount"`
	Category      string    `bson:"category" json:"category"`
	Subcategory   string    `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Brand         string    `bson:"brand" json:"brand"`
	Images        []string  `bson:"images" json:"images"`
	MainImage     string    `bson:"mainImage" json:"mainImage"`
	InStock       bool      `bson:"inStock" json:"inStock"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	LowStockAlert int       `bson:"lowStockAlert" json:"lowStockAlert"`
	Rating        Rating    `bson:"rating" json:"rating"`
	Tags          []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Keywords      []string  `bson:"keywords,omitempty" json:"keywords,omitempty"`
	SalesCount    int       `bson:"salesCount" json:"salesCount"`
	ViewCount     int       `bson:"viewCount" json:"viewCount"`
	Featured      bool      `bson:"featured" json:"featured"`
	Status        Status    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DiscountPercentage is the rounded markdown from OriginalPrice to Price.
func (p Product) DiscountPercentage() int {
	if p.OriginalPrice <= 0 || p.Price <= 0 {
		return 0
	}
	return int(math.Round(float64(p.OriginalPrice-p.Price) / float64(p.OriginalPrice) * 100))
}

func (p Product) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return StockOut
	case p.Quantity <= p.LowStockAlert:
		return StockLow
	default:
		return StockIn
	}
}

func (p Product) FormattedPrice() string {
	return money.Format(p.Price)
}

// FormattedOriginalPrice is empty when the product has no original price.
func (p Product) FormattedOriginalPrice() string {
	if p.OriginalPrice <= 0 {
		return ""
	}
	return money.Format(p.OriginalPrice)
}

func (p Product) StatusText() string {
	if t, ok := statusTexts[p.Status]; ok {
		return t
	}
	return string(p.Status)
}

// ProductView is the API representation with derived fields included.
type ProductView struct {
	Product
	DiscountPercentage     int    `json:"discountPercentage"`
	StockStatus            string `json:"stockStatus"`
	FormattedPrice         string `json:"formattedPrice"`
	FormattedOriginalPrice string `json:"formattedOriginalPrice,omitempty"`
	StatusText             string `json:"statusText"`
}

func (p Product) View() ProductView {
	return ProductView{
		Product:                p,
		DiscountPercentage:     p.DiscountPercentage(),
		StockStatus:            p.StockStatus(),
		FormattedPrice:         p.FormattedPrice(),
		FormattedOriginalPrice: p.FormattedOriginalPrice(),
		StatusText:             p.StatusText(),
	}
}

func (p Product) clone() Product {
	c := p
	c.Images = append([]string(nil), p.Images...)
	c.Tags = append([]string(nil), p.Tags...)
	c.Keywords = append([]string(nil), p.Keywords...)
	return c
}
