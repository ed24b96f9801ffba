package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/slug"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

const (
	MaxPrice      = 999_999_999
	MaxQuantity   = 99_999
	MaxTags       = 20
	MaxImages     = 10
	MaxSlugLength = 120
)

var mainImagePattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|webp|gif)$`)

// prepare normalizes editable fields and derives the computed ones. It runs
// before every write.
func (p *Product) prepare(now time.Time) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Category = sanitizer.TrimToLower(p.Category)
	p.Subcategory = sanitizer.TrimToLower(p.Subcategory)
	p.MainImage = strings.TrimSpace(p.MainImage)

	if p.Status == "" {
		p.Status = StatusActive
	}

	p.InStock = p.Quantity > 0
	if p.OriginalPrice > 0 && p.Price > 0 {
		p.Discount = p.DiscountPercentage()
	}

	p.Tags = sanitizer.CleanStringSlice(p.Tags)
	p.Keywords = buildKeywords(p.Name, p.Brand, p.Category, p.Subcategory)

	if p.Slug == "" {
		p.Slug = slug.Make(p.Name, slug.MaxLength(MaxSlugLength))
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// buildKeywords collects the lowercased name, brand, category, subcategory
// and name words, dropping duplicates and anything shorter than three bytes.
func buildKeywords(name, brand, category, subcategory string) []string {
	name = strings.ToLower(name)
	words := []string{name, strings.ToLower(brand), category}
	if subcategory != "" {
		words = append(words, subcategory)
	}
	words = append(words, strings.Split(name, " ")...)

	words = sanitizer.Deduplicate(words)
	return sanitizer.FilterSlice(words, func(w string) bool { return len(w) > 2 })
}

// Validate checks every field constraint and returns validator errors keyed
// by JSON field name.
func (p Product) Validate() error {
	rules := []validator.Rule{
		validator.RequiredString("name", p.Name),
		validator.LenRangeString("name", p.Name, 2, 200),
		validator.RequiredString("description", p.Description),
		validator.LenRangeString("description", p.Description, 10, 2000),
		validator.Range("price", p.Price, 0, MaxPrice),
		validator.Range("discount", p.Discount, 0, 100),
		validator.RequiredString("category", p.Category),
		validator.InList("category", p.Category, Categories),
		validator.RequiredString("brand", p.Brand),
		validator.LenRangeString("brand", p.Brand, 1, 50),
		validator.LenRangeSlice("images", p.Images, 1, MaxImages),
		validator.RequiredString("mainImage", p.MainImage),
		validator.MatchesPattern("mainImage", p.MainImage, mainImagePattern, "must be an http(s) image URL"),
		validator.Range("quantity", p.Quantity, 0, MaxQuantity),
		validator.Range("lowStockAlert", p.LowStockAlert, 0, 100),
		validator.Range("rating.average", p.Rating.Average, 0, 5),
		validator.Min("rating.count", p.Rating.Count, 0),
		validator.LenRangeSlice("tags", p.Tags, 0, MaxTags),
		validator.Min("salesCount", p.SalesCount, 0),
		validator.Min("viewCount", p.ViewCount, 0),
		validator.InList("status", p.Status, Statuses),
	}
	rules = append(rules, validator.When(p.OriginalPrice != 0,
		validator.Min("originalPrice", p.OriginalPrice, p.Price),
	)...)

	return validator.Apply(rules...)
}
