package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// Sort orders accepted by the list endpoint.
const (
	SortNewest    = "newest"
	SortName      = "name"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortPopular   = "popular"
	SortRating    = "rating"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Query filters and paginates product listings.
type Query struct {
	Search   string `query:"q"`
	Category string `query:"category"`
	Brand    string `query:"brand"`
	Status   Status `query:"status"`
	MinPrice int64  `query:"min_price"`
	MaxPrice int64  `query:"max_price"`
	InStock  *bool  `query:"in_stock"`
	Featured *bool  `query:"featured"`
	Sort     string `query:"sort"`
	Page     int    `query:"page"`
	PerPage  int    `query:"per_page"`
}

// Normalize fills defaults and clamps pagination.
func (q Query) Normalize() Query {
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.Brand = strings.TrimSpace(q.Brand)
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PerPage < 1:
		q.PerPage = DefaultPerPage
	case q.PerPage > MaxPerPage:
		q.PerPage = MaxPerPage
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.PerPage
}

func (q Query) matches(p Product) bool {
	if q.Search != "" && !productContains(p, strings.ToLower(q.Search)) {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Brand != "" && !strings.EqualFold(p.Brand, q.Brand) {
		return false
	}
	if q.Status != "" && p.Status != q.Status {
		return false
	}
	if q.MinPrice > 0 && p.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && p.Price > q.MaxPrice {
		return false
	}
	if q.InStock != nil && p.InStock != *q.InStock {
		return false
	}
	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}
	return true
}

func productContains(p Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) {
		return true
	}
	return slices.ContainsFunc(p.Keywords, func(k string) bool { return strings.Contains(k, term) }) ||
		slices.ContainsFunc(p.Tags, func(t string) bool { return strings.Contains(t, term) })
}

// sortProducts orders ps by order, breaking ties by id so results do not
// depend on storage iteration order.
func sortProducts(ps []Product, order string) {
	slices.SortFunc(ps, func(a, b Product) int {
		var c int
		switch order {
		case SortName:
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case SortPriceAsc:
			c = cmp.Compare(a.Price, b.Price)
		case SortPriceDesc:
			c = cmp.Compare(b.Price, a.Price)
		case SortPopular:
			c = cmp.Compare(b.SalesCount, a.SalesCount)
		case SortRating:
			c = cmp.Compare(b.Rating.Average, a.Rating.Average)
		default:
			c = b.CreatedAt.Compare(a.CreatedAt)
		}
		return cmp.Or(c, cmp.Compare(a.ID, b.ID))
	})
}

// ListResult is one page of products.
type ListResult struct {
	Items   []Product `json:"items"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
}
