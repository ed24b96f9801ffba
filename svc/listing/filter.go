package listing

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Field names a filter control.
type Field string

const (
	FieldSearch     Field = "search"
	FieldCategory   Field = "category"
	FieldPriceRange Field = "priceRange"
	FieldSortBy     Field = "sortBy"
)

// Price buckets.
const (
	PriceUpTo500K     = "0-500000"
	Price500KTo1500K  = "500000-1500000"
	Price1500KTo3000K = "1500000-3000000"
	PriceOver3000K    = "3000000+"
)

// Sort orders.
const (
	SortName      = "name"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortRelevance = "relevance"
)

// FilterState is the current value of every filter control.
type FilterState struct {
	Search     string `json:"search"`
	Category   string `json:"category"`
	PriceRange string `json:"priceRange"`
	SortBy     string `json:"sortBy"`
}

// DefaultFilters returns the state the grid starts in and resets to.
func DefaultFilters() FilterState {
	return FilterState{SortBy: SortName}
}

// ParseField validates a field name coming from the client.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldSearch, FieldCategory, FieldPriceRange, FieldSortBy:
		return f, nil
	}
	return "", ErrUnknownField
}

// With returns a copy of s with field set to value.
func (s FilterState) With(field Field, value string) FilterState {
	switch field {
	case FieldSearch:
		s.Search = strings.ToLower(strings.TrimSpace(value))
	case FieldCategory:
		s.Category = value
	case FieldPriceRange:
		s.PriceRange = value
	case FieldSortBy:
		s.SortBy = value
	}
	return s
}

// InPriceRange reports whether price falls into bucket. The middle bucket is
// closed on both ends, so 500000 matches both it and the lowest bucket.
// Unknown buckets match every price.
func InPriceRange(price int64, bucket string) bool {
	switch bucket {
	case PriceUpTo500K:
		return price <= 500000
	case Price500KTo1500K:
		return price >= 500000 && price <= 1500000
	case Price1500KTo3000K:
		return price > 1500000 && price <= 3000000
	case PriceOver3000K:
		return price > 3000000
	default:
		return true
	}
}

// Recompute filters snapshot by search, category and price bucket, in that
// order, then sorts the survivors. The snapshot is never modified and the
// result depends only on the arguments.
func Recompute(snapshot []Entry, state FilterState) []Entry {
	term := strings.ToLower(strings.TrimSpace(state.Search))

	result := make([]Entry, 0, len(snapshot))
	for _, e := range snapshot {
		if term != "" && !e.matches(term) {
			continue
		}
		if state.Category != "" && e.Category != state.Category {
			continue
		}
		if state.PriceRange != "" && !InPriceRange(e.Price, state.PriceRange) {
			continue
		}
		result = append(result, e)
	}

	sortEntries(result, state.SortBy)
	return result
}

func sortEntries(entries []Entry, sortBy string) {
	switch sortBy {
	case SortName:
		// A Collator keeps internal buffers, so each call gets its own.
		col := collate.New(language.Spanish)
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortPriceAsc:
		slices.SortStableFunc(entries, func(a, b Entry) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(entries, func(a, b Entry) int { return cmp.Compare(b.Price, a.Price) })
	case SortNewest:
		slices.Reverse(entries)
	}
}
