package listing

import (
	"fmt"
	"strings"
)

// Categories derived from title keywords. Matching is done in order and the
// first hit wins.
const (
	CategoryMetroidvania = "metroidvania"
	CategoryAventura     = "aventura"
	CategoryRPG          = "rpg"
	CategoryAccesorios   = "accesorios"
	CategoryOtros        = "otros"
)

// Brands recognized in titles.
const (
	BrandApple   = "apple"
	BrandSamsung = "samsung"
	BrandDell    = "dell"
	BrandNvidia  = "nvidia"
	BrandAMD     = "amd"
	BrandOtros   = "otros"
)

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryMetroidvania, []string{"laptop", "macbook", "dell"}},
	{CategoryAventura, []string{"iphone", "samsung", "galaxy"}},
	{CategoryRPG, []string{"nvidia", "amd", "ryzen", "rtx"}},
	{CategoryAccesorios, []string{"airpods", "silla"}},
}

var knownBrands = []string{BrandApple, BrandSamsung, BrandDell, BrandNvidia, BrandAMD}

// Entry is one product card as it was rendered. Entries are built once by
// Extract and never modified afterwards.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	// Handle indexes the entry's element in the Registry.
	Handle Handle `json:"handle"`
	// Index is the position of the card in the document.
	Index int `json:"index"`
}

// Diagnostic records a degraded extraction or a missing page handle.
type Diagnostic struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	if d.Index < 0 {
		return fmt.Sprintf("%s: %s", d.Field, d.Reason)
	}
	return fmt.Sprintf("card %d %s: %s", d.Index, d.Field, d.Reason)
}

// CategoryFor maps a title to its category by keyword.
func CategoryFor(title string) string {
	t := strings.ToLower(title)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(t, kw) {
				return group.category
			}
		}
	}
	return CategoryOtros
}

// BrandFor returns the first known brand mentioned in title.
func BrandFor(title string) string {
	t := strings.ToLower(title)
	for _, b := range knownBrands {
		if strings.Contains(t, b) {
			return b
		}
	}
	return BrandOtros
}

func entryID(index int) string {
	return fmt.Sprintf("product-%d", index)
}

func (e Entry) matches(term string) bool {
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.Brand), term)
}
