package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/markup"
	"github.com/dmitrymomot/storefront/svc/catalog"
	"github.com/dmitrymomot/storefront/svc/listing"
)

// Element ids patched by filter updates.
const (
	CounterID    = "results-counter"
	EmptyStateID = "no-results"
)

type option struct {
	value string
	label string
}

var categoryOptions = []option{
	{"", "Todas las categorías"},
	{listing.CategoryMetroidvania, "Metroidvania"},
	{listing.CategoryAventura, "Aventura"},
	{listing.CategoryRPG, "RPG"},
	{listing.CategoryAccesorios, "Accesorios"},
	{listing.CategoryOtros, "Otros"},
}

var priceOptions = []option{
	{"", "Todos los precios"},
	{listing.PriceUpTo500K, "Hasta $500.000"},
	{listing.Price500KTo1500K, "$500.000 - $1.500.000"},
	{listing.Price1500KTo3000K, "$1.500.000 - $3.000.000"},
	{listing.PriceOver3000K, "Más de $3.000.000"},
}

var sortOptions = []option{
	{listing.SortName, "Nombre"},
	{listing.SortPriceAsc, "Precio: menor a mayor"},
	{listing.SortPriceDesc, "Precio: mayor a menor"},
	{listing.SortNewest, "Más recientes"},
	{listing.SortRelevance, "Relevancia"},
}

// Card is one product card in layout order.
type Card struct {
	// Index is the card position in the markup the engine was initialized
	// from. It keeps the element id stable when cards are reordered.
	Index   int
	Product catalog.Product
	Visible bool
	Delay   time.Duration
}

// LayoutCards orders products the way view shows them: results first with
// staggered reveal delays, the rest hidden in document order. A nil view
// shows every product in document order.
func LayoutCards(products []catalog.Product, view *listing.View) []Card {
	cards := make([]Card, 0, len(products))
	if view == nil {
		for i, p := range products {
			cards = append(cards, Card{Index: i, Product: p, Visible: true})
		}
		return cards
	}

	shown := make([]bool, len(products))
	for pos, e := range view.Results {
		if e.Index < 0 || e.Index >= len(products) {
			continue
		}
		shown[e.Index] = true
		cards = append(cards, Card{
			Index:   e.Index,
			Product: products[e.Index],
			Visible: true,
			Delay:   time.Duration(pos) * view.RevealStep,
		})
	}
	for i, p := range products {
		if !shown[i] {
			cards = append(cards, Card{Index: i, Product: p})
		}
	}
	return cards
}

// CatalogData is what the catalog page renders. View is nil for the markup
// a listing engine is initialized from.
type CatalogData struct {
	Products []catalog.Product
	View     *listing.View
}

func (d CatalogData) filters() listing.FilterState {
	if d.View == nil {
		return listing.DefaultFilters()
	}
	return d.View.Filters
}

// CatalogPage renders the full catalog page.
func CatalogPage(d CatalogData) templ.Component {
	return Layout(Title("Productos"), CatalogBody(d))
}

// CatalogBody renders the filter controls, the counter, the grid and the
// empty-state panel.
func CatalogBody(d CatalogData) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		signals, _ := json.Marshal(d.filters())
		w.Rawf(`<main class="max-w-7xl mx-auto px-4 py-8" data-signals="%s">`, string(signals))
		w.Raw(`<h1 class="text-3xl font-bold text-gray-900 mb-6">Nuestros productos</h1>`)
		w.Render(ctx, Filters(d.filters()))

		if d.View != nil {
			w.Render(ctx, ResultsCounter(d.View.Counter))
		} else {
			w.Rawf(`<div id="%s"></div>`, CounterID)
		}
		w.Render(ctx, Grid(LayoutCards(d.Products, d.View)))
		w.Render(ctx, EmptyState(d.View != nil && d.View.Empty))
		w.Raw(`</main>`)
	})
}

// Filters renders the four filter controls bound to datastar signals.
func Filters(f listing.FilterState) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<section id="filters" class="grid grid-cols-1 md:grid-cols-5 gap-4 mb-6">`)
		w.Rawf(`<input id="%s" type="search" placeholder="Buscar productos..." value="%s" class="md:col-span-2 border rounded-lg px-4 py-2" data-bind:search data-on:input="%s">`,
			listing.WidgetSearch, f.Search, filterAction(listing.FieldSearch))
		selectControl(w, listing.WidgetCategory, "category", listing.FieldCategory, categoryOptions, f.Category)
		selectControl(w, listing.WidgetPrice, "priceRange", listing.FieldPriceRange, priceOptions, f.PriceRange)
		selectControl(w, listing.WidgetSort, "sortBy", listing.FieldSortBy, sortOptions, f.SortBy)
		w.Raw(`<button type="button" class="bg-gray-200 px-4 py-2 rounded-lg hover:bg-gray-300" data-on:click="@post('/listing/reset')">Limpiar filtros</button>`)
		w.Raw(`</section>`)
	})
}

func filterAction(field listing.Field) string {
	return fmt.Sprintf("@post('/listing/filter?field=%s')", field)
}

func selectControl(w *markup.Writer, id listing.Widget, signal string, field listing.Field, opts []option, selected string) {
	w.Rawf(`<select id="%s" class="border rounded-lg px-4 py-2" data-bind:%s data-on:change="%s">`, id, signal, filterAction(field))
	for _, o := range opts {
		if o.value == selected {
			w.Rawf(`<option value="%s" selected>%s</option>`, o.value, o.label)
		} else {
			w.Rawf(`<option value="%s">%s</option>`, o.value, o.label)
		}
	}
	w.Raw(`</select>`)
}

// ResultsCounter renders the counter above the grid.
func ResultsCounter(c listing.Counter) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Rawf(`<div id="%s" class="%s">%s</div>`, CounterID, c.Class, c.Text)
	})
}

// Grid renders the product grid.
func Grid(cards []Card) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Rawf(`<div id="%s" class="grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 gap-6">`, listing.WidgetGrid)
		for _, c := range cards {
			writeCard(w, c)
		}
		w.Raw(`</div>`)
	})
}

func writeCard(w *markup.Writer, c Card) {
	p := c.Product
	style := "display: none; opacity: 0"
	if c.Visible {
		style = fmt.Sprintf("display: block; animation-delay: %dms", c.Delay.Milliseconds())
	}

	w.Rawf(`<article id="product-%s" class="product-card bg-white rounded-xl shadow hover:shadow-lg overflow-hidden" style="%s">`, c.Index, style)
	w.Rawf(`<a href="/products/%s">`, productRef(p))
	w.Rawf(`<img src="%s" alt="%s" class="w-full h-48 object-cover" loading="lazy">`, p.MainImage, p.Name)
	w.Raw(`</a><div class="p-4">`)
	w.Rawf(`<h3 class="text-lg font-semibold text-gray-900">%s</h3>`, p.Name)
	w.Rawf(`<p class="text-sm text-gray-600 mt-1">%s</p>`, p.Description)
	w.Raw(`<div class="mt-3 flex items-baseline gap-2">`)
	w.Rawf(`<span class="text-2xl font-bold text-blue-600">%s</span>`, p.FormattedPrice())
	if orig := p.FormattedOriginalPrice(); orig != "" {
		w.Rawf(`<span class="text-sm text-gray-500 line-through">%s</span>`, orig)
	}
	w.Raw(`</div>`)
	w.Rawf(`<form method="post" action="/cart/items" class="mt-3"><input type="hidden" name="product" value="%s">`, productRef(p))
	w.Raw(`<button type="submit" class="w-full bg-blue-600 text-white py-2 rounded-lg hover:bg-blue-700">Agregar al carrito</button></form>`)
	w.Raw(`</div></article>`)
}

// EmptyState renders the panel shown when no product matches.
func EmptyState(visible bool) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		display := "none"
		if visible {
			display = "block"
		}
		w.Rawf(`<div id="%s" class="col-span-full text-center py-12" style="display: %s">`, EmptyStateID, display)
		w.Raw(`<div class="max-w-md mx-auto"><div class="text-6xl mb-4">🔍</div>`)
		w.Raw(`<h3 class="text-2xl font-bold text-gray-900 mb-4">No encontramos productos</h3>`)
		w.Raw(`<p class="text-gray-600 mb-6">Intenta cambiar los filtros o buscar con otros términos</p>`)
		w.Raw(`<button type="button" class="bg-blue-600 text-white px-6 py-3 rounded-lg hover:bg-blue-700" data-on:click="@post('/listing/reset')">Limpiar filtros</button>`)
		w.Raw(`</div></div>`)
	})
}

// productRef is the reference product links use: the code when set, the
// slug otherwise.
func productRef(p catalog.Product) string {
	if p.Code != "" {
		return p.Code
	}
	return p.Slug
}
