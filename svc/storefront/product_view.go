package storefront

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/markup"
	"github.com/dmitrymomot/storefront/svc/catalog"
)

// MaxThumbnails is how many gallery images the detail page shows.
const MaxThumbnails = 4

// ProductPage renders the product detail page.
func ProductPage(p catalog.Product) templ.Component {
	return Layout(Title(p.Name), ProductDetail(p))
}

// ProductDetail renders the breadcrumb, gallery, prices and purchase form.
func ProductDetail(p catalog.Product) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<main class="max-w-7xl mx-auto px-4 py-8">`)
		w.Raw(`<nav class="text-sm text-gray-500 mb-6"><a href="/" class="hover:text-blue-600">Inicio</a> / `)
		w.Raw(`<a href="/" class="hover:text-blue-600">Productos</a> / `)
		w.Rawf(`<span class="text-gray-900">%s</span></nav>`, p.Name)

		w.Raw(`<div class="grid grid-cols-1 lg:grid-cols-2 gap-10"><div>`)
		w.Raw(`<div id="main-image" class="relative aspect-square bg-gray-100 rounded-xl">`)
		w.Rawf(`<img src="%s" alt="%s" class="w-full h-full object-cover rounded-xl">`, p.MainImage, p.Name)
		if d := p.DiscountPercentage(); d > 0 {
			w.Rawf(`<div class="absolute top-4 right-4 bg-red-500 text-white px-3 py-1 rounded-full text-sm font-bold">-%s%%</div>`, d)
		}
		w.Raw(`</div>`)
		writeGallery(w, p)
		w.Raw(`</div>`)

		w.Raw(`<div>`)
		w.Rawf(`<h1 class="text-3xl font-bold text-gray-900">%s</h1>`, p.Name)
		w.Rawf(`<p class="text-gray-600 mt-4">%s</p>`, p.Description)
		w.Raw(`<div class="mt-6 flex items-baseline gap-4">`)
		w.Rawf(`<span class="text-4xl font-bold text-purple-600">%s</span>`, p.FormattedPrice())
		if orig := p.FormattedOriginalPrice(); orig != "" {
			w.Rawf(`<span class="text-xl text-gray-500 line-through">%s</span>`, orig)
		}
		w.Raw(`</div>`)
		w.Rawf(`<p class="mt-4 text-sm" data-stock="%s">%s</p>`, p.StockStatus(), stockLabel(p))

		if p.InStock {
			w.Raw(`<form method="post" action="/cart/items" class="mt-6 flex gap-4">`)
			w.Rawf(`<input type="hidden" name="product" value="%s">`, productRef(p))
			w.Rawf(`<input type="number" name="quantity" value="1" min="1" max="%s" class="w-20 border rounded-lg px-3 py-2">`, p.Quantity)
			w.Raw(`<button type="submit" class="flex-1 bg-purple-600 text-white py-3 rounded-lg hover:bg-purple-700">Agregar al carrito</button></form>`)
		}
		w.Raw(`</div></div></main>`)
	})
}

func writeGallery(w *markup.Writer, p catalog.Product) {
	images := p.Images
	if len(images) > MaxThumbnails {
		images = images[:MaxThumbnails]
	}
	w.Raw(`<div class="grid grid-cols-4 gap-4 mt-4">`)
	for i, src := range images {
		ring := "opacity-70"
		if i == 0 {
			ring = "ring-2 ring-blue-500"
		}
		w.Rawf(`<div class="thumbnail-image aspect-square rounded-lg %s">`, ring)
		w.Rawf(`<img src="%s" alt="%s" class="w-full h-full object-cover rounded-lg" loading="lazy"></div>`,
			src, p.Name+" vista "+strconv.Itoa(i+1))
	}
	w.Raw(`</div>`)
}

func stockLabel(p catalog.Product) string {
	switch p.StockStatus() {
	case catalog.StockOut:
		return "Agotado"
	case catalog.StockLow:
		return "¡Últimas " + strconv.Itoa(p.Quantity) + " unidades!"
	default:
		return "En stock"
	}
}
