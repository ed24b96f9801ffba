package storefront

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/markup"
)

const (
	SiteName     = "TechStore Pro"
	DataStarJS   = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"
	TailwindJS   = "https://cdn.tailwindcss.com"
	ToastTarget  = "#toast-container"
	revealCSS    = `@keyframes reveal{from{opacity:0;transform:scale(.95)}to{opacity:1;transform:scale(1)}}.product-card{animation:reveal .3s ease both}`
	navLinkClass = "text-gray-700 hover:text-blue-600"
)

// Layout wraps body in the shared page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Rawf(`<title>%s</title>`, title)
		w.Rawf(`<script type="module" src="%s"></script>`, DataStarJS)
		w.Rawf(`<script src="%s"></script>`, TailwindJS)
		w.Raw(`<style>` + revealCSS + `</style>`)
		w.Raw(`</head><body class="bg-gray-50 min-h-screen">`)
		w.Raw(`<header class="bg-white shadow"><nav class="max-w-7xl mx-auto px-4 py-4 flex justify-between">`)
		w.Rawf(`<a href="/" class="text-xl font-bold text-blue-600">%s</a>`, SiteName)
		w.Rawf(`<div class="space-x-6"><a href="/" class="%s">Productos</a>`, navLinkClass)
		w.Rawf(`<a href="/cart" class="%s">Carrito</a></div>`, navLinkClass)
		w.Raw(`</nav></header>`)
		w.Raw(`<div id="toast-container" class="fixed top-4 right-4 space-y-2 z-50"></div>`)
		w.Render(ctx, body)
		w.Raw(`</body></html>`)
	})
}

// Title builds the document title for a page.
func Title(page string) string {
	if page == "" {
		return SiteName
	}
	return page + " - " + SiteName
}

// ErrorPage renders a full error page.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return Layout(Title("Error"), markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<main class="max-w-xl mx-auto px-4 py-16 text-center">`)
		w.Rawf(`<p class="text-6xl font-bold text-gray-300">%s</p>`, p.StatusCode)
		w.Rawf(`<h1 class="text-2xl font-bold text-gray-900 mt-4">%s</h1>`, p.Error)
		if p.RequestID != "" {
			w.Rawf(`<p class="text-sm text-gray-500 mt-2">Request %s</p>`, p.RequestID)
		}
		w.Rawf(`<a href="%s" class="inline-block mt-6 bg-blue-600 text-white px-6 py-3 rounded-lg">Reintentar</a>`, p.RetryURL)
		w.Raw(`</main>`)
	}))
}

// ErrorToast renders a dismissible toast prepended to the toast container.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		color := "bg-red-500"
		if p.Type == "warning" {
			color = "bg-yellow-500"
		}
		w.Rawf(`<div class="%s text-white px-4 py-3 rounded-lg shadow" data-on:click="el.remove()">`, color)
		w.Text(p.Message)
		w.Raw(`</div>`)
	})
}

// ErrorHandlerConfig wires the storefront error views into handler.NewErrorHandler.
func ErrorHandlerConfig() handler.ErrorHandlerConfig {
	return handler.ErrorHandlerConfig{
		ErrorPage:   ErrorPage,
		ErrorToast:  ErrorToast,
		ToastTarget: ToastTarget,
	}
}
