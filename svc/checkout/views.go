package checkout

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/markup"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/storefront"
)

const (
	buttonClass = "bg-blue-600 text-white px-6 py-3 rounded-lg hover:bg-blue-700"
	inputClass  = "w-full border rounded-lg px-4 py-2"
)

// CartData is what the cart page renders.
type CartData struct {
	Lines  []Line
	Totals Totals
	// Notice is a message about the last cart change, e.g. a product that
	// could not be added.
	Notice string
}

// CartPage renders the cart with its totals.
func CartPage(d CartData) templ.Component {
	return storefront.Layout(storefront.Title("Carrito"), markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<main id="cart" class="max-w-5xl mx-auto px-4 py-8">`)
		w.Raw(`<h1 class="text-3xl font-bold text-gray-900 mb-6">Tu carrito</h1>`)
		if d.Notice != "" {
			w.Rawf(`<div id="cart-notice" class="bg-yellow-100 text-yellow-800 px-4 py-3 rounded-lg mb-4">%s</div>`, d.Notice)
		}
		if len(d.Lines) == 0 {
			w.Raw(`<div id="empty-cart" class="text-center py-12"><p class="text-gray-600 mb-6">Tu carrito está vacío</p>`)
			w.Rawf(`<a href="/" class="%s">Ver productos</a></div></main>`, buttonClass)
			return
		}

		w.Raw(`<div class="grid grid-cols-1 lg:grid-cols-3 gap-8"><div class="lg:col-span-2 space-y-4">`)
		for _, l := range d.Lines {
			writeCartLine(w, l)
		}
		w.Raw(`</div><div>`)
		w.Render(ctx, TotalsSummary(d.Totals))
		w.Rawf(`<a href="/checkout" class="block text-center mt-4 %s">Proceder al pago</a>`, buttonClass)
		w.Raw(`</div></div></main>`)
	}))
}

func writeCartLine(w *markup.Writer, l Line) {
	p := l.Product
	w.Rawf(`<div id="cart-item-%s" class="cart-item flex items-center gap-4 bg-white rounded-xl shadow p-4">`, p.ID)
	w.Rawf(`<img src="%s" alt="%s" class="w-20 h-20 object-cover rounded-lg">`, p.MainImage, p.Name)
	w.Raw(`<div class="flex-1">`)
	w.Rawf(`<h3 class="font-semibold text-gray-900">%s</h3>`, p.Name)
	w.Rawf(`<p class="text-sm text-gray-600">Cantidad: %s × %s</p>`, strconv.Itoa(l.Quantity), p.FormattedPrice())
	w.Raw(`</div>`)
	w.Rawf(`<span class="font-bold text-gray-900">%s</span>`, l.FormattedTotal())
	w.Rawf(`<form method="post" action="/cart/items/%s/delete">`, p.ID)
	w.Rawf(`<button type="submit" class="text-red-600 hover:text-red-800" data-on:click__prevent="@delete('/cart/items/%s')">Eliminar</button>`, p.ID)
	w.Raw(`</form></div>`)
}

// TotalsSummary renders the subtotal, shipping, tax and total.
func TotalsSummary(t Totals) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<div id="order-summary" class="bg-white rounded-xl shadow p-6 space-y-2">`)
		w.Raw(`<h2 class="text-xl font-bold text-gray-900 mb-2">Resumen</h2>`)
		writeTotalRow(w, "summary-subtotal", "Subtotal", t.FormattedSubtotal())
		writeTotalRow(w, "summary-shipping", "Envío", t.FormattedShipping())
		writeTotalRow(w, "summary-taxes", "Impuestos (19%)", t.FormattedTax())
		w.Rawf(`<div class="flex justify-between border-t pt-2 text-lg font-bold"><span>Total</span><span id="summary-total">%s</span></div>`, t.FormattedTotal())
		w.Raw(`</div>`)
	})
}

func writeTotalRow(w *markup.Writer, id, label, value string) {
	w.Rawf(`<div class="flex justify-between text-gray-700"><span>%s</span><span id="%s">%s</span></div>`, label, id, value)
}

// CheckoutData is what a checkout step page renders.
type CheckoutData struct {
	Step     Step
	Progress Progress
	Lines    []Line
	Totals   Totals
	// Form holds the submitted values when validation failed.
	Form   StepForm
	Errors validator.ValidationErrors
}

type formField struct {
	name  string
	label string
	kind  string
	value func(StepForm) string
}

var stepFields = map[Step][]formField{
	StepCustomer: {
		{"nombre", "Nombre", "text", func(f StepForm) string { return f.FirstName }},
		{"apellido", "Apellido", "text", func(f StepForm) string { return f.LastName }},
		{"email", "Correo electrónico", "email", func(f StepForm) string { return f.Email }},
		{"telefono", "Teléfono", "tel", func(f StepForm) string { return f.Phone }},
	},
	StepShipping: {
		{"pais", "País", "text", func(f StepForm) string { return f.Country }},
		{"ciudad", "Ciudad", "text", func(f StepForm) string { return f.City }},
		{"codigo-postal", "Código postal", "text", func(f StepForm) string { return f.PostalCode }},
		{"direccion", "Dirección", "text", func(f StepForm) string { return f.Street }},
	},
	StepPayment: {
		{"tarjeta-numero", "Número de tarjeta", "text", func(f StepForm) string { return f.CardNumber }},
		{"tarjeta-nombre", "Nombre en la tarjeta", "text", func(f StepForm) string { return f.CardHolder }},
		{"tarjeta-cvc", "CVC", "text", func(StepForm) string { return "" }},
		{"tarjeta-fecha", "Vencimiento (MM/AA)", "text", func(f StepForm) string { return f.CardExpiry }},
	},
}

// CheckoutPage renders one checkout step.
func CheckoutPage(d CheckoutData) templ.Component {
	return storefront.Layout(storefront.Title("Pago"), markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<main id="checkout" class="max-w-5xl mx-auto px-4 py-8">`)
		writeStepIndicator(w, d.Step, d.Progress)
		w.Raw(`<div class="grid grid-cols-1 lg:grid-cols-3 gap-8"><div class="lg:col-span-2">`)
		w.Rawf(`<section class="checkout-step bg-white rounded-xl shadow p-6" data-step="%s">`, d.Step)
		w.Rawf(`<h2 class="text-2xl font-bold text-gray-900 mb-4">%s</h2>`, d.Step.Title())

		if d.Step == StepReview {
			writeReview(w, d)
		} else {
			writeStepForm(w, d)
		}
		w.Raw(`</section></div><div>`)
		w.Render(ctx, TotalsSummary(d.Totals))
		w.Raw(`</div></div></main>`)
	}))
}

func writeStepIndicator(w *markup.Writer, current Step, p Progress) {
	w.Raw(`<ol id="checkout-steps" class="flex gap-4 mb-8">`)
	for _, s := range Steps {
		class := "text-gray-400"
		switch {
		case s == current:
			class = "text-blue-600 font-bold"
		case p.CanVisit(s):
			class = "text-gray-900"
		}
		if p.CanVisit(s) && s != current {
			w.Rawf(`<li class="%s"><a href="/checkout?step=%s">%s. %s</a></li>`, class, s, s, s.Title())
		} else {
			w.Rawf(`<li class="%s">%s. %s</li>`, class, s, s.Title())
		}
	}
	w.Raw(`</ol>`)
}

func writeStepForm(w *markup.Writer, d CheckoutData) {
	w.Rawf(`<form method="post" action="/checkout/step/%s" class="space-y-4" novalidate>`, d.Step)
	for _, f := range stepFields[d.Step] {
		w.Rawf(`<div><label for="%s" class="block text-sm font-medium text-gray-700 mb-1">%s</label>`, f.name, f.label)
		w.Rawf(`<input id="%s" name="%s" type="%s" value="%s" class="%s" required>`, f.name, f.name, f.kind, f.value(d.Form), inputClass)
		if d.Errors.Has(f.name) {
			for _, msg := range d.Errors.Map()[f.name] {
				w.Rawf(`<p class="field-error text-sm text-red-600 mt-1" data-field="%s">%s</p>`, f.name, msg)
			}
		}
		w.Raw(`</div>`)
	}
	w.Rawf(`<button id="next-step-btn" type="submit" class="%s">Continuar</button>`, buttonClass)
	w.Raw(`</form>`)
}

func writeReview(w *markup.Writer, d CheckoutData) {
	p := d.Progress
	w.Raw(`<div id="checkout-summary" class="space-y-3">`)
	for _, l := range d.Lines {
		w.Rawf(`<div class="checkout-item flex justify-between"><span><strong>%s</strong> × %s</span><span>%s</span></div>`,
			l.Product.Name, strconv.Itoa(l.Quantity), l.FormattedTotal())
	}
	w.Raw(`</div>`)
	if p.Customer != nil {
		w.Rawf(`<p class="mt-4 text-gray-700">%s · %s · %s</p>`, p.Customer.FullName(), p.Customer.Email, p.Customer.Phone)
	}
	if p.Address != nil {
		w.Rawf(`<p class="text-gray-700">%s, %s %s, %s</p>`, p.Address.Street, p.Address.City, p.Address.PostalCode, p.Address.Country)
	}
	if p.Payment != nil {
		w.Rawf(`<p class="text-gray-700">%s · %s</p>`, p.Payment.Masked(), p.Payment.Holder)
	}
	w.Rawf(`<form method="post" action="/checkout/confirm" class="mt-6"><button id="next-step-btn" type="submit" class="%s">Confirmar pedido</button></form>`, buttonClass)
}

// ConfirmationPage thanks the customer for order.
func ConfirmationPage(o Order) templ.Component {
	return storefront.Layout(storefront.Title("Pedido confirmado"), markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<main id="order-confirmation" class="max-w-xl mx-auto px-4 py-16 text-center">`)
		w.Raw(`<div class="text-6xl mb-4">✅</div>`)
		w.Raw(`<h1 class="text-3xl font-bold text-gray-900">¡Pedido confirmado! Gracias por tu compra.</h1>`)
		w.Rawf(`<p class="text-gray-600 mt-4">Número de pedido <strong id="order-number">%s</strong></p>`, o.Number)
		w.Rawf(`<p class="text-gray-600">Enviamos la confirmación a %s</p>`, o.Customer.Email)
		w.Rawf(`<p class="text-2xl font-bold text-gray-900 mt-6">%s</p>`, o.Totals.FormattedTotal())
		w.Rawf(`<a href="/" class="inline-block mt-8 %s">Seguir comprando</a>`, buttonClass)
		w.Raw(`</main>`)
	}))
}

// ConfirmationEmail is the HTML body of the order confirmation email.
func ConfirmationEmail(o Order) templ.Component {
	return markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw(`<!DOCTYPE html><html lang="es"><body style="font-family:sans-serif;color:#111827">`)
		w.Rawf(`<h1>Hola %s, gracias por tu compra</h1>`, o.Customer.FirstName)
		w.Rawf(`<p>Tu pedido <strong>%s</strong> fue confirmado el %s.</p>`, o.Number, o.PlacedAt.Format("02/01/2006 15:04"))
		w.Raw(`<table style="width:100%;border-collapse:collapse">`)
		for _, l := range o.Lines {
			w.Rawf(`<tr><td>%s × %s</td><td style="text-align:right">%s</td></tr>`,
				l.Product.Name, strconv.Itoa(l.Quantity), l.FormattedTotal())
		}
		t := o.Totals
		w.Rawf(`<tr><td>Subtotal</td><td style="text-align:right">%s</td></tr>`, t.FormattedSubtotal())
		w.Rawf(`<tr><td>Envío</td><td style="text-align:right">%s</td></tr>`, t.FormattedShipping())
		w.Rawf(`<tr><td>Impuestos</td><td style="text-align:right">%s</td></tr>`, t.FormattedTax())
		w.Rawf(`<tr><td><strong>Total</strong></td><td style="text-align:right"><strong>%s</strong></td></tr>`, t.FormattedTotal())
		w.Raw(`</table>`)
		w.Rawf(`<p>Enviaremos tu pedido a %s, %s, %s.</p>`, o.Address.Street, o.Address.City, o.Address.Country)
		w.Rawf(`<p>Pagado con la tarjeta terminada en %s.</p>`, o.Payment.Last4)
		w.Rawf(`<p>%s</p></body></html>`, storefront.SiteName)
	})
}
