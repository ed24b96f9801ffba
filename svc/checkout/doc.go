// Package checkout implements the shopping cart and the four-step checkout.
//
// The cart and the checkout progress live in encrypted cookies; prices are
// always resolved from the catalog, never from the cookie. Totals add a 19%
// tax and a flat shipping fee waived from a configurable subtotal.
//
// Steps are submitted in order: customer details, shipping address, payment
// card and the review step. Only the last four digits of the card are kept.
// Confirming the order clears the cart and mails a confirmation through
// the configured email.Sender.
package checkout
