// Package money formats whole-peso amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is the locale prices are shown in.
var DefaultLocale = language.MustParse("es-CO")

// Formatter formats integer amounts with a locale's digit grouping.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter returns a Formatter for tag prefixing amounts with symbol.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Format renders amount as "$1.299.000" in es-CO. Negative amounts keep
// their sign in front of the symbol.
func (f *Formatter) Format(amount int64) string {
	if amount < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%d", -amount)
	}
	return f.symbol + f.printer.Sprintf("%d", amount)
}

var cop = NewFormatter(DefaultLocale, "$")

// Format formats a COP amount.
func Format(amount int64) string {
	return cop.Format(amount)
}

// FormatOrFree returns label for zero amounts, e.g. free shipping.
func FormatOrFree(amount int64, label string) string {
	if amount == 0 {
		return label
	}
	return Format(amount)
}
