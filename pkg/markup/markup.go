// Package markup builds templ components from plain Go writers for pages
// simple enough not to need generated templates.
//
//	func Greeting(name string) templ.Component {
//		return markup.Component(func(ctx context.Context, w *markup.Writer) {
//			w.Rawf(`<p class="%s">`, "greeting")
//			w.Text("Hola " + name)
//			w.Raw(`</p>`)
//		})
//	}
package markup

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer writes markup and keeps the first write error. Later writes are
// dropped once an error occurred.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s unescaped.
func (w *Writer) Raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

// Rawf formats into markup. Arguments are converted with fmt.Sprint and
// HTML-escaped, so the format must only use %s verbs.
func (w *Writer) Rawf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = templ.EscapeString(fmt.Sprint(a))
	}
	w.Raw(fmt.Sprintf(format, escaped...))
}

// Text writes s HTML-escaped.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Render renders c in place. Nil components are skipped.
func (w *Writer) Render(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

// If writes s when cond holds.
func (w *Writer) If(cond bool, s string) {
	if cond {
		w.Raw(s)
	}
}

func (w *Writer) Err() error {
	return w.err
}

// Component adapts fn to templ.Component.
func Component(fn func(ctx context.Context, w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		fn(ctx, w)
		return w.err
	})
}
