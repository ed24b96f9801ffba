package markup_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/markup"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestComponent(t *testing.T) {
	t.Parallel()

	inner := markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Text("<b>")
	})

	out := render(t, markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Rawf(`<a href="%s" title="%s">`, "/p?id=1&x=2", `say "hi"`)
		w.Render(ctx, inner)
		w.Render(ctx, nil)
		w.If(true, "</a>")
		w.If(false, "never")
	}))

	assert.Equal(t, `<a href="/p?id=1&amp;x=2" title="say &#34;hi&#34;">&lt;b&gt;</a>`, out)
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("closed")
}

func TestComponent_StopsAfterError(t *testing.T) {
	t.Parallel()

	fw := &failingWriter{}
	err := markup.Component(func(ctx context.Context, w *markup.Writer) {
		w.Raw("one")
		w.Raw("two")
		w.Text("three")
	}).Render(context.Background(), fw)

	require.Error(t, err)
	assert.Equal(t, 1, fw.n)
}

func TestWriter_Err(t *testing.T) {
	t.Parallel()

	w := markup.NewWriter(io.Discard)
	w.Raw("ok")
	assert.NoError(t, w.Err())
}
