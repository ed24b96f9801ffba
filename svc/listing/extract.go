package listing

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

// Markup conventions of the product grid.
const (
	CardClass  = "product-card"
	PriceClass = "text-2xl"

	PlaceholderDescription = "No description"
)

// Extract parses markup and returns the product cards it contains in
// document order.
func Extract(r io.Reader) ([]Entry, []Diagnostic, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, errors.Join(ErrParseMarkup, err)
	}
	entries, diags := ExtractNodes(doc)
	return entries, diags, nil
}

// ExtractNodes walks root once and derives an Entry for every node carrying
// CardClass. A card that cannot be read cleanly still yields an entry with
// placeholder values and one Diagnostic per degraded field.
func ExtractNodes(root *html.Node) ([]Entry, []Diagnostic) {
	var (
		entries []Entry
		diags   []Diagnostic
	)
	for i, card := range findAll(root, func(n *html.Node) bool { return hasClass(n, CardClass) }) {
		entry, d := extractCard(card, i)
		entries = append(entries, entry)
		diags = append(diags, d...)
	}
	return entries, diags
}

func extractCard(card *html.Node, index int) (Entry, []Diagnostic) {
	var diags []Diagnostic
	degrade := func(field, reason string) {
		diags = append(diags, Diagnostic{Index: index, Field: field, Reason: reason})
	}

	title := ""
	if n := findFirst(card, isAtom(atom.H3)); n != nil {
		title = textContent(n)
	}
	if title == "" {
		title = fmt.Sprintf("Product %d", index+1)
		degrade("title", "missing h3 text")
	}

	var price int64
	if n := findFirst(card, func(n *html.Node) bool { return hasClass(n, PriceClass) }); n == nil {
		degrade("price", "missing price element")
	} else if p, err := parsePrice(textContent(n)); err != nil {
		degrade("price", err.Error())
	} else {
		price = p
	}

	description := ""
	if n := findFirst(card, isAtom(atom.P)); n != nil {
		description = textContent(n)
	}
	if description == "" {
		description = PlaceholderDescription
		degrade("description", "missing paragraph text")
	}

	return Entry{
		ID:          entryID(index),
		Title:       title,
		Price:       price,
		Description: description,
		Category:    CategoryFor(title),
		Brand:       BrandFor(title),
		Handle:      Handle(index),
		Index:       index,
	}, diags
}

// parsePrice keeps the digits of a display price like "$1.299.000".
func parsePrice(text string) (int64, error) {
	digits := sanitizer.KeepDigits(text)
	if digits == "" {
		return 0, fmt.Errorf("no digits in %q", text)
	}
	p, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q out of range", digits)
	}
	return p, nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if n := findFirst(c, match); n != nil {
			return n
		}
	}
	return nil
}

func findByID(root *html.Node, id string) *html.Node {
	if root.Type == html.ElementNode && attr(root, "id") == id {
		return root
	}
	return findFirst(root, func(n *html.Node) bool { return attr(n, "id") == id })
}

func isAtom(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.DataAtom == a }
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
