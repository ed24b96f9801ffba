// Package slug turns product names into URL-safe identifiers.
package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Option func(*config)

type config struct {
	maxLength    int
	separator    string
	suffixLength int
}

// MaxLength limits the slug to n runes, cutting at a word boundary.
// The random suffix is not counted.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// WithSuffix appends a random lowercase alphanumeric suffix of the given length.
func WithSuffix(length int) Option {
	return func(c *config) { c.suffixLength = length }
}

// Make lowercases s, strips diacritics and joins the remaining letter and
// digit runs with the separator: "God of War Ragnarök" -> "god-of-war-ragnarok".
func Make(s string, opts ...Option) string {
	cfg := &config{separator: "-"}
	for _, opt := range opts {
		opt(cfg)
	}

	s = foldAccents(s)
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	length := 0
	for _, w := range words {
		add := len([]rune(w))
		if length > 0 {
			add += len([]rune(cfg.separator))
		}
		if cfg.maxLength > 0 && length+add > cfg.maxLength {
			break
		}
		if length > 0 {
			b.WriteString(cfg.separator)
		}
		b.WriteString(w)
		length += add
	}

	if cfg.suffixLength > 0 {
		if b.Len() > 0 {
			b.WriteString(cfg.separator)
		}
		b.WriteString(randomSuffix(cfg.suffixLength))
	}

	return b.String()
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = suffixAlphabet[int(buf[i])%len(suffixAlphabet)]
	}
	return string(buf)
}
