package slug_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{"simple", "Hollow Knight", nil, "hollow-knight"},
		{"diacritics", "God of War Ragnarök", nil, "god-of-war-ragnarok"},
		{"punctuation", "The Legend of Zelda: Tears of the Kingdom", nil, "the-legend-of-zelda-tears-of-the-kingdom"},
		{"spanish", "Edición Coleccionista ñandú", nil, "edicion-coleccionista-nandu"},
		{"max length cuts at word", "Elden Ring Shadow of the Erdtree", []slug.Option{slug.MaxLength(12)}, "elden-ring"},
		{"separator", "Elden Ring", []slug.Option{slug.Separator("_")}, "elden_ring"},
		{"empty", "  !!  ", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestMake_Suffix(t *testing.T) {
	t.Parallel()

	s := slug.Make("Elden Ring", slug.WithSuffix(6))
	assert.Regexp(t, regexp.MustCompile(`^elden-ring-[a-z0-9]{6}$`), s)
	assert.NotEqual(t, s, slug.Make("Elden Ring", slug.WithSuffix(6)))
}
