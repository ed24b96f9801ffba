package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

func TestDetectInjection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  any
		expected bool
	}{
		{"or tautology", map[string]any{"q": "1 OR 1=1"}, true},
		{"drop table", map[string]any{"name": "a'; DROP TABLE users;--"}, true},
		{"lowercase keyword", map[string]any{"q": "select * from products"}, true},
		{"comment block", map[string]any{"q": "x /* y */"}, true},
		{"and clause", map[string]any{"q": "x and y=1"}, true},
		{"benign word containing and", map[string]any{"name": "Android phone"}, false},
		{"benign product", map[string]any{"name": "Hollow Knight", "price": 45000}, false},
		{"keyword inside word", map[string]any{"name": "Selection pack"}, false},
		{"nil payload", nil, false},
		{"plain string", "update", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.DetectInjection(tt.payload))
		})
	}
}
