package validator_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "Elden Ring"),
			validator.Range("price", 249000, 0, 999_999_999),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "  "),
			validator.LenRangeString("name", "", 2, 200),
			validator.Range("discount", 120, 0, 100),
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validator.ErrValidationFailed))

		ve := validator.Extract(err)
		require.Len(t, ve, 3)
		assert.Equal(t, []string{"name", "discount"}, ve.Fields())
		assert.True(t, ve.Has("discount"))
		assert.Len(t, ve.Map()["name"], 2)
		assert.Equal(t, "validation.required", ve[0].TranslationKey)
	})

	t.Run("when", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.When(false, validator.RequiredString("x", ""))...))
		assert.Error(t, validator.Apply(validator.When(true, validator.RequiredString("x", ""))...))
	})
}

func TestStringRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"length in range", validator.LenRangeString("d", "Juego de acción", 10, 2000), true},
		{"length counts runes", validator.LenRangeString("d", "ñññ", 3, 3), true},
		{"too long", validator.MaxLenString("brand", "abcdef", 5), false},
		{"pattern match", validator.MatchesPattern("img", "https://x.co/a.png", regexp.MustCompile(`\.png$`), "bad"), true},
		{"pattern empty passes", validator.MatchesPattern("img", "", regexp.MustCompile(`\.png$`), "bad"), true},
		{"pattern mismatch", validator.MatchesPattern("img", "https://x.co/a.bmp", regexp.MustCompile(`\.png$`), "bad"), false},
		{"email ok", validator.ValidEmail("email", "ana@example.com"), true},
		{"email with name", validator.ValidEmail("email", "Ana <ana@example.com>"), false},
		{"email no tld", validator.ValidEmail("email", "ana@localhost"), false},
		{"in list", validator.InList("status", "active", []string{"active", "inactive"}), true},
		{"not in list", validator.InList("status", "deleted", []string{"active"}), false},
		{"slice range", validator.LenRangeSlice("images", []string{"a"}, 1, 10), true},
		{"slice empty", validator.LenRangeSlice("images", []string{}, 1, 10), false},
		{"min", validator.Min("quantity", -1, 0), false},
		{"each", validator.EachString("tags", []string{"a", ""}, func(s string) bool { return s != "" }, "empty tag"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.rule.Check())
		})
	}
}
