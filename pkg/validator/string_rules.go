package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// RequiredString fails for empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// LenRangeString checks the trimmed rune length lies within [min, max].
func LenRangeString(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(strings.TrimSpace(value))
			return n >= min && n <= max
		},
		Error: newError(field,
			fmt.Sprintf("must be between %d and %d characters long", min, max),
			"validation.length_range",
			map[string]any{"min": min, "max": max},
		),
	}
}

// MaxLenString checks the trimmed rune length is at most max.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(strings.TrimSpace(value)) <= max },
		Error: newError(field,
			fmt.Sprintf("must be at most %d characters long", max),
			"validation.max_length",
			map[string]any{"max": max},
		),
	}
}

// MatchesPattern checks value against re. Empty values pass; combine with
// RequiredString when the field is mandatory.
func MatchesPattern(field, value string, re *regexp.Regexp, message string) Rule {
	return Rule{
		Check: func() bool { return value == "" || re.MatchString(value) },
		Error: newError(field, message, "validation.pattern", map[string]any{"pattern": re.String()}),
	}
}
