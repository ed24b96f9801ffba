package sanitizer

import (
	"strings"
	"unicode"
)

// stripPipeline is the order StripString applies its steps in.
// Tags are replaced first so that "a<b>c" keeps its word boundary.
var stripPipeline = Chain(
	ReplaceTags,
	RemoveNullBytes,
	RemoveOperatorChars,
	NormalizeWhitespace,
)

// StripString removes tag-like markup (replaced by a space), null bytes and
// the characters {, }, $ and ;, then collapses whitespace runs and trims.
// The result is stable: StripString(StripString(s)) == StripString(s).
func StripString(s string) string {
	if s == "" {
		return s
	}
	return stripPipeline(s)
}

// StripText applies StripString to strings and returns other values as is.
func StripText(v any) any {
	if s, ok := v.(string); ok {
		return StripString(s)
	}
	return v
}

// ReplaceTags replaces every "<...>" sequence with a single space.
func ReplaceTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, " ")
}

// RemoveNullBytes removes null bytes that could cause issues in C-based systems.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// RemoveOperatorChars removes {, }, $ and ;.
func RemoveOperatorChars(s string) string {
	return operatorCharsRegex.ReplaceAllString(s, "")
}

// NormalizeWhitespace replaces any run of unicode whitespace with a single
// space and trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimToLower removes leading and trailing whitespace and converts to lowercase.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// KeepDigits keeps only numeric digits.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
