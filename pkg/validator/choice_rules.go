package validator

import (
	"fmt"
	"slices"
)

// InList checks value is one of allowed.
func InList[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: newError(field,
			fmt.Sprintf("must be one of: %v", allowed),
			"validation.in_list",
			map[string]any{"allowed_values": allowed},
		),
	}
}

// LenRangeSlice checks min <= len(value) <= max.
func LenRangeSlice[T any](field string, value []T, min, max int) Rule {
	return Rule{
		Check: func() bool { return len(value) >= min && len(value) <= max },
		Error: newError(field,
			fmt.Sprintf("must contain between %d and %d items", min, max),
			"validation.items_range",
			map[string]any{"min": min, "max": max},
		),
	}
}

// EachString applies check to every item and fails on the first mismatch.
func EachString(field string, values []string, check func(string) bool, message string) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range values {
				if !check(v) {
					return false
				}
			}
			return true
		},
		Error: newError(field, message, "validation.each", nil),
	}
}
