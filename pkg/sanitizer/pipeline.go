package sanitizer

import "slices"

// Chain returns a function running steps left to right.
func Chain[T any](steps ...func(T) T) func(T) T {
	return func(v T) T {
		for _, step := range steps {
			v = step(v)
		}
		return v
	}
}

// Deduplicate keeps the first occurrence of every item.
func Deduplicate[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		if _, dup := seen[item]; dup {
			return true
		}
		seen[item] = struct{}{}
		return false
	})
}

// FilterSlice returns the items keep accepts.
func FilterSlice[T any](items []T, keep func(T) bool) []T {
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool { return !keep(item) })
}

// CleanStringSlice lowercases and trims items, drops blanks and duplicates.
func CleanStringSlice(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		cleaned = append(cleaned, TrimToLower(item))
	}
	return Deduplicate(FilterSlice(cleaned, func(s string) bool { return s != "" }))
}
