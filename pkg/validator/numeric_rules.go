package validator

import "fmt"

// Range checks min <= value <= max.
func Range[T Numeric](field string, value, min, max T) Rule {
	return Rule{
		Check: func() bool { return value >= min && value <= max },
		Error: newError(field,
			fmt.Sprintf("must be between %v and %v", min, max),
			"validation.range",
			map[string]any{"min": min, "max": max},
		),
	}
}

// Min checks value >= min.
func Min[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: newError(field,
			fmt.Sprintf("must be at least %v", min),
			"validation.min",
			map[string]any{"min": min},
		),
	}
}
