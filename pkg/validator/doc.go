// Package validator builds field validation out of small Rule values.
//
// A Rule couples a check with the ValidationError reported when the check
// fails. Apply runs every rule and returns ValidationErrors listing all
// failures, or nil:
//
//	err := validator.Apply(
//	    validator.RequiredString("name", p.Name),
//	    validator.LenRangeString("name", p.Name, 2, 200),
//	    validator.Range("price", p.Price, 0, 999_999_999),
//	)
//
// Error messages are English; TranslationKey and TranslationValues carry
// what a localized template needs.
package validator
