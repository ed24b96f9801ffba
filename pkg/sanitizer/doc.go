// Package sanitizer cleans untrusted request data before it reaches handlers
// and the document store.
//
// The package has three layers:
//
//   - Text helpers – StripString removes tag-like markup, null bytes and the
//     characters used by NoSQL operators ({, }, $, ;) and normalises
//     whitespace. Chain composes helpers; KeepDigits, CleanStringSlice and
//     Deduplicate are shared with the catalog service.
//
//   - Structure sanitisation – SanitizeStructure walks decoded JSON
//     (maps, ordered maps, slices) and rebuilds it without reserved keys
//     (__proto__, constructor, prototype) or operator keys (anything starting
//     with $). SanitizeValues applies the same rules to url.Values.
//
//   - Request guards – Middleware replaces body, query and path parameters
//     with their sanitised versions and always continues. InjectionGuard scans
//     the request body for SQL injection shapes and answers 400 with a
//     structured refusal when one is found.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(sanitizer.Middleware(sanitizer.WithLogger(log)))
//	r.Use(sanitizer.InjectionGuard(sanitizer.WithLogger(log)))
//
// Path parameters are only known after routing, so mount the middleware with
// r.With(...) or inside r.Route(...) when handlers read chi URL params.
//
// # Error handling
//
// None of the sanitisation helpers return errors. Unparseable bodies are left
// untouched so that the binder can reject them with a proper error.
//
// DetectInjection is a textual heuristic, not a parser. Legitimate text that
// contains SQL keywords is rejected as well.
package sanitizer
