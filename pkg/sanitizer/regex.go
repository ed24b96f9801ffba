package sanitizer

import "regexp"

// Pre-compiled regular expressions for performance
var (
	// HTML stripping
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// Characters used to build NoSQL operators and chained statements
	operatorCharsRegex = regexp.MustCompile(`[{}$;]`)

	// SQL injection shapes
	sqlKeywordRegex    = regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC)\b`)
	sqlCommentRegex    = regexp.MustCompile(`(--|;|/\*|\*/)`)
	sqlOrClauseRegex   = regexp.MustCompile(`(?i)\bOR\b.*=.*`)
	sqlAndClauseRegex  = regexp.MustCompile(`(?i)\bAND\b.*=.*`)
	sqlInjectionShapes = []*regexp.Regexp{
		sqlKeywordRegex,
		sqlCommentRegex,
		sqlOrClauseRegex,
		sqlAndClauseRegex,
	}
)
