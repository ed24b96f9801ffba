package listing

import "errors"

var (
	ErrAlreadyInitialized = errors.New("listing: engine already initialized")
	ErrParseMarkup        = errors.New("listing: failed to parse markup")
	ErrUnknownField       = errors.New("listing: unknown filter field")
)
