package sanitizer

import "errors"

var (
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrBodyReadFailed = errors.New("failed to read request body")
)
