package storefront

import "errors"

var (
	ErrSessionUnavailable = errors.New("storefront: browsing session unavailable")
	ErrFilterCanceled     = errors.New("storefront: filter update superseded")
	ErrSessionsClosed     = errors.New("storefront: session store closed")
)
