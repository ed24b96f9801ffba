package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("checkout: cart is empty")
	ErrCartFull           = errors.New("checkout: cart holds too many products")
	ErrUnknownProduct     = errors.New("checkout: product does not exist")
	ErrOutOfStock         = errors.New("checkout: product is not available")
	ErrInsufficientStock  = errors.New("checkout: requested quantity exceeds stock")
	ErrNotInCart          = errors.New("checkout: product is not in the cart")
	ErrUnknownStep        = errors.New("checkout: unknown step")
	ErrStepLocked         = errors.New("checkout: previous steps are not complete")
	ErrCheckoutIncomplete = errors.New("checkout: checkout is not complete")
	ErrInvalidStep        = errors.New("checkout: step data is invalid")
)
