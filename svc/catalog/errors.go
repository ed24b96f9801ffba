package catalog

import "errors"

var (
	ErrProductNotFound  = errors.New("catalog: product not found")
	ErrDuplicateProduct = errors.New("catalog: product with this slug or code already exists")
	ErrInvalidProduct   = errors.New("catalog: invalid product")
	ErrStorage          = errors.New("catalog: storage failure")
	ErrCache            = errors.New("catalog: cache failure")
)
