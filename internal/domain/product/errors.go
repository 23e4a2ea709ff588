package product

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductSold        = errors.New("product is already sold")
	ErrNotOwner           = errors.New("user does not own this product")
	ErrInvalidCategory    = errors.New("invalid product category")
	ErrInvalidCondition   = errors.New("invalid product condition")
	ErrHasActivePurchases = errors.New("product has active purchases")
)
