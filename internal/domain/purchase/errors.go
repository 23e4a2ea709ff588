package purchase

import "errors"

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrInvalidStatus    = errors.New("invalid purchase status")
)
