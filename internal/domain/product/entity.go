package product

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus represents the lifecycle status of a listing
type ProductStatus string

const (
	StatusAvailable ProductStatus = "available"
	StatusSold      ProductStatus = "sold"
)

// Condition describes the wear state of a second-hand item
type Condition string

const (
	ConditionNuevo   Condition = "nuevo"
	ConditionPocoUso Condition = "poco_uso"
	ConditionUsado   Condition = "usado"
)

// Categories lists the categories a product can be published under.
var Categories = []string{
	"camisas",
	"pantalones",
	"vestidos",
	"zapatos",
	"accesorios",
	"abrigos",
	"deportiva",
	"otros",
}

// Product represents a second-hand listing owned by its seller
type Product struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	Title       string
	Description string
	Category    string
	Condition   Condition
	Size        string

	// Price in colones, whole units
	Price int64

	Location string

	// Ordered; the first image is the primary one
	Images []string

	Status   ProductStatus
	Featured bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable reports whether the product can still be purchased.
func (p *Product) IsAvailable() bool {
	return p.Status == StatusAvailable
}

// IsValidCategory checks a category against the published list.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
