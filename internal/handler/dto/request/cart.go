package request

import (
	"recoil-backend/internal/domain/cart"

	"github.com/google/uuid"
)

// AddCartItemRequest carries the product card snapshot the storefront shows.
// The snapshot is display-only; checkout re-reads the catalog and ignores
// these values.
type AddCartItemRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	UnitPriceCents int64     `json:"unit_price_cents" binding:"min=0"`
	ImageURL       string    `json:"image_url"`
	Category       string    `json:"category"`
	Variant        string    `json:"variant"`
}

func (r AddCartItemRequest) ToDomain() cart.Item {
	return cart.Item{
		ProductID:      r.ProductID,
		Name:           r.Name,
		UnitPriceCents: r.UnitPriceCents,
		ImageURL:       r.ImageURL,
		Category:       r.Category,
		Variant:        r.Variant,
		Quantity:       1,
	}
}

type SetCartQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Variant   string    `json:"variant"`
	Quantity  int32     `json:"quantity" binding:"required"`
}

type MergeCartRequest struct {
	GuestToken string `json:"guest_token" binding:"required"`
}
