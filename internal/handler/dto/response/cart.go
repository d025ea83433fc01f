package response

import (
	"recoil-backend/internal/domain/cart"

	"github.com/google/uuid"
)

type CartItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Category       string    `json:"category,omitempty"`
	Variant        string    `json:"variant,omitempty"`
	Quantity       int32     `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalCents int64              `json:"totalCents"`
}

func FromCartItems(items []cart.Item) *CartResponse {
	resp := &CartResponse{Items: make([]CartItemResponse, len(items))}
	for i, it := range items {
		resp.Items[i] = CartItemResponse{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			ImageURL:       it.ImageURL,
			Category:       it.Category,
			Variant:        it.Variant,
			Quantity:       it.Quantity,
		}
		resp.TotalCents += it.UnitPriceCents * int64(it.Quantity)
	}
	return resp
}
