package response

import (
	"time"

	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ProductResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Category   string    `json:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromProductRM(rm *readmodel.ProductRM) *ProductResponse {
	return &ProductResponse{
		ID:         rm.ID,
		Name:       rm.Name,
		PriceCents: rm.PriceCents,
		ImageURL:   rm.ImageURL,
		Category:   rm.Category,
		CreatedAt:  rm.CreatedAt,
	}
}
