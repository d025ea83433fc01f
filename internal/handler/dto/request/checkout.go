package request

import (
	"recoil-backend/internal/domain/order"
	"recoil-backend/internal/usecase"

	"github.com/google/uuid"
)

// CheckoutItemRequest intentionally has no price field. The server prices
// every line from the catalog; a client-submitted price would be discarded
// anyway.
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

type ShippingDetailsRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country" binding:"required"`
}

type CheckoutRequest struct {
	Items           []CheckoutItemRequest  `json:"items" binding:"required,min=1,dive"`
	ShippingDetails ShippingDetailsRequest `json:"shipping_details" binding:"required"`
	Email           string                 `json:"email" binding:"required,email"`
}

func (r CheckoutRequest) ToInput(userID *uuid.UUID) usecase.CheckoutInput {
	lines := make([]usecase.CheckoutLine, len(r.Items))
	for i, it := range r.Items {
		lines[i] = usecase.CheckoutLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
	}
	return usecase.CheckoutInput{
		Items: lines,
		ShippingAddress: order.ShippingAddress{
			Name:    r.ShippingDetails.Name,
			Phone:   r.ShippingDetails.Phone,
			Line1:   r.ShippingDetails.Line1,
			Line2:   r.ShippingDetails.Line2,
			City:    r.ShippingDetails.City,
			State:   r.ShippingDetails.State,
			Zip:     r.ShippingDetails.Zip,
			Country: r.ShippingDetails.Country,
		},
		Email:  r.Email,
		UserID: userID,
	}
}
