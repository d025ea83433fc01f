package response

import (
	"time"

	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	OrderID uuid.UUID `json:"orderId"`
}

type CancelOrderResponse struct {
	Status string `json:"status"`
}

type ApproveCancelResponse struct {
	Success bool `json:"success"`
}

type NotifyCustomerResponse struct {
	EmailsSent int `json:"emailsSent"`
}

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          *uuid.UUID          `json:"userId,omitempty"`
	CustomerEmail   string              `json:"customerEmail"`
	TotalCents      int64               `json:"totalCents"`
	Status          string              `json:"status"`
	ShippingAddress any                 `json:"shippingAddress"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func FromOrderRM(rm *readmodel.OrderRM) *OrderResponse {
	items := make([]OrderItemResponse, len(rm.Items))
	for i, it := range rm.Items {
		items[i] = OrderItemResponse{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		}
	}
	return &OrderResponse{
		ID:              rm.ID,
		UserID:          rm.UserID,
		CustomerEmail:   rm.CustomerEmail,
		TotalCents:      rm.TotalCents,
		Status:          rm.Status.String(),
		ShippingAddress: rm.ShippingAddress,
		Items:           items,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}
