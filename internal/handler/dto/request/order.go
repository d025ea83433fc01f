package request

import (
	"github.com/google/uuid"
)

type CancelOrderRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

type ApproveCancelRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Status  string    `json:"status" binding:"required"`
}

type NotifyCustomerRequest struct {
	OrderID   uuid.UUID `json:"order_id" binding:"required"`
	NewStatus string    `json:"new_status" binding:"required"`
}
