package readmodel

import (
	"time"

	"recoil-backend/internal/domain/order"

	"github.com/google/uuid"
)

type OrderItemRM struct {
	ProductID      uuid.UUID
	ProductName    string
	Quantity       int32
	UnitPriceCents int64
}

type OrderRM struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	CustomerEmail   string
	TotalCents      int64
	Status          order.Status
	ShippingAddress order.ShippingAddress
	Items           []OrderItemRM
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ShortID is the human-facing order reference used in email subjects.
func (o *OrderRM) ShortID() string {
	s := o.ID.String()
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
