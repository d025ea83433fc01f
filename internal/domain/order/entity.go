package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoItems       = errors.New("order must contain at least one item")
	ErrEmptyEmail    = errors.New("customer email is required")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrItemQuantity  = errors.New("order item quantity must be at least 1")
)

// Item is a denormalized snapshot taken at order creation. Name and unit
// price are copied from the catalog so later edits never rewrite history.
type Item struct {
	productID uuid.UUID
	name      string
	quantity  int32
	unitPrice Money
}

func NewItem(productID uuid.UUID, name string, quantity int32, unitPrice Money) (Item, error) {
	if quantity < 1 {
		return Item{}, ErrItemQuantity
	}
	return Item{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i Item) ProductID() uuid.UUID { return i.productID }
func (i Item) Name() string         { return i.name }
func (i Item) Quantity() int32      { return i.quantity }
func (i Item) UnitPrice() Money     { return i.unitPrice }

func (i Item) Subtotal() Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

type Order struct {
	id              uuid.UUID
	userID          *uuid.UUID // nil for guest checkout
	customerEmail   string
	total           Money
	status          Status
	shippingAddress ShippingAddress
	items           []Item
	createdAt       time.Time
	updatedAt       time.Time
}

// NewOrder builds an order from catalog-priced items. The total is derived
// here, never accepted from the caller: sum of item subtotals plus the flat
// shipping fee. Initial status is always Processing.
func NewOrder(
	userID *uuid.UUID,
	customerEmail string,
	shippingAddress ShippingAddress,
	items []Item,
	flatShippingFee Money,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if customerEmail == "" {
		return nil, ErrEmptyEmail
	}

	total := flatShippingFee
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}

	return &Order{
		id:              uuid.New(),
		userID:          userID,
		customerEmail:   customerEmail,
		total:           total,
		status:          StatusProcessing,
		shippingAddress: shippingAddress,
		items:           items,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	userID *uuid.UUID,
	customerEmail string,
	total Money,
	status Status,
	shippingAddress ShippingAddress,
	items []Item,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		userID:          userID,
		customerEmail:   customerEmail,
		total:           total,
		status:          status,
		shippingAddress: shippingAddress,
		items:           items,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (o *Order) ID() uuid.UUID                    { return o.id }
func (o *Order) UserID() *uuid.UUID               { return o.userID }
func (o *Order) CustomerEmail() string            { return o.customerEmail }
func (o *Order) Total() Money                     { return o.total }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }

func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.userID != nil && *o.userID == userID
}
