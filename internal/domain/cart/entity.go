package cart

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyProductID  = errors.New("product id is required")
)

// Item is one cart line. Lines are keyed by (ProductID, Variant): the same
// product in two sizes occupies two lines.
type Item struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	ImageURL       string    `json:"image_url"`
	Category       string    `json:"category"`
	Variant        string    `json:"variant"`
	Quantity       int32     `json:"quantity"`
}

type Key struct {
	ProductID uuid.UUID
	Variant   string
}

func (i Item) Key() Key {
	return Key{ProductID: i.ProductID, Variant: i.Variant}
}

func (i Item) Validate() error {
	if i.ProductID == uuid.Nil {
		return ErrEmptyProductID
	}
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Cart is the pending selection for one owner. It is an ordered sequence;
// mutation preserves insertion order so the UI renders stably.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

func FromItems(items []Item) *Cart {
	c := &Cart{items: make([]Item, len(items))}
	copy(c.items, items)
	return c
}

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Add increments the matching line by one, or appends a new line with
// quantity 1. The submitted quantity on item is ignored.
func (c *Cart) Add(item Item) error {
	if item.ProductID == uuid.Nil {
		return ErrEmptyProductID
	}

	for i := range c.items {
		if c.items[i].Key() == item.Key() {
			c.items[i].Quantity++
			return nil
		}
	}

	item.Quantity = 1
	c.items = append(c.items, item)
	return nil
}

func (c *Cart) Remove(productID uuid.UUID, variant string) {
	key := Key{ProductID: productID, Variant: variant}
	next := c.items[:0]
	for _, it := range c.items {
		if it.Key() != key {
			next = append(next, it)
		}
	}
	c.items = next
}

// SetQuantity clamps to a minimum of 1; zero-quantity lines do not exist,
// deletion goes through Remove. Unknown keys are a no-op.
func (c *Cart) SetQuantity(productID uuid.UUID, variant string, qty int32) {
	if qty < 1 {
		qty = 1
	}
	key := Key{ProductID: productID, Variant: variant}
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, it := range c.items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}

// Merge folds a guest cart into a user cart: quantities are summed where
// the same (product, variant) key appears in both, remaining guest lines
// are appended. Summing, not max or replace, matches what the shopper did
// before signing in. User cart order wins.
func Merge(userItems, guestItems []Item) []Item {
	merged := make([]Item, len(userItems))
	copy(merged, userItems)

	for _, g := range guestItems {
		found := false
		for i := range merged {
			if merged[i].Key() == g.Key() {
				merged[i].Quantity += g.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, g)
		}
	}

	return merged
}
