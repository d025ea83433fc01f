package order

import "errors"

var ErrNegativeAmount = errors.New("amount cannot be negative")

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulQuantity(qty int32) Money {
	return Money{cents: m.cents * int64(qty)}
}

// ShippingAddress is stored as a JSON document on the order, exactly as
// submitted at checkout. Free-form fields; the shop does not validate
// postal formats.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country"`
}
