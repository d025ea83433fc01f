package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type ProductRM struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	ImageURL   string
	Category   string
	CreatedAt  time.Time
}
