package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Variant   string          `json:"variant"`
	Color     string          `json:"color"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type WishlistItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	AddedAt   time.Time       `json:"addedAt"`
}
