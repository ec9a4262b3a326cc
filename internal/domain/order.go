package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOrderPlaced         OrderStatus = "order_placed"
	StatusPendingConfirmation OrderStatus = "pending_confirmation"
	StatusOutForDelivery      OrderStatus = "out_for_delivery"
	StatusDelivered           OrderStatus = "delivered"
	StatusCancelled           OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	StatusOrderPlaced,
	StatusPendingConfirmation,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

var statusLabels = map[OrderStatus]string{
	StatusOrderPlaced:         "ORDER PLACED",
	StatusPendingConfirmation: "PENDING CONFIRMATION",
	StatusOutForDelivery:      "OUT FOR DELIVERY",
	StatusDelivered:           "DELIVERED",
	StatusCancelled:           "CANCELLED",
}

func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Pending reports whether the order still awaits fulfilment.
func (s OrderStatus) Pending() bool {
	return s == StatusOrderPlaced || s == StatusPendingConfirmation
}

// CanTransition reports whether from -> to follows the forward path.
// The path is advisory: stores accept any move.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() || from == to {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	rank := func(s OrderStatus) int {
		for i, x := range OrderStatuses {
			if x == s {
				return i
			}
		}
		return -1
	}
	return rank(to) == rank(from)+1
}

// OrderItem is a snapshot taken at purchase time.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Color     string          `json:"color,omitempty"`
	Length    string          `json:"length,omitempty"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

type StatusChange struct {
	Status OrderStatus `json:"status"`
	Date   time.Time   `json:"date"`
	Note   string      `json:"note,omitempty"`
}

type Order struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	UserEmail       string           `json:"userEmail,omitempty"`
	Items           []OrderItem      `json:"items"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	Status          OrderStatus      `json:"status"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	DeliveryFee     *decimal.Decimal `json:"deliveryFee,omitempty"`
	StatusHistory   []StatusChange   `json:"statusHistory"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ItemsTotal sums price x quantity; the delivery fee is not included.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// GrandTotal is TotalAmount plus the delivery fee, if any.
func (o Order) GrandTotal() decimal.Decimal {
	if o.DeliveryFee == nil {
		return o.TotalAmount
	}
	return o.TotalAmount.Add(*o.DeliveryFee)
}
