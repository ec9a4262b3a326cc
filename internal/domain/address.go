package domain

import (
	"strings"
	"time"
)

var AddressLabels = []string{"Home", "Work", "Other"}

type Address struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Label         string    `json:"label"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Country       string    `json:"country"`
	City          string    `json:"city"`
	Province      string    `json:"province"`
	PostalCode    string    `json:"postalCode"`
	StreetAddress string    `json:"streetAddress"`
	AddressLine2  string    `json:"addressLine2,omitempty"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Snapshot copies the address into the shape stored on orders.
func (a Address) Snapshot() ShippingAddress {
	street := a.StreetAddress
	if a.AddressLine2 != "" {
		street = strings.TrimSpace(street + ", " + a.AddressLine2)
	}
	return ShippingAddress{
		Name:    a.FullName,
		Address: street,
		City:    a.City,
		State:   a.Province,
		ZipCode: a.PostalCode,
		Country: a.Country,
		Phone:   a.Phone,
	}
}
