// Package services holds the storefront's use cases on top of the repos.
package services

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrForbidden  = errors.New("forbidden")
	ErrEmptyCart  = errors.New("cart is empty")
	ErrOutOfStock = errors.New("product is out of stock")
	ErrNoAddress  = errors.New("a shipping address is required")
	ErrBadStatus  = errors.New("unknown order status")
	ErrLineGone   = errors.New("cart line not found")
)

var now = time.Now
