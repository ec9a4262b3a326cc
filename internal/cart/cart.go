// Package cart holds the in-memory shopping cart rules. Persistence lives in
// repos.CartRepo; services.CartService loads a Cart, mutates it and saves it.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"emytrends/internal/domain"
)

type Cart struct {
	lines []domain.CartLine
	newID func() string
}

// New wraps existing lines, e.g. as loaded from storage.
func New(lines []domain.CartLine) *Cart {
	return &Cart{lines: append([]domain.CartLine(nil), lines...), newID: uuid.NewString}
}

// WithIDs swaps the line id generator. Tests use it for stable ids.
func (c *Cart) WithIDs(gen func() string) *Cart {
	c.newID = gen
	return c
}

// Add appends line under a fresh id and returns the stored copy. Lines for the
// same product and variant are kept apart.
func (c *Cart) Add(line domain.CartLine) domain.CartLine {
	line.ID = c.newID()
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	c.lines = append(c.lines, line)
	return line
}

// Remove drops the line with id. Unknown ids are ignored.
func (c *Cart) Remove(id string) {
	out := c.lines[:0]
	for _, l := range c.lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	c.lines = out
}

// UpdateQuantity sets the quantity of line id, never below 1. It reports
// whether the line exists.
func (c *Cart) UpdateQuantity(id string, qty int) bool {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = qty
			return true
		}
	}
	return false
}

func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	return append([]domain.CartLine(nil), c.lines...)
}

func (c *Cart) Len() int { return len(c.lines) }

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Total() decimal.Decimal { return Total(c.lines) }

// Total sums price x quantity. No rounding is applied.
func Total(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}
