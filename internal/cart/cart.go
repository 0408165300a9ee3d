package cart

import (
	"github.com/abgdnv/shopcart/internal/catalog"
	"github.com/shopspring/decimal"
)

// Cart is an ordered collection of items, at most one per product ID.
// Items keep the order in which their product was first added.
// A Cart is owned by a single goroutine and is not safe for concurrent use.
type Cart struct {
	items []Item
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds quantity units of p. If p is already in the cart its quantity is
// increased and the original unit price is kept; otherwise a new line is appended.
func (c *Cart) AddItem(p catalog.Product, quantity int) {
	for i := range c.items {
		if c.items[i].ProductID() == p.ID() {
			c.items[i].IncrementQuantity(quantity)
			return
		}
	}
	c.items = append(c.items, NewItem(p, quantity))
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	list := make([]Item, len(c.items))
	copy(list, c.items)
	return list
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// CalculateTotal returns the sum of all line totals, zero for an empty cart.
func (c *Cart) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// Clear removes all items from the cart.
func (c *Cart) Clear() {
	c.items = nil
}
