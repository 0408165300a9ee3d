// Package cart holds the products a customer has selected during the session.
package cart

import (
	"github.com/abgdnv/shopcart/internal/catalog"
	"github.com/shopspring/decimal"
)

// Item is a single cart line: a copy of a catalog product and the aggregated quantity.
type Item struct {
	product  catalog.Product
	quantity int
}

// NewItem creates a cart line. The quantity is taken as given.
func NewItem(p catalog.Product, quantity int) Item {
	return Item{product: p, quantity: quantity}
}

func (i Item) ProductID() int             { return i.product.ID() }
func (i Item) Name() string               { return i.product.Name() }
func (i Item) UnitPrice() decimal.Decimal { return i.product.Price() }
func (i Item) Quantity() int              { return i.quantity }

// TotalPrice returns unit price × quantity.
func (i Item) TotalPrice() decimal.Decimal {
	return i.product.Price().Mul(decimal.NewFromInt(int64(i.quantity)))
}

// IncrementQuantity adds delta to the current quantity.
func (i *Item) IncrementQuantity(delta int) {
	i.quantity += delta
}
