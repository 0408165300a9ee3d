// Package catalog provides the products available for purchase during a session.
package catalog

import "github.com/shopspring/decimal"

// Product represents a sellable item. It is immutable once constructed.
type Product struct {
	id          int
	name        string
	description string
	price       decimal.Decimal // Unit price
}

// NewProduct creates a new Product.
func NewProduct(id int, name, description string, price decimal.Decimal) Product {
	return Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
	}
}

func (p Product) ID() int                { return p.id }
func (p Product) Name() string           { return p.name }
func (p Product) Description() string    { return p.description }
func (p Product) Price() decimal.Decimal { return p.price }

// Default returns the fixed catalog offered by the shop.
func Default() []Product {
	return []Product{
		NewProduct(1, "Laptop", "High-performance laptop", decimal.NewFromInt(70000)),
		NewProduct(2, "Smartphone", "Latest model smartphone", decimal.NewFromInt(50000)),
		NewProduct(3, "Headphones", "Noise-cancelling headphones", decimal.NewFromInt(15000)),
		NewProduct(4, "Smartwatch", "Stylish smartwatch", decimal.NewFromInt(20000)),
	}
}
