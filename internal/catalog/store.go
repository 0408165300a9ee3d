package catalog

import (
	shoperrors "github.com/abgdnv/shopcart/internal/errors"
)

// Store is an interface for read-only catalog lookups.
// It abstracts the product source so the shop service can be tested against a fake catalog.
type Store interface {
	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(id int) (*Product, error)

	// FindAll returns all products in catalog order.
	// Returns an empty slice if the catalog is empty.
	FindAll() []Product
}

// inMemory implements Store over a fixed, ordered product list.
type inMemory struct {
	products []Product
	index    map[int]int // product ID -> position in products
}

// NewInMemoryStore creates a Store holding the given products in the given order.
// When two products share an ID the first one wins.
func NewInMemoryStore(products ...Product) Store {
	s := &inMemory{
		products: make([]Product, 0, len(products)),
		index:    make(map[int]int, len(products)),
	}
	for _, p := range products {
		if _, exists := s.index[p.ID()]; exists {
			continue
		}
		s.index[p.ID()] = len(s.products)
		s.products = append(s.products, p)
	}
	return s
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(id int) (*Product, error) {
	pos, ok := s.index[id]
	if !ok {
		return nil, shoperrors.ErrProductNotFound
	}
	p := s.products[pos]
	return &p, nil
}

// FindAll retrieves all products.
func (s *inMemory) FindAll() []Product {
	list := make([]Product, len(s.products))
	copy(list, s.products)
	return list
}
