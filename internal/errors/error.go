// Package errors provides custom error types for shop operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidQuantity = errors.New("invalid quantity")
var ErrInvalidInput = errors.New("invalid input")

var ErrSaveOrder = errors.New("failed to save order")
