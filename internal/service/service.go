// Package service provides the implementation of shop-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/shopcart/internal/cart"
	"github.com/abgdnv/shopcart/internal/catalog"
	shoperrors "github.com/abgdnv/shopcart/internal/errors"
	"github.com/abgdnv/shopcart/internal/messaging"
	"github.com/abgdnv/shopcart/internal/messaging/events"
	"github.com/abgdnv/shopcart/internal/order"
	"github.com/abgdnv/shopcart/internal/platform/contextkeys"
	"github.com/abgdnv/shopcart/internal/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ShopService defines the use-cases of a shopping session.
type ShopService interface {
	// Products returns the catalog in display order.
	Products(ctx context.Context) []catalog.Product

	// AddToCart adds a product to the cart, merging quantities for a product already in it.
	// Returns ErrProductNotFound for an unknown product ID and ErrInvalidQuantity for a
	// quantity outside the allowed range. The cart is unchanged on error.
	AddToCart(ctx context.Context, item AddItemDto) (*cart.Item, error)

	// Cart returns the current cart lines and total.
	Cart(ctx context.Context) CartDto

	// Checkout saves the order summary and empties the cart.
	// Returns an error wrapping ErrSaveOrder if the summary cannot be saved; the cart is kept in that case.
	Checkout(ctx context.Context) (*OrderDto, error)
}

// AddItemDto represents a request to add a product to the cart.
type AddItemDto struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"   validate:"required,min=1"`
}

// CartDto represents the cart contents.
type CartDto struct {
	Items []cart.Item
	Total decimal.Decimal
}

// OrderDto represents a checked-out order.
type OrderDto struct {
	ID       uuid.UUID
	Items    []cart.Item
	Total    decimal.Decimal
	Currency string
	PlacedAt time.Time
}

// Options holds the tunable parts of the service.
type Options struct {
	Currency    string
	MaxQuantity int
}

// Service implements ShopService over a single cart.
type Service struct {
	catalog   catalog.Store
	cart      *cart.Cart
	writer    order.Writer
	publisher messaging.Publisher
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time

	currency        string
	maxQuantityRule string

	itemsCounter  metric.Int64Counter
	ordersCounter metric.Int64Counter
}

// NewService creates a new instance of ShopService.
func NewService(store catalog.Store, c *cart.Cart, writer order.Writer, publisher messaging.Publisher, opts Options, logger *slog.Logger) *Service {
	meter := otel.Meter("shop-service")
	itemsCounter, err := meter.Int64Counter("cart_items_added", metric.WithDescription("Total number of units added to the cart"))
	if err != nil {
		panic(fmt.Sprintf("failed to create cart_items_added counter: %v", err))
	}
	ordersCounter, err := meter.Int64Counter("orders_placed", metric.WithDescription("Total number of placed orders"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_placed counter: %v", err))
	}
	return &Service{
		catalog:         store,
		cart:            c,
		writer:          writer,
		publisher:       publisher,
		validate:        validator.New(),
		logger:          logger.With("component", "service"),
		now:             time.Now,
		currency:        opts.Currency,
		maxQuantityRule: fmt.Sprintf("max=%d", opts.MaxQuantity),
		itemsCounter:    itemsCounter,
		ordersCounter:   ordersCounter,
	}
}

// Products returns all catalog products.
func (s *Service) Products(_ context.Context) []catalog.Product {
	return s.catalog.FindAll()
}

// AddToCart looks the product up, validates the quantity and adds it to the cart.
func (s *Service) AddToCart(ctx context.Context, item AddItemDto) (*cart.Item, error) {
	product, err := s.catalog.FindByID(item.ProductID)
	if err != nil {
		s.logger.WarnContext(ctx, "Product not found", "product_id", item.ProductID)
		return nil, fmt.Errorf("failed to add product %d: %w", item.ProductID, err)
	}
	if err := s.validateItem(item); err != nil {
		s.logger.WarnContext(ctx, "Invalid add to cart request", "product_id", item.ProductID, "quantity", item.Quantity, "error", err)
		return nil, err
	}

	s.cart.AddItem(*product, item.Quantity)
	s.itemsCounter.Add(ctx, int64(item.Quantity))

	line, ok := s.findLine(product.ID())
	if !ok {
		return nil, fmt.Errorf("product %d missing from cart after add", product.ID())
	}
	s.logger.DebugContext(ctx, "Product added to cart", "product_id", product.ID(), "quantity", item.Quantity, "line_quantity", line.Quantity())
	return &line, nil
}

// Cart returns the cart lines and the total.
func (s *Service) Cart(_ context.Context) CartDto {
	return CartDto{
		Items: s.cart.Items(),
		Total: s.cart.CalculateTotal(),
	}
}

// Checkout writes the order summary, publishes an OrderPlacedEvent and clears the cart.
func (s *Service) Checkout(ctx context.Context) (*OrderDto, error) {
	if s.cart.IsEmpty() {
		s.logger.InfoContext(ctx, "Checking out an empty cart")
	}
	summary := order.Summary{
		OrderID:  uuid.New(),
		Items:    s.cart.Items(),
		Total:    s.cart.CalculateTotal(),
		Currency: s.currency,
		PlacedAt: s.now(),
	}
	if err := s.writer.Write(ctx, summary); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save order summary", "order_id", summary.OrderID, "error", err)
		return nil, err
	}

	sessionID, _ := contextkeys.GetSessionID(ctx)
	event := events.OrderPlacedEvent{
		OrderID:   summary.OrderID,
		SessionID: sessionID,
		ItemCount: len(summary.Items),
		Total:     render.Amount(summary.Total),
		Currency:  summary.Currency,
		PlacedAt:  summary.PlacedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish OrderPlacedEvent", "order_id", summary.OrderID, "error", err)
	}
	// increase the number of placed orders
	s.ordersCounter.Add(ctx, 1)

	s.cart.Clear()
	s.logger.InfoContext(ctx, "Order placed", "order_id", summary.OrderID, "total", render.Amount(summary.Total))

	return &OrderDto{
		ID:       summary.OrderID,
		Items:    summary.Items,
		Total:    summary.Total,
		Currency: summary.Currency,
		PlacedAt: summary.PlacedAt,
	}, nil
}

// validateItem checks the request against the struct rules and the configured quantity limit.
func (s *Service) validateItem(item AddItemDto) error {
	err := s.validate.Struct(item)
	if err == nil {
		err = s.validate.Var(item.Quantity, s.maxQuantityRule)
	}
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %d, failed on rule: %s", shoperrors.ErrInvalidQuantity, item.Quantity, validationErrors[0].Tag())
	}
	return fmt.Errorf("%w: %w", shoperrors.ErrInvalidInput, err)
}

func (s *Service) findLine(productID int) (cart.Item, bool) {
	for _, line := range s.cart.Items() {
		if line.ProductID() == productID {
			return line, true
		}
	}
	return cart.Item{}, false
}
