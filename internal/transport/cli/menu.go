// Package cli provides the interactive text menu of the shop.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	shoperrors "github.com/abgdnv/shopcart/internal/errors"
	"github.com/abgdnv/shopcart/internal/render"
	"github.com/abgdnv/shopcart/internal/service"
)

// Menu choices.
const (
	choiceViewProducts = 1
	choiceAddToCart    = 2
	choiceViewCart     = 3
	choiceCheckout     = 4
	choiceExit         = 5
)

const menuText = `
--- Online Shopping System ---
1. View Products
2. Add to Cart
3. View Cart
4. Checkout
5. Exit
Enter your choice: `

const (
	msgInvalidInput     = "Invalid input! Please enter valid numbers."
	msgInvalidChoice    = "Invalid choice! Please try again."
	msgInvalidProductID = "Invalid Product ID!"
	msgProductAdded     = "Product added to cart!"
	msgThankYou         = "Thank you for shopping with us!"
	msgGoodbye          = "Goodbye!"
)

// Options holds the values the menu shows to the user.
type Options struct {
	Currency    string
	SummaryPath string
	MaxQuantity int
}

// Menu reads choices from an input stream and drives the shop service.
type Menu struct {
	service service.ShopService
	in      *tokenReader
	out     io.Writer
	errOut  io.Writer
	opts    Options
	logger  *slog.Logger
}

// NewMenu creates a menu reading from in, writing regular output to out and warnings to errOut.
func NewMenu(svc service.ShopService, in io.Reader, out, errOut io.Writer, opts Options, logger *slog.Logger) *Menu {
	return &Menu{
		service: svc,
		in:      newTokenReader(in),
		out:     out,
		errOut:  errOut,
		opts:    opts,
		logger:  logger.With("component", "menu"),
	}
}

// Run shows the menu until the user exits, the input ends or ctx is cancelled.
// Invalid input is reported and the menu is shown again.
// Numbers may be typed one per line or several on a line separated by spaces.
func (m *Menu) Run(ctx context.Context) error {
	m.in.start(ctx)
	for {
		if err := ctx.Err(); err != nil {
			m.logger.InfoContext(ctx, "Menu stopped", "reason", err)
			return err
		}

		m.printf(m.out, "%s", menuText)
		choice, err := m.in.readInt(ctx)
		if err != nil {
			if m.handleReadError(ctx, err) {
				continue
			}
			return m.stopReason(ctx, err)
		}
		m.logger.DebugContext(ctx, "Menu choice", "choice", choice)

		switch choice {
		case choiceViewProducts:
			m.printf(m.out, "%s", render.Products(m.service.Products(ctx)))
		case choiceAddToCart:
			err = m.addToCart(ctx)
		case choiceViewCart:
			m.printf(m.out, "%s", render.Cart(m.service.Cart(ctx).Items))
		case choiceCheckout:
			m.checkout(ctx)
		case choiceExit:
			m.printf(m.out, "%s\n", msgGoodbye)
			return nil
		default:
			m.printf(m.out, "%s\n", msgInvalidChoice)
		}
		if err != nil {
			return m.stopReason(ctx, err)
		}
	}
}

// addToCart prompts for a product ID and quantity and adds them to the cart.
// Only input stream failures are returned; user mistakes are reported and swallowed.
func (m *Menu) addToCart(ctx context.Context) error {
	m.printf(m.out, "Enter Product ID: ")
	productID, err := m.in.readInt(ctx)
	if err != nil {
		if m.handleReadError(ctx, err) {
			return nil
		}
		return err
	}
	m.printf(m.out, "Enter Quantity: ")
	quantity, err := m.in.readInt(ctx)
	if err != nil {
		if m.handleReadError(ctx, err) {
			return nil
		}
		return err
	}

	_, err = m.service.AddToCart(ctx, service.AddItemDto{ProductID: productID, Quantity: quantity})
	switch {
	case err == nil:
		m.printf(m.out, "%s\n", msgProductAdded)
	case errors.Is(err, shoperrors.ErrProductNotFound):
		m.printf(m.out, "%s\n", msgInvalidProductID)
	case errors.Is(err, shoperrors.ErrInvalidQuantity):
		m.printf(m.out, "Invalid quantity! Please enter a value between 1 and %d.\n", m.opts.MaxQuantity)
	default:
		m.logger.ErrorContext(ctx, "Error adding product to cart", "product_id", productID, "error", err)
		m.printf(m.errOut, "Failed to add product: %v\n", err)
	}
	return nil
}

// checkout shows the cart and its total, saves the order and reports the outcome.
func (m *Menu) checkout(ctx context.Context) {
	view := m.service.Cart(ctx)
	m.printf(m.out, "%s", render.Cart(view.Items))
	m.printf(m.out, "%s", render.TotalAmount(view.Total, m.opts.Currency))

	placed, err := m.service.Checkout(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "Checkout failed", "error", err)
		m.printf(m.errOut, "Failed to save order: %v\n", err)
		return
	}
	m.logger.DebugContext(ctx, "Checkout completed", "order_id", placed.ID)
	m.printf(m.out, "Order saved to '%s'.\n", m.opts.SummaryPath)
	m.printf(m.out, "%s\n", msgThankYou)
}

// handleReadError reports recoverable input errors and tells whether the menu can continue.
func (m *Menu) handleReadError(ctx context.Context, err error) bool {
	if errors.Is(err, shoperrors.ErrInvalidInput) {
		m.logger.DebugContext(ctx, "Discarded invalid input", "error", err)
		m.printf(m.errOut, "%s\n", msgInvalidInput)
		return true
	}
	return false
}

func (m *Menu) printf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		m.logger.Error("Error writing output", "error", err)
	}
}

// stopReason maps the error that ended the input to the result of Run. End of input is a normal exit.
func (m *Menu) stopReason(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	if ctx.Err() != nil {
		m.logger.InfoContext(ctx, "Menu stopped", "reason", err)
	}
	return err
}
