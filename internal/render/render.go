// Package render formats catalog and cart state as fixed-width text tables.
// Functions here are pure; writing the text to a terminal or file is up to the caller.
package render

import (
	"fmt"
	"strings"

	"github.com/abgdnv/shopcart/internal/cart"
	"github.com/abgdnv/shopcart/internal/catalog"
	"github.com/shopspring/decimal"
)

// EmptyCartMessage is shown instead of a table when the cart has no items.
const EmptyCartMessage = "Your cart is empty!"

// Column widths of the product and cart tables.
const (
	idWidth          = 5
	nameWidth        = 20
	descriptionWidth = 30
	priceWidth       = 10
	quantityWidth    = 10
	totalWidth       = 15

	productsRuleWidth = idWidth + nameWidth + descriptionWidth + priceWidth
	cartRuleWidth     = nameWidth + quantityWidth + totalWidth
)

// Amount formats a money value with exactly two decimal places.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ProductRow renders a single catalog row.
func ProductRow(p catalog.Product) string {
	return fmt.Sprintf("%*d%*s%*s%*s",
		idWidth, p.ID(),
		nameWidth, p.Name(),
		descriptionWidth, p.Description(),
		priceWidth, Amount(p.Price()))
}

// Products renders the catalog as a table with a header row.
func Products(products []catalog.Product) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%*s%*s%*s%*s\n",
		idWidth, "ID",
		nameWidth, "Name",
		descriptionWidth, "Description",
		priceWidth, "Price"))
	b.WriteString(strings.Repeat("-", productsRuleWidth))
	b.WriteString("\n")
	for _, p := range products {
		b.WriteString(ProductRow(p))
		b.WriteString("\n")
	}
	return b.String()
}

// ItemRow renders a single cart line.
func ItemRow(item cart.Item) string {
	return fmt.Sprintf("%*s%*d%*s",
		nameWidth, item.Name(),
		quantityWidth, item.Quantity(),
		totalWidth, Amount(item.TotalPrice()))
}

// Cart renders the cart lines, or EmptyCartMessage when there are none.
func Cart(items []cart.Item) string {
	if len(items) == 0 {
		return EmptyCartMessage + "\n"
	}
	return itemsTable(items)
}

// OrderSummary renders the text persisted at checkout.
// The last line is always the grand total followed by the currency.
func OrderSummary(items []cart.Item, total decimal.Decimal, currency string) string {
	var b strings.Builder
	b.WriteString(itemsTable(items))
	b.WriteString(fmt.Sprintf("\nTotal: %s %s\n", Amount(total), currency))
	return b.String()
}

// TotalAmount renders the checkout total line shown on screen.
func TotalAmount(total decimal.Decimal, currency string) string {
	return fmt.Sprintf("Total Amount: %s %s\n", Amount(total), currency)
}

func itemsTable(items []cart.Item) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%*s%*s%*s\n",
		nameWidth, "Product Name",
		quantityWidth, "Quantity",
		totalWidth, "Total Price"))
	b.WriteString(strings.Repeat("-", cartRuleWidth))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(ItemRow(item))
		b.WriteString("\n")
	}
	return b.String()
}
