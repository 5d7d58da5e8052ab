// Package calc holds the pure business calculation helpers shared by the
// catalog, order lifecycle and dashboard components.
package calc

import (
	"fmt"
	"math"

	"github.com/tair/shop-tracker/internal/order/domain"
)

// DefaultLowStockThreshold mirrors the dashboard's stock warning level
const DefaultLowStockThreshold = 10

// Sanitize coerces NaN and infinities to 0 so malformed persisted data
// never propagates into displayed totals
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ProfitMargin returns the margin percentage over cost, 0 when cost is not positive
func ProfitMargin(costPrice, sellPrice float64) float64 {
	if costPrice <= 0 {
		return 0
	}
	return ((sellPrice - costPrice) / costPrice) * 100
}

// IsLowStock reports whether stock is at or below the threshold
func IsLowStock(stock, threshold int) bool {
	return stock <= threshold
}

// FormatCurrency renders an amount with the dashboard currency symbol
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("₺%.2f", Sanitize(amount))
}

// Percentage returns value as a percentage of total, 0 when total is 0
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// RoundToTwo rounds to two decimal places
func RoundToTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemTotals recomputes an item's derived amounts from its quantity and
// unit prices
func ItemTotals(costPrice, sellPrice, taxRate float64, quantity int) (cost, revenue, tax float64) {
	qty := float64(quantity)
	revenue = Sanitize(sellPrice) * qty
	cost = Sanitize(costPrice) * qty
	tax = revenue * Sanitize(taxRate) / 100
	return cost, revenue, tax
}

// Totals aggregates order line items
type Totals struct {
	Revenue float64
	Cost    float64
	Tax     float64
	Profit  float64
}

// OrderTotals sums revenue, cost and tax across items. Profit is revenue
// minus cost; tax is tracked separately and not subtracted.
func OrderTotals(items []domain.OrderItem) Totals {
	var t Totals
	for _, item := range items {
		cost, revenue, tax := ItemTotals(item.CostPrice, item.SellPrice, item.TaxRate, item.Quantity)
		t.Revenue += revenue
		t.Cost += cost
		t.Tax += tax
	}
	t.Profit = t.Revenue - t.Cost
	return t
}
