package command

import (
	"time"

	"github.com/tair/shop-tracker/internal/calc"
	"github.com/tair/shop-tracker/internal/ledger"
	"github.com/tair/shop-tracker/internal/order/domain"
)

// UpdateOrderCommand represents the command to save an edited order
type UpdateOrderCommand struct {
	OwnerID uint
	OrderID uint
	Items   []domain.OrderItem
	Date    time.Time
	Status  string
}

// UpdateOrderHandler handles order edits
type UpdateOrderHandler struct {
	orders domain.OrderRepository
	ledger *ledger.Ledger
}

// NewUpdateOrderHandler creates a new update order handler
func NewUpdateOrderHandler(orders domain.OrderRepository, l *ledger.Ledger) *UpdateOrderHandler {
	return &UpdateOrderHandler{orders: orders, ledger: l}
}

// Handle recomputes the order body from the edited draft and reconciles
// stock with the per-product delta between the original and edited items.
// Items with quantity <= 0 are treated as removed. If any product would go
// negative the whole edit aborts with no stock change and no write.
func (h *UpdateOrderHandler) Handle(cmd UpdateOrderCommand) (*domain.Order, error) {
	original, err := h.orders.FindByID(cmd.OwnerID, cmd.OrderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	items := make(domain.OrderItems, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			continue
		}
		// Never trust stale totals: recompute from quantity and unit prices
		cost, revenue, tax := calc.ItemTotals(item.CostPrice, item.SellPrice, item.TaxRate, item.Quantity)
		item.TotalCost = cost
		item.TotalRevenue = revenue
		item.TotalTax = tax
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	status := cmd.Status
	if status == "" {
		status = original.Status
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	deltas := ledger.EditDeltas(original.Items, items)
	if err := h.ledger.ValidateEdit(cmd.OwnerID, deltas); err != nil {
		return nil, err
	}

	date := cmd.Date
	if date.IsZero() {
		date = original.Date
	}

	totals := calc.OrderTotals(items)
	original.Date = date
	original.Items = items
	original.TotalRevenue = totals.Revenue
	original.TotalCost = totals.Cost
	original.TotalTax = totals.Tax
	original.Profit = totals.Profit
	original.Status = status

	if err := h.orders.Update(original); err != nil {
		return nil, err
	}

	if err := h.ledger.ApplyDeltas(cmd.OwnerID, deltas); err != nil {
		return original, &ledger.StockSyncError{Op: "update", Err: err}
	}

	return original, nil
}
