package command

import (
	"github.com/tair/shop-tracker/internal/ledger"
	"github.com/tair/shop-tracker/internal/order/domain"
)

// DeleteOrderCommand represents the command to delete an order
type DeleteOrderCommand struct {
	OwnerID uint
	OrderID uint
}

// DeleteOrderHandler handles order deletion
type DeleteOrderHandler struct {
	orders domain.OrderRepository
	ledger *ledger.Ledger
}

// NewDeleteOrderHandler creates a new delete order handler
func NewDeleteOrderHandler(orders domain.OrderRepository, l *ledger.Ledger) *DeleteOrderHandler {
	return &DeleteOrderHandler{orders: orders, ledger: l}
}

// Handle deletes the order and restores stock for all its items. Deletion
// and restoration are one logical operation; a failed restoration after a
// successful delete is surfaced as a stock sync error.
func (h *DeleteOrderHandler) Handle(cmd DeleteOrderCommand) error {
	order, err := h.orders.FindByID(cmd.OwnerID, cmd.OrderID)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	if err := h.orders.Delete(cmd.OwnerID, cmd.OrderID); err != nil {
		return err
	}

	if err := h.ledger.ApplyDeletion(cmd.OwnerID, order.Items); err != nil {
		return &ledger.StockSyncError{Op: "delete", Err: err}
	}

	return nil
}
