package command

import (
	"github.com/tair/shop-tracker/internal/order/domain"
)

// ToggleStatusCommand represents the command to flip an order between paid
// and unpaid
type ToggleStatusCommand struct {
	OwnerID uint
	OrderID uint
}

// ToggleStatusHandler handles status toggling
type ToggleStatusHandler struct {
	orders domain.OrderRepository
}

// NewToggleStatusHandler creates a new toggle status handler
func NewToggleStatusHandler(orders domain.OrderRepository) *ToggleStatusHandler {
	return &ToggleStatusHandler{orders: orders}
}

// Handle flips the status and persists just that field, returning the new
// status
func (h *ToggleStatusHandler) Handle(cmd ToggleStatusCommand) (string, error) {
	order, err := h.orders.FindByID(cmd.OwnerID, cmd.OrderID)
	if err != nil {
		return "", domain.ErrOrderNotFound
	}

	status := domain.StatusPaid
	if order.IsPaid() {
		status = domain.StatusUnpaid
	}

	if err := h.orders.UpdateStatus(cmd.OwnerID, cmd.OrderID, status); err != nil {
		return "", err
	}

	return status, nil
}
