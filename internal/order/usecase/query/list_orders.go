package query

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/order/domain"
)

// ListOrdersQuery represents the query to list an owner's orders
type ListOrdersQuery struct {
	OwnerID uint
}

// ListOrdersHandler handles order listing
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle returns the owner's orders, newest first
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]domain.Order, error) {
	orders, err := h.repo.FindAll(q.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
