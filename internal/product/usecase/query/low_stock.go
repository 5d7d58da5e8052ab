package query

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/product/domain"
)

// LowStockQuery represents the query for products at or below the warning
// threshold
type LowStockQuery struct {
	OwnerID   uint
	Threshold int
}

// LowStockHandler handles the low stock listing
type LowStockHandler struct {
	repo domain.ProductRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.ProductRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle returns low-stock products, lowest first
func (h *LowStockHandler) Handle(q LowStockQuery) ([]domain.Product, error) {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = domain.LowStockThreshold
	}

	products, err := h.repo.FindLowStock(q.OwnerID, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return products, nil
}
