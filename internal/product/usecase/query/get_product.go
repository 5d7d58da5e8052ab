package query

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/product/domain"
)

// GetProductQuery represents the query to fetch one product
type GetProductQuery struct {
	OwnerID uint
	ID      uint
}

// GetProductHandler handles single product lookups
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	product, err := h.repo.FindByID(q.OwnerID, q.ID)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return product, nil
}
