package query

import (
	"fmt"
	"sort"

	"github.com/tair/shop-tracker/internal/calc"
	"github.com/tair/shop-tracker/internal/product/domain"
)

// ListProductsQuery represents the query to list an owner's catalog
type ListProductsQuery struct {
	OwnerID uint
	Sort    string
}

// ListProductsHandler handles product listing
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle returns the catalog in the requested sort order: favorites first
// by default, ascending stock, or ascending profit margin
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(q.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	switch q.Sort {
	case domain.SortStockAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Stock < products[j].Stock
		})
	case domain.SortProfitMarginAsc:
		sort.SliceStable(products, func(i, j int) bool {
			mi := calc.ProfitMargin(products[i].CostPrice, products[i].SellPrice)
			mj := calc.ProfitMargin(products[j].CostPrice, products[j].SellPrice)
			return mi < mj
		})
	case domain.SortDefault, "":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].IsFavorite && !products[j].IsFavorite
		})
	default:
		return nil, fmt.Errorf("invalid sort: %s", q.Sort)
	}

	return products, nil
}
