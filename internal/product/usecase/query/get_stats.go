package query

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/calc"
	"github.com/tair/shop-tracker/internal/product/domain"
)

// GetStatsQuery represents the query for catalog statistics
type GetStatsQuery struct {
	OwnerID uint
}

// CatalogStats represents catalog-wide statistics
type CatalogStats struct {
	TotalProducts       int64   `json:"total_products"`
	TotalStock          int64   `json:"total_stock"`
	LowStockProducts    int64   `json:"low_stock_products"`
	FavoriteProducts    int64   `json:"favorite_products"`
	AverageProfitMargin float64 `json:"average_profit_margin"`
}

// GetStatsHandler handles the catalog stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the catalog stats query
func (h *GetStatsHandler) Handle(q GetStatsQuery) (*CatalogStats, error) {
	products, err := h.repo.FindAll(q.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	stats := &CatalogStats{
		TotalProducts: int64(len(products)),
	}

	var marginSum float64
	for i := range products {
		p := &products[i]
		stats.TotalStock += int64(p.Stock)
		if p.IsLowStock() {
			stats.LowStockProducts++
		}
		if p.IsFavorite {
			stats.FavoriteProducts++
		}
		marginSum += calc.ProfitMargin(p.CostPrice, p.SellPrice)
	}

	if len(products) > 0 {
		stats.AverageProfitMargin = calc.RoundToTwo(marginSum / float64(len(products)))
	}

	return stats, nil
}
