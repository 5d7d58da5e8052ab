package query

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/order/domain"
	"github.com/tair/shop-tracker/internal/stats"
)

// GetStatsQuery represents the query for dashboard summary statistics
type GetStatsQuery struct {
	OwnerID uint
	Range   stats.Range
	Custom  *stats.CustomRange
}

// GetStatsHandler handles the dashboard stats query
type GetStatsHandler struct {
	repo       domain.OrderRepository
	aggregator *stats.Aggregator
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.OrderRepository, aggregator *stats.Aggregator) *GetStatsHandler {
	return &GetStatsHandler{repo: repo, aggregator: aggregator}
}

// Handle recomputes the summary from the owner's current order set
func (h *GetStatsHandler) Handle(q GetStatsQuery) (*stats.Summary, error) {
	if !stats.ValidRange(q.Range) {
		return nil, fmt.Errorf("invalid range: %s", q.Range)
	}
	if q.Range == stats.RangeCustom && q.Custom == nil {
		return nil, fmt.Errorf("custom range requires start and end dates")
	}

	orders, err := h.repo.FindAll(q.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	summary := h.aggregator.ComputeStats(orders, q.Range, q.Custom)
	return &summary, nil
}
