package query

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/order/domain"
	"github.com/tair/shop-tracker/internal/stats"
)

// GetChartQuery represents the query for the dashboard chart series
type GetChartQuery struct {
	OwnerID uint
	Range   stats.Range
	Custom  *stats.CustomRange
}

// GetChartHandler handles the chart series query
type GetChartHandler struct {
	repo       domain.OrderRepository
	aggregator *stats.Aggregator
}

// NewGetChartHandler creates a new get chart handler
func NewGetChartHandler(repo domain.OrderRepository, aggregator *stats.Aggregator) *GetChartHandler {
	return &GetChartHandler{repo: repo, aggregator: aggregator}
}

// Handle recomputes the zero-filled bucket series from the owner's current
// order set
func (h *GetChartHandler) Handle(q GetChartQuery) ([]stats.Bucket, error) {
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

	return h.aggregator.ComputeChartSeries(orders, q.Range, q.Custom), nil
}
