package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tair/shop-tracker/internal/order/domain"
	"github.com/tair/shop-tracker/internal/stats"
)

var now = time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() *stats.Aggregator {
	return stats.NewAggregator(stats.WithClock(func() time.Time { return now }))
}

func order(date time.Time, status string, revenue, cost, tax float64) domain.Order {
	return domain.Order{
		Date:         date,
		Status:       status,
		TotalRevenue: revenue,
		TotalCost:    cost,
		TotalTax:     tax,
		Profit:       revenue - cost,
	}
}

func TestValidRange(t *testing.T) {
	assert.True(t, stats.ValidRange(stats.RangeDaily))
	assert.True(t, stats.ValidRange(stats.RangeMonthly))
	assert.True(t, stats.ValidRange(stats.RangeYearly))
	assert.True(t, stats.ValidRange(stats.RangeCustom))
	assert.False(t, stats.ValidRange(stats.Range("weekly")))
	assert.False(t, stats.ValidRange(stats.Range("")))
}

func TestComputeStatsPaidOnlyHeadline(t *testing.T) {
	orders := []domain.Order{
		order(now.Add(-time.Hour), domain.StatusPaid, 100, 60, 18),
		order(now.Add(-2*time.Hour), domain.StatusUnpaid, 50, 30, 9),
	}

	s := fixedClock().ComputeStats(orders, stats.RangeDaily, nil)

	// Headline totals exclude unpaid revenue: it is not yet earned
	assert.InDelta(t, 100.0, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 60.0, s.TotalCost, 1e-9)
	assert.InDelta(t, 40.0, s.TotalProfit, 1e-9)
	assert.InDelta(t, 18.0, s.TotalTax, 1e-9)

	// Counts cover both statuses
	assert.Equal(t, 2, s.OrderCount)
	assert.Equal(t, 1, s.PaidOrderCount)
	assert.Equal(t, 1, s.UnpaidOrderCount)

	assert.InDelta(t, 50.0, s.UnpaidRevenue, 1e-9)
	assert.InDelta(t, 20.0, s.UnpaidProfit, 1e-9)
	assert.InDelta(t, 150.0, s.AllRevenue, 1e-9)
	assert.InDelta(t, 60.0, s.AllProfit, 1e-9)
}

func TestComputeStatsWindowFiltering(t *testing.T) {
	sameDay := time.Date(2026, time.March, 15, 2, 0, 0, 0, time.UTC)
	sameMonth := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	sameYear := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		order(sameDay, domain.StatusPaid, 10, 5, 0),
		order(sameMonth, domain.StatusPaid, 20, 10, 0),
		order(sameYear, domain.StatusPaid, 40, 20, 0),
		order(lastYear, domain.StatusPaid, 80, 40, 0),
	}

	agg := fixedClock()

	assert.Equal(t, 1, agg.ComputeStats(orders, stats.RangeDaily, nil).OrderCount)
	assert.Equal(t, 2, agg.ComputeStats(orders, stats.RangeMonthly, nil).OrderCount)
	assert.Equal(t, 3, agg.ComputeStats(orders, stats.RangeYearly, nil).OrderCount)
}

func TestComputeStatsCustomRangeInclusive(t *testing.T) {
	custom := &stats.CustomRange{
		Start: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
	}

	orders := []domain.Order{
		order(time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC), domain.StatusPaid, 1, 0, 0),
		order(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), domain.StatusPaid, 2, 0, 0),
		// End day counts in full, late evening included
		order(time.Date(2026, time.March, 12, 23, 30, 0, 0, time.UTC), domain.StatusPaid, 4, 0, 0),
		order(time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC), domain.StatusPaid, 8, 0, 0),
	}

	s := fixedClock().ComputeStats(orders, stats.RangeCustom, custom)

	assert.Equal(t, 2, s.OrderCount)
	assert.InDelta(t, 6.0, s.TotalRevenue, 1e-9)
}

func TestComputeStatsZeroDateExcluded(t *testing.T) {
	orders := []domain.Order{
		order(time.Time{}, domain.StatusPaid, 100, 50, 0),
	}

	s := fixedClock().ComputeStats(orders, stats.RangeYearly, nil)
	assert.Equal(t, 0, s.OrderCount)
}

func TestComputeStatsEmpty(t *testing.T) {
	s := fixedClock().ComputeStats(nil, stats.RangeDaily, nil)
	assert.Equal(t, stats.Summary{}, s)
}

func TestComputeStatsCustomWithoutRange(t *testing.T) {
	orders := []domain.Order{order(now, domain.StatusPaid, 10, 5, 0)}
	s := fixedClock().ComputeStats(orders, stats.RangeCustom, nil)
	assert.Equal(t, 0, s.OrderCount)
}
