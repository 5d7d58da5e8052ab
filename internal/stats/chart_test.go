package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-tracker/internal/order/domain"
	"github.com/tair/shop-tracker/internal/stats"
)

func TestChartSeriesDailyZeroFilled(t *testing.T) {
	orders := []domain.Order{
		order(time.Date(2026, time.March, 15, 9, 15, 0, 0, time.UTC), domain.StatusPaid, 100, 40, 0),
		order(time.Date(2026, time.March, 15, 9, 45, 0, 0, time.UTC), domain.StatusPaid, 50, 20, 0),
		order(time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC), domain.StatusUnpaid, 30, 10, 0),
	}

	series := fixedClock().ComputeChartSeries(orders, stats.RangeDaily, nil)

	// Always exactly 24 hourly slots, empty hours present with zeros
	require.Len(t, series, 24)
	assert.Equal(t, "00:00", series[0].Date)
	assert.Equal(t, "23:00", series[23].Date)

	nine := series[9]
	assert.Equal(t, "09:00", nine.Date)
	assert.Equal(t, 2, nine.Orders)
	assert.InDelta(t, 150.0, nine.Revenue, 1e-9)
	assert.InDelta(t, 90.0, nine.Profit, 1e-9)

	// Unpaid orders count but contribute no revenue to the headline series
	eighteen := series[18]
	assert.Equal(t, 1, eighteen.Orders)
	assert.InDelta(t, 0.0, eighteen.Revenue, 1e-9)
	assert.InDelta(t, 30.0, eighteen.UnpaidRevenue, 1e-9)
	assert.Equal(t, 1, eighteen.UnpaidOrders)

	// Empty slot stays zero
	assert.Equal(t, stats.Bucket{Date: "12:00"}, series[12])
}

func TestChartSeriesMonthlyMatchesCalendar(t *testing.T) {
	// March has 31 days
	series := fixedClock().ComputeChartSeries(nil, stats.RangeMonthly, nil)
	require.Len(t, series, 31)
	assert.Equal(t, "01", series[0].Date)
	assert.Equal(t, "31", series[30].Date)
}

func TestChartSeriesMonthlyFebruary(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	agg := stats.NewAggregator(stats.WithClock(func() time.Time { return feb }))

	series := agg.ComputeChartSeries(nil, stats.RangeMonthly, nil)
	require.Len(t, series, 28)
}

func TestChartSeriesYearlyTwelveMonths(t *testing.T) {
	orders := []domain.Order{
		order(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), domain.StatusPaid, 10, 5, 0),
		order(time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC), domain.StatusPaid, 20, 5, 0),
	}

	series := fixedClock().ComputeChartSeries(orders, stats.RangeYearly, nil)

	require.Len(t, series, 12)
	assert.InDelta(t, 10.0, series[0].Revenue, 1e-9)
	assert.InDelta(t, 20.0, series[11].Revenue, 1e-9)
	assert.InDelta(t, 0.0, series[6].Revenue, 1e-9)
}

func TestChartSeriesCustomOneBucketPerDay(t *testing.T) {
	custom := &stats.CustomRange{
		Start: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
	}

	orders := []domain.Order{
		order(time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC), domain.StatusPaid, 100, 40, 0),
	}

	series := fixedClock().ComputeChartSeries(orders, stats.RangeCustom, custom)

	require.Len(t, series, 5)
	assert.Equal(t, "10 Mar", series[0].Date)
	assert.Equal(t, "14 Mar", series[4].Date)
	assert.InDelta(t, 100.0, series[1].Revenue, 1e-9)
}

func TestChartSeriesCustomSingleDay(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	custom := &stats.CustomRange{Start: day, End: day}

	series := fixedClock().ComputeChartSeries(nil, stats.RangeCustom, custom)
	require.Len(t, series, 1)
	assert.Equal(t, "10 Mar", series[0].Date)
}
