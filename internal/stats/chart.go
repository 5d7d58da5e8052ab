package stats

import (
	"fmt"
	"time"

	"github.com/tair/shop-tracker/internal/calc"
	"github.com/tair/shop-tracker/internal/order/domain"
)

// Bucket is one time slot of a chart series. Revenue and Profit cover PAID
// orders only; Orders counts both, and the paid/unpaid sub-metrics carry the
// split.
type Bucket struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`
	Orders        int     `json:"orders"`
	PaidRevenue   float64 `json:"paid_revenue"`
	UnpaidRevenue float64 `json:"unpaid_revenue"`
	PaidOrders    int     `json:"paid_orders"`
	UnpaidOrders  int     `json:"unpaid_orders"`
}

// bucketKey maps an in-window order date to its bucket label
func bucketKey(d time.Time, r Range) string {
	switch r {
	case RangeDaily:
		return fmt.Sprintf("%02d:00", d.Hour())
	case RangeMonthly:
		return fmt.Sprintf("%02d", d.Day())
	case RangeYearly:
		return fmt.Sprintf("%02d", int(d.Month()))
	case RangeCustom:
		return d.Format("02 Jan")
	}
	return ""
}

// bucketDomain returns every bucket label of the window in chronological
// order, regardless of data presence
func bucketDomain(now time.Time, r Range, custom *CustomRange) []string {
	switch r {
	case RangeDaily:
		labels := make([]string, 24)
		for h := 0; h < 24; h++ {
			labels[h] = fmt.Sprintf("%02d:00", h)
		}
		return labels
	case RangeMonthly:
		days := daysInMonth(now)
		labels := make([]string, days)
		for d := 1; d <= days; d++ {
			labels[d-1] = fmt.Sprintf("%02d", d)
		}
		return labels
	case RangeYearly:
		labels := make([]string, 12)
		for m := 1; m <= 12; m++ {
			labels[m-1] = fmt.Sprintf("%02d", m)
		}
		return labels
	case RangeCustom:
		if custom == nil {
			return nil
		}
		var labels []string
		start := startOfDay(custom.Start)
		end := startOfDay(custom.End)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			labels = append(labels, d.Format("02 Jan"))
		}
		return labels
	}
	return nil
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// ComputeChartSeries groups in-window orders into an exhaustive, zero-filled
// bucket series for charting
func (a *Aggregator) ComputeChartSeries(orders []domain.Order, r Range, custom *CustomRange) []Bucket {
	now := a.now()

	grouped := make(map[string]*Bucket)
	for i := range orders {
		order := &orders[i]
		if !inWindow(order.Date, now, r, custom) {
			continue
		}

		key := bucketKey(order.Date, r)
		b, ok := grouped[key]
		if !ok {
			b = &Bucket{Date: key}
			grouped[key] = b
		}

		revenue := calc.Sanitize(order.TotalRevenue)
		profit := calc.Sanitize(order.Profit)

		b.Orders++
		if order.IsPaid() {
			b.Revenue += revenue
			b.Profit += profit
			b.PaidRevenue += revenue
			b.PaidOrders++
		} else {
			b.UnpaidRevenue += revenue
			b.UnpaidOrders++
		}
	}

	labels := bucketDomain(now, r, custom)
	series := make([]Bucket, 0, len(labels))
	for _, label := range labels {
		if b, ok := grouped[label]; ok {
			series = append(series, *b)
		} else {
			series = append(series, Bucket{Date: label})
		}
	}
	return series
}
