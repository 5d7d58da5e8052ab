// Package stats computes dashboard statistics and chart series from the
// current order set. All results are recomputed on every read; nothing here
// is persisted.
package stats

import (
	"time"

	"github.com/tair/shop-tracker/internal/calc"
	"github.com/tair/shop-tracker/internal/order/domain"
)

// Range selects the bucketing window for statistics and charts
type Range string

const (
	RangeDaily   Range = "daily"
	RangeMonthly Range = "monthly"
	RangeYearly  Range = "yearly"
	RangeCustom  Range = "custom"
)

// ValidRange reports whether r is a known range selector
func ValidRange(r Range) bool {
	switch r {
	case RangeDaily, RangeMonthly, RangeYearly, RangeCustom:
		return true
	}
	return false
}

// CustomRange is an inclusive calendar-day window for RangeCustom
type CustomRange struct {
	Start time.Time
	End   time.Time
}

// Summary holds the headline dashboard numbers for a window. The headline
// financial totals cover PAID orders only: unpaid revenue is unrealized and
// must not be reported as earned. Counts cover all orders, and the All
// variants include unpaid orders for reference.
type Summary struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	TotalProfit  float64 `json:"total_profit"`
	TotalTax     float64 `json:"total_tax"`

	OrderCount       int `json:"order_count"`
	PaidOrderCount   int `json:"paid_order_count"`
	UnpaidOrderCount int `json:"unpaid_order_count"`

	PaidRevenue   float64 `json:"paid_revenue"`
	PaidProfit    float64 `json:"paid_profit"`
	UnpaidRevenue float64 `json:"unpaid_revenue"`
	UnpaidProfit  float64 `json:"unpaid_profit"`

	AllRevenue float64 `json:"all_revenue"`
	AllCost    float64 `json:"all_cost"`
	AllProfit  float64 `json:"all_profit"`
	AllTax     float64 `json:"all_tax"`
}

// Aggregator computes summaries and chart series against an injectable clock
type Aggregator struct {
	now func() time.Time
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithClock fixes the aggregator's notion of "now", used by tests
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator creates an aggregator using the wall clock by default
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// inWindow reports whether an order date falls inside the selected window.
// Zero dates are excluded from every bucket rather than coerced to now.
func inWindow(d, now time.Time, r Range, custom *CustomRange) bool {
	if d.IsZero() {
		return false
	}
	switch r {
	case RangeDaily:
		return d.Year() == now.Year() && d.YearDay() == now.YearDay()
	case RangeMonthly:
		return d.Year() == now.Year() && d.Month() == now.Month()
	case RangeYearly:
		return d.Year() == now.Year()
	case RangeCustom:
		if custom == nil {
			return false
		}
		start := startOfDay(custom.Start)
		endExclusive := startOfDay(custom.End).AddDate(0, 0, 1)
		return !d.Before(start) && d.Before(endExclusive)
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComputeStats filters orders into the selected window and summarizes them
func (a *Aggregator) ComputeStats(orders []domain.Order, r Range, custom *CustomRange) Summary {
	now := a.now()
	var s Summary

	for i := range orders {
		order := &orders[i]
		if !inWindow(order.Date, now, r, custom) {
			continue
		}

		revenue := calc.Sanitize(order.TotalRevenue)
		cost := calc.Sanitize(order.TotalCost)
		tax := calc.Sanitize(order.TotalTax)
		profit := calc.Sanitize(order.Profit)

		s.OrderCount++
		s.AllRevenue += revenue
		s.AllCost += cost
		s.AllTax += tax
		s.AllProfit += profit

		if order.IsPaid() {
			s.PaidOrderCount++
			s.PaidRevenue += revenue
			s.PaidProfit += profit
			s.TotalRevenue += revenue
			s.TotalCost += cost
			s.TotalTax += tax
			s.TotalProfit += profit
		} else {
			s.UnpaidOrderCount++
			s.UnpaidRevenue += revenue
			s.UnpaidProfit += profit
		}
	}

	return s
}
