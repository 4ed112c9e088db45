// Package engine implements the analytics aggregation engine: pure,
// deterministic report computations over an immutable dataset snapshot.
//
// Every operation is a total function of the snapshot: it never mutates
// input, never panics on empty or inconsistent data, sums money with exact
// decimal arithmetic, and rounds only at output. Methods may be called
// concurrently without synchronization.
package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"retail-analytics/core/dataset"
	"retail-analytics/core/model"
	"retail-analytics/core/report"
)

var oneHundred = decimal.NewFromInt(100)

// Engine computes reports over one dataset snapshot
type Engine struct {
	ds *dataset.Dataset
}

// New creates an engine over a snapshot
func New(ds *dataset.Dataset) *Engine {
	return &Engine{ds: ds}
}

// Dataset returns the underlying snapshot
func (e *Engine) Dataset() *dataset.Dataset {
	return e.ds
}

// Bundle computes every report from the snapshot. topN limits the top
// customer/product/day rankings; non-positive values fall back to 10.
func (e *Engine) Bundle(topN int) *report.Bundle {
	if topN <= 0 {
		topN = 10
	}
	return &report.Bundle{
		Totals:         e.TotalMetrics(),
		MonthlyTrend:   e.MonthlyTrend(),
		Segments:       e.SegmentAnalysis(),
		Categories:     e.CategoryAnalysis(),
		Brands:         e.BrandAnalysis(),
		Channels:       e.ChannelAnalysis(),
		Payments:       e.PaymentAnalysis(),
		Discounts:      e.DiscountImpact(),
		Geography:      e.GeographicDistribution(),
		Retention:      e.RetentionCohorts(),
		TopCustomers:   e.topCustomers(topN),
		TopProducts:    e.topProducts(topN),
		TopDays:        e.TopDays(topN),
		PriceRanges:    e.PriceRangeAnalysis(),
		ChannelPayment: e.ChannelPaymentCross(),
	}
}

// group accumulates the measures shared by most rollups
type group struct {
	revenue   decimal.Decimal
	txs       int64
	quantity  int64
	customers map[int64]struct{}
	profit    decimal.Decimal
}

func newGroup() *group {
	return &group{customers: make(map[int64]struct{})}
}

func (g *group) add(t *model.Transaction) {
	g.revenue = g.revenue.Add(t.TotalAmount)
	g.txs++
	g.quantity += t.Quantity
	g.customers[t.CustomerID] = struct{}{}
}

// avgOrderValue is revenue/txs rounded to 2dp, zero for an empty group
func (g *group) avgOrderValue() decimal.Decimal {
	return safeDiv(g.revenue, g.txs).Round(2)
}

// safeDiv divides by an integer count, returning zero for a zero count
func safeDiv(sum decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(count))
}

// percentOf returns part/whole*100, zero when whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(oneHundred)
}

// percentOfCount returns part/whole*100 over integer counts
func percentOfCount(part, whole int64) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Div(decimal.NewFromInt(whole)).Mul(oneHundred)
}

// sortStable is the house sorting primitive: stable sort with explicit less
func sortStable[T any](s []T, less func(a, b T) bool) {
	sort.SliceStable(s, func(i, j int) bool { return less(s[i], s[j]) })
}
