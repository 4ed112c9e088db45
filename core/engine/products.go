// Package engine - product-keyed reports
//
// These rollups join transactions to products; a transaction referencing a
// nonexistent product is excluded from all of them.
package engine

import (
	"github.com/shopspring/decimal"

	"retail-analytics/core/model"
	"retail-analytics/core/report"
)

// CategoryAnalysis returns one row per product category referenced by at
// least one transaction, ordered by revenue descending, ties by category.
func (e *Engine) CategoryAnalysis() []report.GroupRow {
	return e.productRollup(func(p *model.Product) string { return p.Category })
}

// BrandAnalysis returns one row per product brand referenced by at least
// one transaction, ordered by revenue descending, ties by brand.
func (e *Engine) BrandAnalysis() []report.GroupRow {
	return e.productRollup(func(p *model.Product) string { return p.Brand })
}

func (e *Engine) productRollup(keyOf func(*model.Product) string) []report.GroupRow {
	byKey := make(map[string]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		p, ok := e.ds.Product(t.ProductID)
		if !ok {
			continue
		}
		key := keyOf(p)
		g, found := byKey[key]
		if !found {
			g = newGroup()
			byKey[key] = g
		}
		g.add(t)
		g.profit = g.profit.Add(p.Price.Sub(p.Cost).Mul(decimal.NewFromInt(t.Quantity)))
	}

	rows := make([]report.GroupRow, 0, len(byKey))
	for key, g := range byKey {
		rows = append(rows, report.GroupRow{
			Key:             key,
			Revenue:         g.revenue,
			Transactions:    g.txs,
			AvgSale:         g.avgOrderValue(),
			Quantity:        g.quantity,
			UniqueCustomers: int64(len(g.customers)),
			Profit:          g.profit.Round(2),
		})
	}
	sortStable(rows, func(a, b report.GroupRow) bool {
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Key < b.Key
	})
	return rows
}

// price band thresholds
var (
	priceBandLow    = decimal.NewFromInt(50)
	priceBandMedium = decimal.NewFromInt(100)
	priceBandHigh   = decimal.NewFromInt(200)
)

// priceBands in threshold order; used to break average-order-value ties
var priceBands = []string{"Low (< $50)", "Medium ($50-$100)", "High ($100-$200)", "Premium (> $200)"}

func priceBand(price decimal.Decimal) string {
	switch {
	case price.LessThan(priceBandLow):
		return priceBands[0]
	case price.LessThan(priceBandMedium):
		return priceBands[1]
	case price.LessThan(priceBandHigh):
		return priceBands[2]
	default:
		return priceBands[3]
	}
}

// PriceRangeAnalysis buckets sales by product list price band, ordered by
// average order value descending; empty bands are omitted.
func (e *Engine) PriceRangeAnalysis() []report.PriceRangeRow {
	byBand := make(map[string]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		p, ok := e.ds.Product(t.ProductID)
		if !ok {
			continue
		}
		band := priceBand(p.Price)
		g, found := byBand[band]
		if !found {
			g = newGroup()
			byBand[band] = g
		}
		g.add(t)
	}

	bandOrder := make(map[string]int, len(priceBands))
	for i, b := range priceBands {
		bandOrder[b] = i
	}

	rows := make([]report.PriceRangeRow, 0, len(byBand))
	for band, g := range byBand {
		rows = append(rows, report.PriceRangeRow{
			Range:         band,
			Sales:         g.txs,
			Revenue:       g.revenue,
			AvgOrderValue: g.avgOrderValue(),
		})
	}
	sortStable(rows, func(a, b report.PriceRangeRow) bool {
		if !a.AvgOrderValue.Equal(b.AvgOrderValue) {
			return a.AvgOrderValue.GreaterThan(b.AvgOrderValue)
		}
		return bandOrder[a.Range] < bandOrder[b.Range]
	})
	return rows
}
