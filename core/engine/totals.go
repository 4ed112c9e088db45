// Package engine - overall sales metrics
package engine

import (
	"time"

	"retail-analytics/core/report"
)

// TotalMetrics returns the single-row overall summary. An empty transaction
// collection yields a row of zeros, never an error.
func (e *Engine) TotalMetrics() report.TotalMetrics {
	g := newGroup()
	var first, last time.Time

	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		g.add(t)
		if first.IsZero() || t.Date.Before(first) {
			first = t.Date
		}
		if last.IsZero() || t.Date.After(last) {
			last = t.Date
		}
	}

	m := report.TotalMetrics{
		TotalRevenue:    g.revenue,
		Transactions:    g.txs,
		AvgOrderValue:   g.avgOrderValue(),
		UniqueCustomers: int64(len(g.customers)),
		ItemsSold:       g.quantity,
	}
	if !first.IsZero() {
		m.FirstSale = first.Format("2006-01-02")
		m.LastSale = last.Format("2006-01-02")
	}
	return m
}
