// Package engine - time-bucketed trend reports
package engine

import (
	"github.com/shopspring/decimal"

	"retail-analytics/core/report"
)

// MonthlyTrend returns per-month rows ordered ascending by calendar month.
// The sequence is sparse: only months with at least one transaction appear.
// Growth rates compare adjacent rows of the sparse sequence; the first row
// has no prior month and carries invalid (null) growth, as does any row
// whose predecessor sums to zero.
func (e *Engine) MonthlyTrend() []report.MonthRow {
	byMonth := make(map[string]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		m := t.Month()
		g, ok := byMonth[m]
		if !ok {
			g = newGroup()
			byMonth[m] = g
		}
		g.add(t)
	}

	rows := make([]report.MonthRow, 0, len(byMonth))
	for m, g := range byMonth {
		rows = append(rows, report.MonthRow{
			Month:           m,
			Revenue:         g.revenue,
			Transactions:    g.txs,
			AvgOrderValue:   g.avgOrderValue(),
			UniqueCustomers: int64(len(g.customers)),
			Quantity:        g.quantity,
		})
	}
	sortStable(rows, func(a, b report.MonthRow) bool { return a.Month < b.Month })

	// Growth is derived from exact sums and rounded only here.
	for i := 1; i < len(rows); i++ {
		prev, curr := &rows[i-1], &rows[i]
		if !prev.Revenue.IsZero() {
			curr.RevenueGrowth = decimal.NullDecimal{
				Decimal: curr.Revenue.Sub(prev.Revenue).Div(prev.Revenue).Mul(oneHundred).Round(1),
				Valid:   true,
			}
		}
		if prev.Transactions != 0 {
			curr.TransactionGrowth = decimal.NullDecimal{
				Decimal: percentOfCount(curr.Transactions-prev.Transactions, prev.Transactions).Round(1),
				Valid:   true,
			}
		}
	}
	return rows
}

// TopDays returns the n highest-revenue calendar days, revenue descending,
// ties broken by ascending date.
func (e *Engine) TopDays(n int) []report.DayRow {
	if n <= 0 {
		return nil
	}

	byDay := make(map[string]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		d := t.Day()
		g, ok := byDay[d]
		if !ok {
			g = newGroup()
			byDay[d] = g
		}
		g.add(t)
	}

	rows := make([]report.DayRow, 0, len(byDay))
	for d, g := range byDay {
		rows = append(rows, report.DayRow{Day: d, Transactions: g.txs, Revenue: g.revenue})
	}
	sortStable(rows, func(a, b report.DayRow) bool {
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Day < b.Day
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
