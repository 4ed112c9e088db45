// Package engine - customer-keyed reports
//
// Segment and geographic rollups join transactions to customers; a
// transaction referencing a nonexistent customer is excluded from them.
// Retention works on customer ids taken directly from transactions, so
// dangling references still participate there.
package engine

import (
	"github.com/shopspring/decimal"

	"retail-analytics/core/report"
)

// SegmentAnalysis returns one row per customer segment with at least one
// transacting customer, ordered by average lifetime spend descending, ties
// broken by segment name. Revenue shares are rounded independently per row
// and are not normalized to sum to 100.
func (e *Engine) SegmentAnalysis() []report.SegmentRow {
	bySegment := make(map[string]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		c, ok := e.ds.Customer(t.CustomerID)
		if !ok {
			continue
		}
		seg := c.Segment.String()
		g, found := bySegment[seg]
		if !found {
			g = newGroup()
			bySegment[seg] = g
		}
		g.add(t)
	}

	// The share denominator is the joined revenue total, so the asymmetric
	// exclusion of dangling transactions stays internal to this report.
	joinedRevenue := decimal.Zero
	for _, g := range bySegment {
		joinedRevenue = joinedRevenue.Add(g.revenue)
	}

	rows := make([]report.SegmentRow, 0, len(bySegment))
	for seg, g := range bySegment {
		customers := int64(len(g.customers))
		rows = append(rows, report.SegmentRow{
			Segment:          seg,
			Customers:        customers,
			AvgLifetimeSpend: safeDiv(g.revenue, customers).Round(2),
			AvgTransactions:  safeDiv(decimal.NewFromInt(g.txs), customers).Round(2),
			AvgOrderValue:    g.avgOrderValue(),
			Revenue:          g.revenue,
			RevenueShare:     percentOf(g.revenue, joinedRevenue).Round(1),
		})
	}
	sortStable(rows, func(a, b report.SegmentRow) bool {
		if !a.AvgLifetimeSpend.Equal(b.AvgLifetimeSpend) {
			return a.AvgLifetimeSpend.GreaterThan(b.AvgLifetimeSpend)
		}
		return a.Segment < b.Segment
	})
	return rows
}

// GeographicDistribution returns one row per customer state with
// transactions, ordered by revenue descending, ties broken by state.
func (e *Engine) GeographicDistribution() []report.StateRow {
	byState := make(map[string]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		c, ok := e.ds.Customer(t.CustomerID)
		if !ok {
			continue
		}
		g, found := byState[c.State]
		if !found {
			g = newGroup()
			byState[c.State] = g
		}
		g.add(t)
	}

	rows := make([]report.StateRow, 0, len(byState))
	for state, g := range byState {
		rows = append(rows, report.StateRow{
			State:         state,
			Customers:     int64(len(g.customers)),
			Transactions:  g.txs,
			Revenue:       g.revenue,
			AvgOrderValue: g.avgOrderValue(),
		})
	}
	sortStable(rows, func(a, b report.StateRow) bool {
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.State < b.State
	})
	return rows
}

// RetentionCohorts groups transacting customers by their count of distinct
// active calendar months. Customer ids come straight from transactions, so
// ids without a matching customer record still count. Rows are ordered by
// active-month count ascending.
func (e *Engine) RetentionCohorts() []report.CohortRow {
	monthsByCustomer := make(map[int64]map[string]struct{})
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		months, ok := monthsByCustomer[t.CustomerID]
		if !ok {
			months = make(map[string]struct{})
			monthsByCustomer[t.CustomerID] = months
		}
		months[t.Month()] = struct{}{}
	}

	total := int64(len(monthsByCustomer))
	byCount := make(map[int]int64)
	for _, months := range monthsByCustomer {
		byCount[len(months)]++
	}

	rows := make([]report.CohortRow, 0, len(byCount))
	for active, customers := range byCount {
		rows = append(rows, report.CohortRow{
			ActiveMonths: active,
			Customers:    customers,
			Percentage:   percentOfCount(customers, total).Round(2),
		})
	}
	sortStable(rows, func(a, b report.CohortRow) bool { return a.ActiveMonths < b.ActiveMonths })
	return rows
}
