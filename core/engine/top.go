// Package engine - top-N revenue rankings
package engine

import (
	"retail-analytics/core/report"
	"retail-analytics/internal/errors"
)

// TopKind selects the entity a ranking is computed over
type TopKind string

const (
	// TopCustomers ranks customers by revenue contributed
	TopCustomers TopKind = "customers"

	// TopProducts ranks products by revenue contributed
	TopProducts TopKind = "products"
)

// TopEntities returns the top n entities of the given kind ordered by total
// revenue descending, ties broken by ascending entity id. Rankings carry
// joined entity fields, so transactions with dangling references are
// excluded. n must be positive.
func (e *Engine) TopEntities(kind TopKind, n int) ([]report.TopRow, error) {
	if n <= 0 {
		return nil, errors.Input("top entity limit must be positive")
	}
	switch kind {
	case TopCustomers:
		return e.topCustomers(n), nil
	case TopProducts:
		return e.topProducts(n), nil
	default:
		return nil, errors.Newf(errors.TypeNotSupported, "unknown top entity kind: %q", kind)
	}
}

func (e *Engine) topCustomers(n int) []report.TopRow {
	byID := make(map[int64]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		if _, ok := e.ds.Customer(t.CustomerID); !ok {
			continue
		}
		g, found := byID[t.CustomerID]
		if !found {
			g = newGroup()
			byID[t.CustomerID] = g
		}
		g.add(t)
	}

	rows := make([]report.TopRow, 0, len(byID))
	for id, g := range byID {
		c, _ := e.ds.Customer(id)
		rows = append(rows, report.TopRow{
			ID:           id,
			Name:         c.Name,
			Detail:       c.Segment.String(),
			Revenue:      g.revenue,
			Transactions: g.txs,
			Quantity:     g.quantity,
		})
	}
	return rankTop(rows, n)
}

func (e *Engine) topProducts(n int) []report.TopRow {
	byID := make(map[int64]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		if _, ok := e.ds.Product(t.ProductID); !ok {
			continue
		}
		g, found := byID[t.ProductID]
		if !found {
			g = newGroup()
			byID[t.ProductID] = g
		}
		g.add(t)
	}

	rows := make([]report.TopRow, 0, len(byID))
	for id, g := range byID {
		p, _ := e.ds.Product(id)
		rows = append(rows, report.TopRow{
			ID:           id,
			Name:         p.Name,
			Detail:       p.Category,
			Revenue:      g.revenue,
			Transactions: g.txs,
			Quantity:     g.quantity,
		})
	}
	return rankTop(rows, n)
}

// rankTop orders by revenue descending with the ascending-id tie-break the
// rankings guarantee, then truncates to n.
func rankTop(rows []report.TopRow, n int) []report.TopRow {
	sortStable(rows, func(a, b report.TopRow) bool {
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ID < b.ID
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
