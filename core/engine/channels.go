// Package engine - channel and payment reports
//
// No customer or product join is needed here, so transactions with dangling
// entity references are still counted.
package engine

import (
	"retail-analytics/core/report"
)

// ChannelAnalysis returns one row per sales channel, ordered by revenue
// descending, ties broken by channel name. Share is the percentage of all
// transactions, rounded to 2dp.
func (e *Engine) ChannelAnalysis() []report.ChannelRow {
	rows := e.channelRollup(func(i int) string { return e.ds.Transactions[i].SalesChannel.String() })
	sortStable(rows, func(a, b report.ChannelRow) bool {
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Key < b.Key
	})
	return rows
}

// PaymentAnalysis returns one row per payment method, ordered by
// transaction count descending, ties broken by method name.
func (e *Engine) PaymentAnalysis() []report.ChannelRow {
	rows := e.channelRollup(func(i int) string { return e.ds.Transactions[i].PaymentMethod.String() })
	sortStable(rows, func(a, b report.ChannelRow) bool {
		if a.Transactions != b.Transactions {
			return a.Transactions > b.Transactions
		}
		return a.Key < b.Key
	})
	return rows
}

func (e *Engine) channelRollup(keyOf func(i int) string) []report.ChannelRow {
	byKey := make(map[string]*group)
	for i := range e.ds.Transactions {
		key := keyOf(i)
		g, found := byKey[key]
		if !found {
			g = newGroup()
			byKey[key] = g
		}
		g.add(&e.ds.Transactions[i])
	}

	total := int64(len(e.ds.Transactions))
	rows := make([]report.ChannelRow, 0, len(byKey))
	for key, g := range byKey {
		rows = append(rows, report.ChannelRow{
			Key:             key,
			Transactions:    g.txs,
			Revenue:         g.revenue,
			AvgOrderValue:   g.avgOrderValue(),
			UniqueCustomers: int64(len(g.customers)),
			Share:           percentOfCount(g.txs, total).Round(2),
		})
	}
	return rows
}

// ChannelPaymentCross returns one row per channel x payment method pair,
// ordered by revenue descending, ties broken by channel then method.
func (e *Engine) ChannelPaymentCross() []report.CrossRow {
	type pair struct{ channel, method string }
	byPair := make(map[pair]*group)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		k := pair{t.SalesChannel.String(), t.PaymentMethod.String()}
		g, found := byPair[k]
		if !found {
			g = newGroup()
			byPair[k] = g
		}
		g.add(t)
	}

	rows := make([]report.CrossRow, 0, len(byPair))
	for k, g := range byPair {
		rows = append(rows, report.CrossRow{
			Channel:       k.channel,
			Method:        k.method,
			Transactions:  g.txs,
			Revenue:       g.revenue,
			AvgOrderValue: g.avgOrderValue(),
		})
	}
	sortStable(rows, func(a, b report.CrossRow) bool {
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		return a.Method < b.Method
	})
	return rows
}
