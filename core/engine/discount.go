// Package engine - discount impact report
package engine

import (
	"github.com/shopspring/decimal"

	"retail-analytics/core/report"
)

// discount bucket thresholds; boundaries are inclusive on the upper side,
// so a discount of exactly 10.00 is Low and 10.01 is Medium.
var (
	discountLowMax    = decimal.NewFromInt(10)
	discountMediumMax = decimal.NewFromInt(25)
)

// discountBuckets in fixed threshold order
var discountBuckets = []string{"No Discount", "Low", "Medium", "High"}

func discountBucket(amount decimal.Decimal) string {
	switch {
	case amount.IsZero():
		return discountBuckets[0]
	case amount.LessThanOrEqual(discountLowMax):
		return discountBuckets[1]
	case amount.LessThanOrEqual(discountMediumMax):
		return discountBuckets[2]
	default:
		return discountBuckets[3]
	}
}

// DiscountImpact buckets transactions by discount amount. Rows appear in
// fixed threshold order; empty buckets are omitted.
func (e *Engine) DiscountImpact() []report.DiscountRow {
	type acc struct {
		group
		discount decimal.Decimal
	}
	byBucket := make(map[string]*acc)
	for i := range e.ds.Transactions {
		t := &e.ds.Transactions[i]
		bucket := discountBucket(t.DiscountAmount)
		a, found := byBucket[bucket]
		if !found {
			a = &acc{group: *newGroup()}
			byBucket[bucket] = a
		}
		a.add(t)
		a.discount = a.discount.Add(t.DiscountAmount)
	}

	rows := make([]report.DiscountRow, 0, len(byBucket))
	for _, bucket := range discountBuckets {
		a, found := byBucket[bucket]
		if !found {
			continue
		}
		rows = append(rows, report.DiscountRow{
			Bucket:        bucket,
			Transactions:  a.txs,
			AvgOrderValue: a.avgOrderValue(),
			AvgItems:      safeDiv(decimal.NewFromInt(a.quantity), a.txs).Round(2),
			Revenue:       a.revenue,
			AvgDiscount:   safeDiv(a.discount, a.txs).Round(2),
		})
	}
	return rows
}
