// Package insights derives narrative business insights from computed
// reports. Every number in an insight comes from actual report data; the
// package never synthesizes placeholder values.
package insights

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"retail-analytics/core/dataset"
	"retail-analytics/core/report"
)

// Insights holds categorized insight lines
type Insights struct {
	Sales       []string `json:"sales_insights"`
	Customer    []string `json:"customer_insights"`
	Product     []string `json:"product_insights"`
	Operational []string `json:"operational_insights"`

	// OrderValueStats are descriptive statistics over stored transaction
	// totals; display-only, computed in floating point.
	OrderValueStats *OrderValueStats `json:"order_value_stats,omitempty"`
}

// OrderValueStats summarizes the distribution of order values
type OrderValueStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// FromBundle builds insights from a computed report bundle and its source
// snapshot. Sections without enough data are simply left short.
func FromBundle(b *report.Bundle, ds *dataset.Dataset) *Insights {
	ins := &Insights{}

	ins.Sales = append(ins.Sales,
		fmt.Sprintf("Total revenue generated: $%s", b.Totals.TotalRevenue.StringFixed(2)),
		fmt.Sprintf("Average order value: $%s", b.Totals.AvgOrderValue.StringFixed(2)))

	if n := len(b.MonthlyTrend); n > 1 {
		latest := b.MonthlyTrend[n-1]
		if latest.RevenueGrowth.Valid {
			g := latest.RevenueGrowth.Decimal
			if g.IsNegative() {
				ins.Sales = append(ins.Sales, fmt.Sprintf("Revenue decline in latest month: %s%%", g.StringFixed(1)))
			} else {
				ins.Sales = append(ins.Sales, fmt.Sprintf("Revenue growth in latest month: +%s%%", g.StringFixed(1)))
			}
		}
	}

	if len(b.Segments) > 0 {
		top := b.Segments[0]
		ins.Customer = append(ins.Customer,
			fmt.Sprintf("Highest value segment: %s ($%s avg)", top.Segment, top.AvgLifetimeSpend.StringFixed(2)))
	}
	if len(b.Retention) > 0 {
		repeat := int64(0)
		total := int64(0)
		for _, r := range b.Retention {
			total += r.Customers
			if r.ActiveMonths > 1 {
				repeat += r.Customers
			}
		}
		if total > 0 {
			share := decimal.NewFromInt(repeat).Div(decimal.NewFromInt(total)).Mul(decimal.NewFromInt(100)).Round(1)
			ins.Customer = append(ins.Customer,
				fmt.Sprintf("Customers active in more than one month: %s%%", share.StringFixed(1)))
		}
	}

	if len(b.Categories) > 0 {
		top := b.Categories[0]
		ins.Product = append(ins.Product,
			fmt.Sprintf("Top performing category: %s ($%s revenue)", top.Key, top.Revenue.StringFixed(2)))
	}
	if len(b.Brands) > 0 {
		top := b.Brands[0]
		ins.Product = append(ins.Product,
			fmt.Sprintf("Top performing brand: %s ($%s revenue)", top.Key, top.Revenue.StringFixed(2)))
	}

	if len(b.Channels) > 0 {
		top := b.Channels[0]
		ins.Operational = append(ins.Operational,
			fmt.Sprintf("Most effective sales channel: %s (%s%% of transactions)", top.Key, top.Share.StringFixed(2)))
	}
	if len(b.Discounts) > 0 {
		for _, r := range b.Discounts {
			if r.Bucket == "No Discount" {
				ins.Operational = append(ins.Operational,
					fmt.Sprintf("Transactions without discount: %d", r.Transactions))
			}
		}
	}

	ins.OrderValueStats = orderValueStats(ds)
	return ins
}

// orderValueStats computes display-only descriptive statistics over stored
// transaction totals. Returns nil when there are no transactions.
func orderValueStats(ds *dataset.Dataset) *OrderValueStats {
	if ds == nil || len(ds.Transactions) == 0 {
		return nil
	}
	values := make([]float64, 0, len(ds.Transactions))
	for i := range ds.Transactions {
		f, _ := ds.Transactions[i].TotalAmount.Float64()
		values = append(values, f)
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	median, err := stats.Median(values)
	if err != nil {
		return nil
	}
	stddev, err := stats.StandardDeviation(values)
	if err != nil {
		return nil
	}
	return &OrderValueStats{Mean: mean, Median: median, StdDev: stddev}
}
