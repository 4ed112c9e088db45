// Package report defines the typed output rows of the aggregation engine
// and a generic tabular form for rendering and export.
package report

import (
	"github.com/shopspring/decimal"
)

// TotalMetrics is the single-row overall sales summary
type TotalMetrics struct {
	// TotalRevenue is the exact sum of stored transaction totals
	TotalRevenue decimal.Decimal `json:"total_revenue"`

	// Transactions is the transaction count
	Transactions int64 `json:"total_transactions"`

	// AvgOrderValue is revenue/transactions, 0 when empty
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`

	// UniqueCustomers counts distinct customer ids in transactions
	UniqueCustomers int64 `json:"unique_customers"`

	// ItemsSold is the total quantity sold
	ItemsSold int64 `json:"total_items_sold"`

	// FirstSale is the earliest transaction date (YYYY-MM-DD), empty when no data
	FirstSale string `json:"first_sale_date,omitempty"`

	// LastSale is the latest transaction date (YYYY-MM-DD), empty when no data
	LastSale string `json:"last_sale_date,omitempty"`
}

// MonthRow is one calendar month of the sales trend
type MonthRow struct {
	// Month is the calendar month, "YYYY-MM"
	Month string `json:"month"`

	// Revenue is the month revenue sum
	Revenue decimal.Decimal `json:"revenue"`

	// Transactions is the month transaction count
	Transactions int64 `json:"transactions"`

	// AvgOrderValue is revenue/transactions for the month
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`

	// UniqueCustomers counts distinct customers in the month
	UniqueCustomers int64 `json:"unique_customers"`

	// Quantity is the item quantity sum for the month
	Quantity int64 `json:"quantity"`

	// RevenueGrowth is month-over-month revenue growth percent (1dp);
	// invalid on the first row, which has no prior month
	RevenueGrowth decimal.NullDecimal `json:"revenue_growth"`

	// TransactionGrowth is month-over-month transaction growth percent (1dp)
	TransactionGrowth decimal.NullDecimal `json:"transaction_growth"`
}

// SegmentRow is one customer segment rollup
type SegmentRow struct {
	// Segment is the customer tier
	Segment string `json:"customer_segment"`

	// Customers counts transacting customers in the segment
	Customers int64 `json:"customer_count"`

	// AvgLifetimeSpend is mean total spend per customer
	AvgLifetimeSpend decimal.Decimal `json:"avg_customer_value"`

	// AvgTransactions is mean transaction count per customer
	AvgTransactions decimal.Decimal `json:"avg_transactions"`

	// AvgOrderValue is segment revenue / segment transactions
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`

	// Revenue is the segment revenue sum
	Revenue decimal.Decimal `json:"total_revenue"`

	// RevenueShare is the segment share of total revenue, percent (1dp).
	// Shares are rounded independently and need not sum to 100.
	RevenueShare decimal.Decimal `json:"revenue_share"`
}

// GroupRow is one product category or brand rollup
type GroupRow struct {
	// Key is the category or brand name
	Key string `json:"key"`

	// Revenue is the group revenue sum
	Revenue decimal.Decimal `json:"total_revenue"`

	// Transactions is the group transaction count
	Transactions int64 `json:"total_sales"`

	// AvgSale is revenue/transactions for the group
	AvgSale decimal.Decimal `json:"avg_sale_amount"`

	// Quantity is the item quantity sum
	Quantity int64 `json:"total_quantity"`

	// UniqueCustomers counts distinct customers
	UniqueCustomers int64 `json:"unique_customers"`

	// Profit is sum((price-cost)*quantity) over matching transactions, 2dp
	Profit decimal.Decimal `json:"total_profit"`
}

// ChannelRow is one sales channel or payment method rollup
type ChannelRow struct {
	// Key is the channel or payment method name
	Key string `json:"key"`

	// Transactions is the transaction count
	Transactions int64 `json:"transaction_count"`

	// Revenue is the revenue sum
	Revenue decimal.Decimal `json:"total_revenue"`

	// AvgOrderValue is revenue/transactions
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`

	// UniqueCustomers counts distinct customers
	UniqueCustomers int64 `json:"unique_customers"`

	// Share is the percentage of all transactions, 2dp
	Share decimal.Decimal `json:"percentage"`
}

// DiscountRow is one discount bucket rollup
type DiscountRow struct {
	// Bucket is the discount bucket label
	Bucket string `json:"discount_category"`

	// Transactions is the bucket transaction count
	Transactions int64 `json:"transaction_count"`

	// AvgOrderValue is mean stored total per transaction
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`

	// AvgItems is mean item quantity per transaction, 2dp
	AvgItems decimal.Decimal `json:"avg_items_per_order"`

	// Revenue is the bucket revenue sum
	Revenue decimal.Decimal `json:"total_revenue"`

	// AvgDiscount is mean discount amount, 2dp
	AvgDiscount decimal.Decimal `json:"avg_discount"`
}

// StateRow is one customer state rollup
type StateRow struct {
	// State is the customer state code
	State string `json:"state"`

	// Customers counts distinct customers in the state
	Customers int64 `json:"customer_count"`

	// Transactions is the state transaction count
	Transactions int64 `json:"transaction_count"`

	// Revenue is the state revenue sum
	Revenue decimal.Decimal `json:"total_revenue"`

	// AvgOrderValue is revenue/transactions
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// CohortRow groups customers sharing a count of distinct active months
type CohortRow struct {
	// ActiveMonths is the distinct calendar month count
	ActiveMonths int `json:"active_months"`

	// Customers is the number of customers with that count
	Customers int64 `json:"customer_count"`

	// Percentage is the share of all transacting customers, 2dp
	Percentage decimal.Decimal `json:"percentage"`
}

// TopRow is one entry of a top-N ranking by revenue
type TopRow struct {
	// ID is the entity identifier
	ID int64 `json:"id"`

	// Name is the entity display name
	Name string `json:"name"`

	// Detail is the segment (customers) or category/brand (products)
	Detail string `json:"detail"`

	// Revenue is the total revenue contributed
	Revenue decimal.Decimal `json:"total_revenue"`

	// Transactions is the transaction count
	Transactions int64 `json:"transactions"`

	// Quantity is the item quantity sum
	Quantity int64 `json:"quantity"`
}

// DayRow is one calendar day of revenue
type DayRow struct {
	// Day is the calendar day, "YYYY-MM-DD"
	Day string `json:"date"`

	// Transactions is the day transaction count
	Transactions int64 `json:"transactions"`

	// Revenue is the day revenue sum
	Revenue decimal.Decimal `json:"revenue"`
}

// PriceRangeRow is one product price band rollup
type PriceRangeRow struct {
	// Range is the price band label
	Range string `json:"price_range"`

	// Sales is the transaction count in the band
	Sales int64 `json:"sales_count"`

	// Revenue is the band revenue sum
	Revenue decimal.Decimal `json:"total_revenue"`

	// AvgOrderValue is revenue/sales
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// CrossRow is one channel x payment method cell
type CrossRow struct {
	// Channel is the sales channel
	Channel string `json:"sales_channel"`

	// Method is the payment method
	Method string `json:"payment_method"`

	// Transactions is the cell transaction count
	Transactions int64 `json:"transaction_count"`

	// Revenue is the cell revenue sum
	Revenue decimal.Decimal `json:"total_revenue"`

	// AvgOrderValue is revenue/transactions
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// Bundle aggregates every report computed from one snapshot
type Bundle struct {
	Totals         TotalMetrics    `json:"total_metrics"`
	MonthlyTrend   []MonthRow      `json:"monthly_trend"`
	Segments       []SegmentRow    `json:"segment_analysis"`
	Categories     []GroupRow      `json:"category_analysis"`
	Brands         []GroupRow      `json:"brand_analysis"`
	Channels       []ChannelRow    `json:"channel_analysis"`
	Payments       []ChannelRow    `json:"payment_analysis"`
	Discounts      []DiscountRow   `json:"discount_impact"`
	Geography      []StateRow      `json:"geographic_distribution"`
	Retention      []CohortRow     `json:"retention_cohorts"`
	TopCustomers   []TopRow        `json:"top_customers"`
	TopProducts    []TopRow        `json:"top_products"`
	TopDays        []DayRow        `json:"top_days"`
	PriceRanges    []PriceRangeRow `json:"price_range_analysis"`
	ChannelPayment []CrossRow      `json:"channel_payment_cross"`
}
