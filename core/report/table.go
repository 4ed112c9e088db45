// Package report - generic tabular form
package report

import (
	"github.com/shopspring/decimal"
)

// Table is a renderer-agnostic report: named columns and ordered rows.
// Cell values are strings, integers, decimals, or nil for undefined values.
type Table struct {
	// Title names the report
	Title string `json:"title"`

	// Columns are the column headers in display order
	Columns []string `json:"columns"`

	// Rows are the data rows, aligned with Columns
	Rows [][]any `json:"rows"`
}

func nullCell(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal
}

// TotalsTable converts the total metrics row
func TotalsTable(m TotalMetrics) Table {
	return Table{
		Title:   "Total Metrics",
		Columns: []string{"total_revenue", "total_transactions", "avg_order_value", "unique_customers", "total_items_sold", "first_sale_date", "last_sale_date"},
		Rows: [][]any{{
			m.TotalRevenue, m.Transactions, m.AvgOrderValue, m.UniqueCustomers, m.ItemsSold, m.FirstSale, m.LastSale,
		}},
	}
}

// MonthlyTrendTable converts the monthly trend rows
func MonthlyTrendTable(rows []MonthRow) Table {
	t := Table{
		Title:   "Monthly Trend",
		Columns: []string{"month", "revenue", "transactions", "avg_order_value", "unique_customers", "quantity", "revenue_growth", "transaction_growth"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Month, r.Revenue, r.Transactions, r.AvgOrderValue, r.UniqueCustomers, r.Quantity,
			nullCell(r.RevenueGrowth), nullCell(r.TransactionGrowth),
		})
	}
	return t
}

// SegmentsTable converts the segment analysis rows
func SegmentsTable(rows []SegmentRow) Table {
	t := Table{
		Title:   "Segment Analysis",
		Columns: []string{"customer_segment", "customer_count", "avg_customer_value", "avg_transactions", "avg_order_value", "total_revenue", "revenue_share"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Segment, r.Customers, r.AvgLifetimeSpend, r.AvgTransactions, r.AvgOrderValue, r.Revenue, r.RevenueShare,
		})
	}
	return t
}

// GroupTable converts category or brand rollup rows
func GroupTable(title, keyColumn string, rows []GroupRow) Table {
	t := Table{
		Title:   title,
		Columns: []string{keyColumn, "total_revenue", "total_sales", "avg_sale_amount", "total_quantity", "unique_customers", "total_profit"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Key, r.Revenue, r.Transactions, r.AvgSale, r.Quantity, r.UniqueCustomers, r.Profit,
		})
	}
	return t
}

// ChannelTable converts channel or payment rollup rows
func ChannelTable(title, keyColumn string, rows []ChannelRow) Table {
	t := Table{
		Title:   title,
		Columns: []string{keyColumn, "transaction_count", "total_revenue", "avg_order_value", "unique_customers", "percentage"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Key, r.Transactions, r.Revenue, r.AvgOrderValue, r.UniqueCustomers, r.Share,
		})
	}
	return t
}

// DiscountTable converts the discount impact rows
func DiscountTable(rows []DiscountRow) Table {
	t := Table{
		Title:   "Discount Impact",
		Columns: []string{"discount_category", "transaction_count", "avg_order_value", "avg_items_per_order", "total_revenue", "avg_discount"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Bucket, r.Transactions, r.AvgOrderValue, r.AvgItems, r.Revenue, r.AvgDiscount,
		})
	}
	return t
}

// GeographyTable converts the geographic distribution rows
func GeographyTable(rows []StateRow) Table {
	t := Table{
		Title:   "Geographic Distribution",
		Columns: []string{"state", "customer_count", "transaction_count", "total_revenue", "avg_order_value"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.State, r.Customers, r.Transactions, r.Revenue, r.AvgOrderValue})
	}
	return t
}

// RetentionTable converts the retention cohort rows
func RetentionTable(rows []CohortRow) Table {
	t := Table{
		Title:   "Retention Cohorts",
		Columns: []string{"active_months", "customer_count", "percentage"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.ActiveMonths, r.Customers, r.Percentage})
	}
	return t
}

// TopTable converts top-N ranking rows
func TopTable(title, detailColumn string, rows []TopRow) Table {
	t := Table{
		Title:   title,
		Columns: []string{"id", "name", detailColumn, "total_revenue", "transactions", "quantity"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.ID, r.Name, r.Detail, r.Revenue, r.Transactions, r.Quantity})
	}
	return t
}

// TopDaysTable converts the top performing day rows
func TopDaysTable(rows []DayRow) Table {
	t := Table{
		Title:   "Top Performing Days",
		Columns: []string{"date", "transactions", "revenue"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Day, r.Transactions, r.Revenue})
	}
	return t
}

// PriceRangeTable converts the price range rows
func PriceRangeTable(rows []PriceRangeRow) Table {
	t := Table{
		Title:   "Price Range Analysis",
		Columns: []string{"price_range", "sales_count", "total_revenue", "avg_order_value"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Range, r.Sales, r.Revenue, r.AvgOrderValue})
	}
	return t
}

// CrossTable converts the channel x payment rows
func CrossTable(rows []CrossRow) Table {
	t := Table{
		Title:   "Channel Payment Cross",
		Columns: []string{"sales_channel", "payment_method", "transaction_count", "total_revenue", "avg_order_value"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Channel, r.Method, r.Transactions, r.Revenue, r.AvgOrderValue})
	}
	return t
}

// Tables returns every report in the bundle in a fixed display order
func (b *Bundle) Tables() []Table {
	return []Table{
		TotalsTable(b.Totals),
		MonthlyTrendTable(b.MonthlyTrend),
		SegmentsTable(b.Segments),
		GroupTable("Category Analysis", "category", b.Categories),
		GroupTable("Brand Analysis", "brand", b.Brands),
		ChannelTable("Channel Analysis", "sales_channel", b.Channels),
		ChannelTable("Payment Analysis", "payment_method", b.Payments),
		DiscountTable(b.Discounts),
		GeographyTable(b.Geography),
		RetentionTable(b.Retention),
		TopTable("Top Customers", "customer_segment", b.TopCustomers),
		TopTable("Top Products", "category", b.TopProducts),
		TopDaysTable(b.TopDays),
		PriceRangeTable(b.PriceRanges),
		CrossTable(b.ChannelPayment),
	}
}
