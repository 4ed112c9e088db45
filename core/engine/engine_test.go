package engine

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"retail-analytics/core/dataset"
	"retail-analytics/core/model"
	"retail-analytics/internal/errors"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func customer(id int64, segment model.Segment, state string) model.Customer {
	return model.Customer{
		ID:               id,
		Name:             "Customer " + string(rune('A'+id-1)),
		Segment:          segment,
		City:             "Springfield",
		State:            state,
		RegistrationDate: day(2023, time.January, 1),
	}
}

func product(t *testing.T, id int64, category, brand, price, cost string) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Product " + string(rune('A'+id-1)),
		Category: category,
		Brand:    brand,
		Price:    dec(t, price),
		Cost:     dec(t, cost),
	}
}

type txSpec struct {
	id, customer, productID int64
	date                    time.Time
	qty                     int64
	unit, total, discount   string
	payment                 model.PaymentMethod
	channel                 model.SalesChannel
}

func transaction(t *testing.T, s txSpec) model.Transaction {
	return model.Transaction{
		ID:             s.id,
		CustomerID:     s.customer,
		ProductID:      s.productID,
		Date:           s.date,
		Quantity:       s.qty,
		UnitPrice:      dec(t, s.unit),
		TotalAmount:    dec(t, s.total),
		DiscountAmount: dec(t, s.discount),
		PaymentMethod:  s.payment,
		SalesChannel:   s.channel,
	}
}

// fixture builds the reference scenario: 3 customers (Premium/Standard/
// Basic), 2 products, 4 transactions across two months, one of which
// references a nonexistent product id 99.
func fixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	customers := []model.Customer{
		customer(1, model.SegmentPremium, "NY"),
		customer(2, model.SegmentStandard, "CA"),
		customer(3, model.SegmentBasic, "NY"),
	}
	products := []model.Product{
		product(t, 1, "Electronics", "BrandA", "100.00", "50.00"),
		product(t, 2, "Books", "BrandB", "50.00", "20.00"),
	}
	transactions := []model.Transaction{
		transaction(t, txSpec{id: 1, customer: 1, productID: 1, date: day(2024, time.January, 10), qty: 1, unit: "100.00", total: "100.00", discount: "0", payment: model.PaymentCreditCard, channel: model.ChannelOnline}),
		transaction(t, txSpec{id: 2, customer: 2, productID: 2, date: day(2024, time.January, 20), qty: 2, unit: "50.00", total: "90.00", discount: "10.00", payment: model.PaymentCash, channel: model.ChannelInStore}),
		transaction(t, txSpec{id: 3, customer: 1, productID: 2, date: day(2024, time.February, 5), qty: 1, unit: "50.00", total: "50.00", discount: "0", payment: model.PaymentCreditCard, channel: model.ChannelOnline}),
		// Dangling product reference: joined to no product record.
		transaction(t, txSpec{id: 4, customer: 3, productID: 99, date: day(2024, time.February, 15), qty: 3, unit: "20.00", total: "60.00", discount: "0", payment: model.PaymentPayPal, channel: model.ChannelMobileApp}),
	}

	ds, issues := dataset.New(customers, products, transactions)
	if len(issues) != 0 {
		t.Fatalf("unexpected ingestion issues: %v", issues)
	}
	return ds
}

func TestTotalMetrics(t *testing.T) {
	e := New(fixture(t))
	m := e.TotalMetrics()

	if want := dec(t, "300.00"); !m.TotalRevenue.Equal(want) {
		t.Errorf("total revenue: want %s, got %s", want, m.TotalRevenue)
	}
	if m.Transactions != 4 {
		t.Errorf("transactions: want 4, got %d", m.Transactions)
	}
	if want := dec(t, "75.00"); !m.AvgOrderValue.Equal(want) {
		t.Errorf("avg order value: want %s, got %s", want, m.AvgOrderValue)
	}
	if m.UniqueCustomers != 3 {
		t.Errorf("unique customers: want 3, got %d", m.UniqueCustomers)
	}
	if m.ItemsSold != 7 {
		t.Errorf("items sold: want 7, got %d", m.ItemsSold)
	}
	if m.FirstSale != "2024-01-10" || m.LastSale != "2024-02-15" {
		t.Errorf("sale dates: got %s..%s", m.FirstSale, m.LastSale)
	}
}

func TestTotalMetricsEmpty(t *testing.T) {
	ds, _ := dataset.New(nil, nil, nil)
	m := New(ds).TotalMetrics()

	if !m.TotalRevenue.IsZero() || m.Transactions != 0 || !m.AvgOrderValue.IsZero() || m.UniqueCustomers != 0 {
		t.Errorf("empty dataset should yield a row of zeros, got %+v", m)
	}
	if m.FirstSale != "" || m.LastSale != "" {
		t.Errorf("empty dataset should have no sale dates, got %s..%s", m.FirstSale, m.LastSale)
	}
}

func TestMonthlyTrend(t *testing.T) {
	e := New(fixture(t))
	rows := e.MonthlyTrend()

	if len(rows) != 2 {
		t.Fatalf("want 2 months, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Month >= rows[i].Month {
			t.Errorf("months not strictly ascending: %s then %s", rows[i-1].Month, rows[i].Month)
		}
	}
	if rows[0].Month != "2024-01" || rows[1].Month != "2024-02" {
		t.Fatalf("unexpected months: %s, %s", rows[0].Month, rows[1].Month)
	}
	if rows[0].RevenueGrowth.Valid {
		t.Error("first month must have undefined revenue growth")
	}

	// Jan revenue 190, Feb revenue 110: (110-190)/190*100 = -42.1 (1dp)
	if !rows[1].RevenueGrowth.Valid {
		t.Fatal("second month must have a defined revenue growth")
	}
	if want := dec(t, "-42.1"); !rows[1].RevenueGrowth.Decimal.Equal(want) {
		t.Errorf("revenue growth: want %s, got %s", want, rows[1].RevenueGrowth.Decimal)
	}
	if rows[1].UniqueCustomers != 2 {
		t.Errorf("feb unique customers: want 2, got %d", rows[1].UniqueCustomers)
	}
}

func TestMonthlyTrendZeroRevenuePredecessor(t *testing.T) {
	customers := []model.Customer{customer(1, model.SegmentPremium, "NY")}
	products := []model.Product{product(t, 1, "Electronics", "BrandA", "10.00", "5.00")}
	transactions := []model.Transaction{
		transaction(t, txSpec{id: 1, customer: 1, productID: 1, date: day(2024, time.January, 1), qty: 1, unit: "0.00", total: "0.00", discount: "0", payment: model.PaymentCash, channel: model.ChannelOnline}),
		transaction(t, txSpec{id: 2, customer: 1, productID: 1, date: day(2024, time.February, 1), qty: 1, unit: "10.00", total: "10.00", discount: "0", payment: model.PaymentCash, channel: model.ChannelOnline}),
	}
	ds, _ := dataset.New(customers, products, transactions)
	rows := New(ds).MonthlyTrend()

	if len(rows) != 2 {
		t.Fatalf("want 2 months, got %d", len(rows))
	}
	if rows[1].RevenueGrowth.Valid {
		t.Error("growth after a zero-revenue month must be undefined, not a division error")
	}
	if !rows[1].TransactionGrowth.Valid {
		t.Error("transaction growth should still be defined")
	}
}

func TestSegmentAnalysis(t *testing.T) {
	e := New(fixture(t))
	rows := e.SegmentAnalysis()

	if len(rows) > 3 {
		t.Fatalf("segment rows exceed fixed enum size: %d", len(rows))
	}
	for _, r := range rows {
		if r.Customers == 0 {
			t.Errorf("segment %s has zero transacting customers", r.Segment)
		}
	}

	bySegment := make(map[string]int)
	for i, r := range rows {
		bySegment[r.Segment] = i
	}
	// Premium: customer 1, revenue 150 over 2 txs.
	p := rows[bySegment["Premium"]]
	if want := dec(t, "150.00"); !p.Revenue.Equal(want) {
		t.Errorf("premium revenue: want %s, got %s", want, p.Revenue)
	}
	if want := dec(t, "150.00"); !p.AvgLifetimeSpend.Equal(want) {
		t.Errorf("premium avg lifetime spend: want %s, got %s", want, p.AvgLifetimeSpend)
	}
	if want := dec(t, "2.00"); !p.AvgTransactions.Equal(want) {
		t.Errorf("premium avg transactions: want %s, got %s", want, p.AvgTransactions)
	}
	// Share denominator is joined revenue (300 here, all joins resolve).
	if want := dec(t, "50.0"); !p.RevenueShare.Equal(want) {
		t.Errorf("premium revenue share: want %s, got %s", want, p.RevenueShare)
	}
	// Ordered by avg lifetime spend descending.
	if rows[0].Segment != "Premium" {
		t.Errorf("expected Premium first, got %s", rows[0].Segment)
	}
}

func TestReferentialAsymmetry(t *testing.T) {
	e := New(fixture(t))

	// categoryAnalysis excludes the dangling-product transaction (id 4).
	var categoryRevenue = decimal.Zero
	for _, r := range e.CategoryAnalysis() {
		categoryRevenue = categoryRevenue.Add(r.Revenue)
	}
	if want := dec(t, "240.00"); !categoryRevenue.Equal(want) {
		t.Errorf("category revenue must exclude dangling product tx: want %s, got %s", want, categoryRevenue)
	}

	// channelAnalysis includes it.
	var channelTxs int64
	for _, r := range e.ChannelAnalysis() {
		channelTxs += r.Transactions
	}
	if channelTxs != 4 {
		t.Errorf("channel analysis must include dangling tx: want 4, got %d", channelTxs)
	}

	// Mobile App channel exists only through the dangling transaction.
	found := false
	for _, r := range e.ChannelAnalysis() {
		if r.Key == "Mobile App" {
			found = true
			if want := dec(t, "60.00"); !r.Revenue.Equal(want) {
				t.Errorf("mobile app revenue: want %s, got %s", want, r.Revenue)
			}
		}
	}
	if !found {
		t.Error("Mobile App channel row missing")
	}
}

func TestCategoryProfit(t *testing.T) {
	e := New(fixture(t))
	for _, r := range e.CategoryAnalysis() {
		switch r.Key {
		case "Electronics":
			// (100-50)*1
			if want := dec(t, "50.00"); !r.Profit.Equal(want) {
				t.Errorf("electronics profit: want %s, got %s", want, r.Profit)
			}
		case "Books":
			// (50-20)*2 + (50-20)*1
			if want := dec(t, "90.00"); !r.Profit.Equal(want) {
				t.Errorf("books profit: want %s, got %s", want, r.Profit)
			}
		default:
			t.Errorf("unexpected category %q", r.Key)
		}
	}
}

func TestChannelShares(t *testing.T) {
	e := New(fixture(t))
	for _, r := range e.ChannelAnalysis() {
		if r.Key == "Online" {
			if want := dec(t, "50.00"); !r.Share.Equal(want) {
				t.Errorf("online share: want %s, got %s", want, r.Share)
			}
		}
	}

	payments := e.PaymentAnalysis()
	if payments[0].Key != "Credit Card" {
		t.Errorf("payment rows must be ordered by count descending, got %s first", payments[0].Key)
	}
}

func TestDiscountImpactBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		discount string
		bucket   string
	}{
		{"zero is No Discount", "0", "No Discount"},
		{"exactly 10.00 is Low", "10.00", "Low"},
		{"10.01 is Medium", "10.01", "Medium"},
		{"exactly 25.00 is Medium", "25.00", "Medium"},
		{"25.01 is High", "25.01", "High"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := []model.Customer{customer(1, model.SegmentBasic, "TX")}
			products := []model.Product{product(t, 1, "Books", "BrandA", "100.00", "40.00")}
			transactions := []model.Transaction{
				transaction(t, txSpec{id: 1, customer: 1, productID: 1, date: day(2024, time.March, 1), qty: 1, unit: "100.00", total: "70.00", discount: tt.discount, payment: model.PaymentCash, channel: model.ChannelOnline}),
			}
			ds, _ := dataset.New(customers, products, transactions)
			rows := New(ds).DiscountImpact()

			if len(rows) != 1 {
				t.Fatalf("want exactly one bucket, got %d", len(rows))
			}
			if rows[0].Bucket != tt.bucket {
				t.Errorf("discount %s: want bucket %q, got %q", tt.discount, tt.bucket, rows[0].Bucket)
			}
			if rows[0].Transactions != 1 {
				t.Errorf("bucket count: want 1, got %d", rows[0].Transactions)
			}
		})
	}
}

func TestDiscountImpactOmitsEmptyBuckets(t *testing.T) {
	e := New(fixture(t))
	rows := e.DiscountImpact()

	// Fixture has discounts 0, 0, 0 and 10.00: No Discount and Low only.
	if len(rows) != 2 {
		t.Fatalf("want 2 buckets, got %d", len(rows))
	}
	if rows[0].Bucket != "No Discount" || rows[1].Bucket != "Low" {
		t.Errorf("unexpected bucket order: %s, %s", rows[0].Bucket, rows[1].Bucket)
	}
	if rows[0].Transactions != 3 || rows[1].Transactions != 1 {
		t.Errorf("unexpected bucket counts: %d, %d", rows[0].Transactions, rows[1].Transactions)
	}
}

func TestGeographicDistribution(t *testing.T) {
	e := New(fixture(t))
	rows := e.GeographicDistribution()

	// NY: customers 1 and 3, but customer 3's tx joins fine (customer
	// exists); revenue 100+50+60=210. CA: 90.
	if len(rows) != 2 {
		t.Fatalf("want 2 states, got %d", len(rows))
	}
	if rows[0].State != "NY" {
		t.Errorf("expected NY first by revenue, got %s", rows[0].State)
	}
	if want := dec(t, "210.00"); !rows[0].Revenue.Equal(want) {
		t.Errorf("NY revenue: want %s, got %s", want, rows[0].Revenue)
	}
	if rows[0].Customers != 2 {
		t.Errorf("NY distinct customers: want 2, got %d", rows[0].Customers)
	}
}

func TestRetentionCohorts(t *testing.T) {
	e := New(fixture(t))
	rows := e.RetentionCohorts()

	// Customer 1 active in 2 months; customers 2 and 3 in 1 month each.
	if len(rows) != 2 {
		t.Fatalf("want 2 cohorts, got %d", len(rows))
	}
	if rows[0].ActiveMonths != 1 || rows[0].Customers != 2 {
		t.Errorf("cohort 1: want 2 customers, got %+v", rows[0])
	}
	if rows[1].ActiveMonths != 2 || rows[1].Customers != 1 {
		t.Errorf("cohort 2: want 1 customer, got %+v", rows[1])
	}
	if want := dec(t, "66.67"); !rows[0].Percentage.Equal(want) {
		t.Errorf("cohort 1 percentage: want %s, got %s", want, rows[0].Percentage)
	}
}

func TestTopEntitiesTieBreak(t *testing.T) {
	customers := []model.Customer{
		customer(1, model.SegmentPremium, "NY"),
		customer(2, model.SegmentStandard, "CA"),
		customer(3, model.SegmentBasic, "TX"),
	}
	products := []model.Product{product(t, 1, "Books", "BrandA", "50.00", "20.00")}
	transactions := []model.Transaction{
		transaction(t, txSpec{id: 1, customer: 2, productID: 1, date: day(2024, time.April, 1), qty: 1, unit: "50.00", total: "50.00", discount: "0", payment: model.PaymentCash, channel: model.ChannelOnline}),
		transaction(t, txSpec{id: 2, customer: 1, productID: 1, date: day(2024, time.April, 2), qty: 1, unit: "50.00", total: "50.00", discount: "0", payment: model.PaymentCash, channel: model.ChannelOnline}),
		transaction(t, txSpec{id: 3, customer: 3, productID: 1, date: day(2024, time.April, 3), qty: 1, unit: "20.00", total: "20.00", discount: "0", payment: model.PaymentCash, channel: model.ChannelOnline}),
	}
	ds, _ := dataset.New(customers, products, transactions)
	e := New(ds)

	rows, err := e.TopEntities(TopCustomers, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	// Customers 1 and 2 tie at 50.00; the lower id wins.
	if rows[0].ID != 1 || rows[1].ID != 2 {
		t.Errorf("tie-break: want ids 1,2 first, got %d,%d", rows[0].ID, rows[1].ID)
	}
}

func TestTopEntitiesInvalidInput(t *testing.T) {
	e := New(fixture(t))

	if _, err := e.TopEntities(TopCustomers, 0); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("non-positive limit: want input error, got %v", err)
	}
	if _, err := e.TopEntities(TopKind("stores"), 5); !errors.IsType(err, errors.TypeNotSupported) {
		t.Errorf("unknown kind: want not supported error, got %v", err)
	}
}

func TestTopProductsExcludeDangling(t *testing.T) {
	e := New(fixture(t))
	rows, err := e.TopEntities(TopProducts, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rows {
		if r.ID == 99 {
			t.Error("dangling product id must not appear in rankings")
		}
	}
	if len(rows) != 2 {
		t.Errorf("want 2 ranked products, got %d", len(rows))
	}
}

func TestIdempotence(t *testing.T) {
	e := New(fixture(t))

	first, err := json.Marshal(e.Bundle(5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(e.Bundle(5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("bundle output must be byte-identical across runs on untouched input")
	}
}

func TestPriceRangeAnalysis(t *testing.T) {
	e := New(fixture(t))
	rows := e.PriceRangeAnalysis()

	// Product 1 at 100.00 is High, product 2 at 50.00 is Medium; the
	// dangling tx contributes to neither.
	if len(rows) != 2 {
		t.Fatalf("want 2 bands, got %d", len(rows))
	}
	var total int64
	for _, r := range rows {
		total += r.Sales
	}
	if total != 3 {
		t.Errorf("price bands must cover 3 joined transactions, got %d", total)
	}
}

func TestChannelPaymentCross(t *testing.T) {
	e := New(fixture(t))
	rows := e.ChannelPaymentCross()

	if len(rows) != 3 {
		t.Fatalf("want 3 channel/payment pairs, got %d", len(rows))
	}
	if rows[0].Channel != "Online" || rows[0].Method != "Credit Card" {
		t.Errorf("expected Online/Credit Card first by revenue, got %s/%s", rows[0].Channel, rows[0].Method)
	}
}
