package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"retail-analytics/core/dataset"
	"retail-analytics/core/engine"
	"retail-analytics/core/model"
)

func snapshot(t *testing.T) *dataset.Dataset {
	t.Helper()
	price := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", s, err)
		}
		return d
	}

	customers := []model.Customer{
		{ID: 1, Name: "Ann", Segment: model.SegmentPremium, State: "NY", RegistrationDate: time.Now()},
		{ID: 2, Name: "Bob", Segment: model.SegmentBasic, State: "CA", RegistrationDate: time.Now()},
	}
	products := []model.Product{
		{ID: 1, Name: "Widget", Category: "Electronics", Brand: "BrandA", Price: price("100.00"), Cost: price("60.00")},
	}
	transactions := []model.Transaction{
		{ID: 1, CustomerID: 1, ProductID: 1, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Quantity: 1,
			UnitPrice: price("100.00"), TotalAmount: price("100.00"), DiscountAmount: decimal.Zero,
			PaymentMethod: model.PaymentCreditCard, SalesChannel: model.ChannelOnline},
		{ID: 2, CustomerID: 1, ProductID: 1, Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Quantity: 1,
			UnitPrice: price("100.00"), TotalAmount: price("100.00"), DiscountAmount: decimal.Zero,
			PaymentMethod: model.PaymentCreditCard, SalesChannel: model.ChannelOnline},
		{ID: 3, CustomerID: 2, ProductID: 1, Date: time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC), Quantity: 1,
			UnitPrice: price("100.00"), TotalAmount: price("300.00"), DiscountAmount: decimal.Zero,
			PaymentMethod: model.PaymentCash, SalesChannel: model.ChannelInStore},
	}

	ds, _ := dataset.New(customers, products, transactions)
	return ds
}

func TestFromBundle(t *testing.T) {
	ds := snapshot(t)
	e := engine.New(ds)
	ins := FromBundle(e.Bundle(10), ds)

	if len(ins.Sales) == 0 {
		t.Fatal("expected sales insights")
	}
	if !strings.Contains(ins.Sales[0], "500.00") {
		t.Errorf("total revenue insight must use computed revenue, got %q", ins.Sales[0])
	}

	foundGrowth := false
	for _, s := range ins.Sales {
		if strings.Contains(s, "latest month") {
			foundGrowth = true
			// Jan 100 -> Feb 400: +300.0%
			if !strings.Contains(s, "+300.0%") {
				t.Errorf("growth insight must come from the trend report, got %q", s)
			}
		}
	}
	if !foundGrowth {
		t.Error("expected a latest-month growth insight")
	}

	if ins.OrderValueStats == nil {
		t.Fatal("expected order value statistics")
	}
	if ins.OrderValueStats.Median != 100 {
		t.Errorf("median order value: want 100, got %v", ins.OrderValueStats.Median)
	}
}

func TestFromBundleEmpty(t *testing.T) {
	ds, _ := dataset.New(nil, nil, nil)
	e := engine.New(ds)
	ins := FromBundle(e.Bundle(10), ds)

	if ins.OrderValueStats != nil {
		t.Error("no transactions should yield no statistics")
	}
	if len(ins.Sales) == 0 {
		t.Error("totals insight should still render with zeros")
	}
}
