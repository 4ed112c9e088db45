package dataset

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"retail-analytics/core/model"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return v
}

func validCustomer(id int64) model.Customer {
	return model.Customer{
		ID:               id,
		Name:             "Customer",
		Segment:          model.SegmentStandard,
		State:            "NY",
		RegistrationDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func validTransaction(t *testing.T, id int64) model.Transaction {
	return model.Transaction{
		ID:             id,
		CustomerID:     1,
		ProductID:      1,
		Date:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:       2,
		UnitPrice:      d(t, "10.00"),
		TotalAmount:    d(t, "20.00"),
		DiscountAmount: decimal.Zero,
		PaymentMethod:  model.PaymentCash,
		SalesChannel:   model.ChannelOnline,
	}
}

func TestNewSkipsInvalidRecords(t *testing.T) {
	bad := validCustomer(2)
	bad.Segment = "Platinum" // not in the fixed set

	ds, issues := New([]model.Customer{validCustomer(1), bad}, nil, nil)

	if len(ds.Customers) != 1 {
		t.Fatalf("want 1 kept customer, got %d", len(ds.Customers))
	}
	if len(issues) != 1 {
		t.Fatalf("want 1 issue, got %d", len(issues))
	}
	if issues[0].Kind != IssueInvalid || issues[0].Entity != "customer" || issues[0].ID != 2 {
		t.Errorf("issue should identify the offending record, got %+v", issues[0])
	}
}

func TestNewSkipsDuplicates(t *testing.T) {
	first := validCustomer(1)
	first.Name = "First"
	second := validCustomer(1)
	second.Name = "Second"

	ds, issues := New([]model.Customer{first, second}, nil, nil)

	if len(ds.Customers) != 1 {
		t.Fatalf("want 1 kept customer, got %d", len(ds.Customers))
	}
	c, ok := ds.Customer(1)
	if !ok || c.Name != "First" {
		t.Error("first occurrence must win on duplicate ids")
	}
	if len(issues) != 1 || issues[0].Kind != IssueDuplicate {
		t.Errorf("want one duplicate issue, got %v", issues)
	}
}

func TestNewFlagsInconsistentTotal(t *testing.T) {
	tx := validTransaction(t, 1)
	tx.TotalAmount = d(t, "25.00") // derived total is 20.00

	ds, issues := New(nil, nil, []model.Transaction{tx})

	if len(ds.Transactions) != 1 {
		t.Fatal("inconsistent totals must be kept, not dropped")
	}
	if !ds.Transactions[0].TotalAmount.Equal(d(t, "25.00")) {
		t.Error("stored total must never be corrected")
	}
	if len(issues) != 1 || issues[0].Kind != IssueQuality {
		t.Fatalf("want one quality warning, got %v", issues)
	}
}

func TestNewAllowsDanglingReferences(t *testing.T) {
	tx := validTransaction(t, 1)
	tx.CustomerID = 42 // no such customer loaded

	ds, issues := New(nil, nil, []model.Transaction{tx})

	if len(issues) != 0 {
		t.Errorf("dangling references are handled per report, not at ingestion: %v", issues)
	}
	if len(ds.Transactions) != 1 {
		t.Error("transaction with dangling reference must be kept")
	}
	if _, ok := ds.Customer(42); ok {
		t.Error("customer index must not invent records")
	}
}

func TestIndexPointersSurviveGrowth(t *testing.T) {
	customers := make([]model.Customer, 0, 64)
	for i := int64(1); i <= 64; i++ {
		customers = append(customers, validCustomer(i))
	}

	ds, _ := New(customers, nil, nil)
	c, ok := ds.Customer(1)
	if !ok || c.ID != 1 {
		t.Fatal("lookup of first customer failed")
	}
	c64, ok := ds.Customer(64)
	if !ok || c64.ID != 64 {
		t.Fatal("lookup of last customer failed")
	}
}
