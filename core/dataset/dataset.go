// Package dataset assembles validated, immutable snapshots of the entity
// collections consumed by the aggregation engine.
package dataset

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"retail-analytics/core/model"
	"retail-analytics/internal/logging"
)

// IssueKind classifies an ingestion issue
type IssueKind string

const (
	// IssueInvalid marks a record that failed validation and was skipped
	IssueInvalid IssueKind = "invalid"

	// IssueDuplicate marks a record whose id was already seen; skipped
	IssueDuplicate IssueKind = "duplicate"

	// IssueQuality marks a data-quality warning on a record that was kept
	IssueQuality IssueKind = "quality"
)

// Issue describes one problematic input record. Issues never abort
// ingestion; partial results are returned alongside them.
type Issue struct {
	// Kind classifies the issue
	Kind IssueKind `json:"kind"`

	// Entity names the collection the record belongs to
	Entity string `json:"entity"`

	// ID is the offending record identifier
	ID int64 `json:"id"`

	// Reason explains the issue
	Reason string `json:"reason"`
}

// String returns a human-readable description
func (i Issue) String() string {
	return fmt.Sprintf("%s %s %d: %s", i.Kind, i.Entity, i.ID, i.Reason)
}

// centTolerance is the largest stored-vs-derived total difference that is
// not reported as a quality warning.
var centTolerance = decimal.New(1, -2)

// Dataset is an immutable snapshot of the three entity collections with id
// indexes for the joins the engine performs. The engine never mutates it;
// concurrent readers need no synchronization.
type Dataset struct {
	Customers    []model.Customer
	Products     []model.Product
	Transactions []model.Transaction

	customerByID map[int64]*model.Customer
	productByID  map[int64]*model.Product
}

// New validates the input collections and builds a snapshot. Invalid and
// duplicate records are skipped and reported; quality warnings are reported
// on records that are kept. Dangling customer/product references are not
// ingestion issues; the engine handles them per report.
func New(customers []model.Customer, products []model.Product, transactions []model.Transaction) (*Dataset, []Issue) {
	// Slices are pre-sized so the id indexes can hold stable element pointers.
	ds := &Dataset{
		Customers:    make([]model.Customer, 0, len(customers)),
		Products:     make([]model.Product, 0, len(products)),
		Transactions: make([]model.Transaction, 0, len(transactions)),
		customerByID: make(map[int64]*model.Customer, len(customers)),
		productByID:  make(map[int64]*model.Product, len(products)),
	}
	var issues []Issue

	for _, c := range customers {
		if err := c.Validate(); err != nil {
			issues = append(issues, Issue{Kind: IssueInvalid, Entity: "customer", ID: c.ID, Reason: err.Error()})
			continue
		}
		if _, seen := ds.customerByID[c.ID]; seen {
			issues = append(issues, Issue{Kind: IssueDuplicate, Entity: "customer", ID: c.ID, Reason: "duplicate customer id"})
			continue
		}
		ds.Customers = append(ds.Customers, c)
		ds.customerByID[c.ID] = &ds.Customers[len(ds.Customers)-1]
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			issues = append(issues, Issue{Kind: IssueInvalid, Entity: "product", ID: p.ID, Reason: err.Error()})
			continue
		}
		if _, seen := ds.productByID[p.ID]; seen {
			issues = append(issues, Issue{Kind: IssueDuplicate, Entity: "product", ID: p.ID, Reason: "duplicate product id"})
			continue
		}
		ds.Products = append(ds.Products, p)
		ds.productByID[p.ID] = &ds.Products[len(ds.Products)-1]
	}

	seenTx := make(map[int64]struct{}, len(transactions))
	for _, t := range transactions {
		if err := t.Validate(); err != nil {
			issues = append(issues, Issue{Kind: IssueInvalid, Entity: "transaction", ID: t.ID, Reason: err.Error()})
			continue
		}
		if _, seen := seenTx[t.ID]; seen {
			issues = append(issues, Issue{Kind: IssueDuplicate, Entity: "transaction", ID: t.ID, Reason: "duplicate transaction id"})
			continue
		}
		seenTx[t.ID] = struct{}{}

		// The stored total is ground truth; a mismatch with the derived
		// total is surfaced but never corrected.
		derived := t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity)).Sub(t.DiscountAmount)
		if t.TotalAmount.Sub(derived).Abs().GreaterThan(centTolerance) {
			issues = append(issues, Issue{
				Kind:   IssueQuality,
				Entity: "transaction",
				ID:     t.ID,
				Reason: fmt.Sprintf("stored total %s differs from quantity*unit_price-discount %s", t.TotalAmount, derived),
			})
		}
		ds.Transactions = append(ds.Transactions, t)
	}

	if len(issues) > 0 {
		logging.Warn("dataset ingested with issues",
			zap.Int("issues", len(issues)),
			zap.Int("customers", len(ds.Customers)),
			zap.Int("products", len(ds.Products)),
			zap.Int("transactions", len(ds.Transactions)))
	}

	return ds, issues
}

// Customer resolves a customer by id
func (d *Dataset) Customer(id int64) (*model.Customer, bool) {
	c, ok := d.customerByID[id]
	return c, ok
}

// Product resolves a product by id
func (d *Dataset) Product(id int64) (*model.Product, bool) {
	p, ok := d.productByID[id]
	return p, ok
}
