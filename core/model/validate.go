// Package model - entity validation
package model

import (
	"retail-analytics/internal/errors"
)

// Validate checks the customer record for required fields and enum membership
func (c *Customer) Validate() error {
	if c.ID <= 0 {
		return errors.Input("customer id must be positive")
	}
	if c.Name == "" {
		return errors.Input("customer name is required")
	}
	if !c.Segment.Valid() {
		return errors.Newf(errors.TypeInput, "invalid customer segment: %q", c.Segment)
	}
	return nil
}

// Validate checks the product record for required fields and value ranges
func (p *Product) Validate() error {
	if p.ID <= 0 {
		return errors.Input("product id must be positive")
	}
	if p.Name == "" {
		return errors.Input("product name is required")
	}
	if p.Price.IsNegative() {
		return errors.Input("product price must be non-negative")
	}
	if p.Cost.IsNegative() {
		return errors.Input("product cost must be non-negative")
	}
	return nil
}

// Validate checks the transaction record for required fields, value ranges
// and enum membership. TotalAmount consistency with
// Quantity*UnitPrice-DiscountAmount is deliberately not enforced; the stored
// total is ground truth and mismatches surface as ingestion quality warnings.
func (t *Transaction) Validate() error {
	if t.ID <= 0 {
		return errors.Input("transaction id must be positive")
	}
	if t.CustomerID <= 0 {
		return errors.Input("transaction customer id must be positive")
	}
	if t.ProductID <= 0 {
		return errors.Input("transaction product id must be positive")
	}
	if t.Date.IsZero() {
		return errors.Input("transaction date is required")
	}
	if t.Quantity <= 0 {
		return errors.Input("transaction quantity must be positive")
	}
	if t.DiscountAmount.IsNegative() {
		return errors.Input("transaction discount must be non-negative")
	}
	if !t.PaymentMethod.Valid() {
		return errors.Newf(errors.TypeInput, "invalid payment method: %q", t.PaymentMethod)
	}
	if !t.SalesChannel.Valid() {
		return errors.Newf(errors.TypeInput, "invalid sales channel: %q", t.SalesChannel)
	}
	return nil
}
