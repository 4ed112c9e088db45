// Package model defines the entity types consumed by the aggregation engine.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Segment is a fixed customer tier classification
type Segment string

const (
	SegmentPremium  Segment = "Premium"
	SegmentStandard Segment = "Standard"
	SegmentBasic    Segment = "Basic"
)

// Segments lists all valid segments in display order
var Segments = []Segment{SegmentPremium, SegmentStandard, SegmentBasic}

// Valid reports whether the segment is a member of the fixed set
func (s Segment) Valid() bool {
	switch s {
	case SegmentPremium, SegmentStandard, SegmentBasic:
		return true
	}
	return false
}

// String returns the string representation
func (s Segment) String() string {
	return string(s)
}

// PaymentMethod is the payment instrument of a transaction
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentCash       PaymentMethod = "Cash"
	PaymentPayPal     PaymentMethod = "PayPal"
)

// Valid reports whether the payment method is a member of the fixed set
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentPayPal:
		return true
	}
	return false
}

// String returns the string representation
func (p PaymentMethod) String() string {
	return string(p)
}

// SalesChannel is the channel a transaction occurred through
type SalesChannel string

const (
	ChannelOnline    SalesChannel = "Online"
	ChannelInStore   SalesChannel = "In-Store"
	ChannelMobileApp SalesChannel = "Mobile App"
)

// Valid reports whether the channel is a member of the fixed set
func (c SalesChannel) Valid() bool {
	switch c {
	case ChannelOnline, ChannelInStore, ChannelMobileApp:
		return true
	}
	return false
}

// String returns the string representation
func (c SalesChannel) String() string {
	return string(c)
}

// Customer is an immutable customer record
type Customer struct {
	// ID uniquely identifies the customer
	ID int64 `json:"customer_id"`

	// Name is the customer display name
	Name string `json:"customer_name"`

	// Segment is the customer tier
	Segment Segment `json:"customer_segment"`

	// City is the customer city
	City string `json:"city"`

	// State is the customer state code
	State string `json:"state"`

	// RegistrationDate is when the customer registered
	RegistrationDate time.Time `json:"registration_date"`
}

// Product is an immutable product record
type Product struct {
	// ID uniquely identifies the product
	ID int64 `json:"product_id"`

	// Name is the product display name
	Name string `json:"product_name"`

	// Category is the product category
	Category string `json:"category"`

	// Subcategory is the optional product subcategory
	Subcategory string `json:"subcategory,omitempty"`

	// Brand is the product brand
	Brand string `json:"brand"`

	// Price is the unit list price (non-negative, 2dp)
	Price decimal.Decimal `json:"price"`

	// Cost is the unit cost (non-negative, 2dp)
	Cost decimal.Decimal `json:"cost"`
}

// Transaction is an immutable sales transaction record.
// TotalAmount is ground truth even when it disagrees with
// Quantity*UnitPrice-DiscountAmount; the engine never recomputes it.
type Transaction struct {
	// ID uniquely identifies the transaction
	ID int64 `json:"transaction_id"`

	// CustomerID references the purchasing customer
	CustomerID int64 `json:"customer_id"`

	// ProductID references the purchased product
	ProductID int64 `json:"product_id"`

	// Date is when the transaction occurred
	Date time.Time `json:"transaction_date"`

	// Quantity is the number of items sold (positive)
	Quantity int64 `json:"quantity"`

	// UnitPrice is the per-item sale price
	UnitPrice decimal.Decimal `json:"unit_price"`

	// TotalAmount is the stored transaction total
	TotalAmount decimal.Decimal `json:"total_amount"`

	// DiscountAmount is the discount applied (non-negative)
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	// PaymentMethod is the payment instrument
	PaymentMethod PaymentMethod `json:"payment_method"`

	// SalesChannel is the sales channel
	SalesChannel SalesChannel `json:"sales_channel"`
}

// Month returns the transaction calendar month as "YYYY-MM"
func (t *Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// Day returns the transaction calendar day as "YYYY-MM-DD"
func (t *Transaction) Day() string {
	return t.Date.Format("2006-01-02")
}
