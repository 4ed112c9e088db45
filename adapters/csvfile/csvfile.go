// Package csvfile loads entity collections from CSV files.
package csvfile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"retail-analytics/core/model"
	"retail-analytics/internal/errors"
)

// dateLayout is the calendar date format used in entity files
const dateLayout = "2006-01-02"

// Date parses calendar dates from CSV cells, accepting a bare date or a
// full RFC3339 timestamp.
type Date struct {
	time.Time
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (d *Date) UnmarshalCSV(s string) error {
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(dateLayout), nil
}

type customerRow struct {
	ID               int64           `csv:"customer_id"`
	Name             string          `csv:"customer_name"`
	Segment          string          `csv:"customer_segment"`
	City             string          `csv:"city"`
	State            string          `csv:"state"`
	RegistrationDate Date            `csv:"registration_date"`
}

type productRow struct {
	ID          int64           `csv:"product_id"`
	Name        string          `csv:"product_name"`
	Category    string          `csv:"category"`
	Subcategory string          `csv:"subcategory"`
	Brand       string          `csv:"brand"`
	Price       decimal.Decimal `csv:"price"`
	Cost        decimal.Decimal `csv:"cost"`
}

type transactionRow struct {
	ID             int64           `csv:"transaction_id"`
	CustomerID     int64           `csv:"customer_id"`
	ProductID      int64           `csv:"product_id"`
	Date           Date            `csv:"transaction_date"`
	Quantity       int64           `csv:"quantity"`
	UnitPrice      decimal.Decimal `csv:"unit_price"`
	TotalAmount    decimal.Decimal `csv:"total_amount"`
	DiscountAmount decimal.Decimal `csv:"discount_amount"`
	PaymentMethod  string          `csv:"payment_method"`
	SalesChannel   string          `csv:"sales_channel"`
}

// LoadCustomers reads a customers CSV file
func LoadCustomers(path string) ([]model.Customer, error) {
	var rows []customerRow
	if err := readCSV(path, &rows); err != nil {
		return nil, err
	}
	customers := make([]model.Customer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, model.Customer{
			ID:               r.ID,
			Name:             r.Name,
			Segment:          model.Segment(r.Segment),
			City:             r.City,
			State:            r.State,
			RegistrationDate: r.RegistrationDate.Time,
		})
	}
	return customers, nil
}

// LoadProducts reads a products CSV file
func LoadProducts(path string) ([]model.Product, error) {
	var rows []productRow
	if err := readCSV(path, &rows); err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, model.Product{
			ID:          r.ID,
			Name:        r.Name,
			Category:    r.Category,
			Subcategory: r.Subcategory,
			Brand:       r.Brand,
			Price:       r.Price,
			Cost:        r.Cost,
		})
	}
	return products, nil
}

// LoadTransactions reads a transactions CSV file
func LoadTransactions(path string) ([]model.Transaction, error) {
	var rows []transactionRow
	if err := readCSV(path, &rows); err != nil {
		return nil, err
	}
	transactions := make([]model.Transaction, 0, len(rows))
	for _, r := range rows {
		transactions = append(transactions, model.Transaction{
			ID:             r.ID,
			CustomerID:     r.CustomerID,
			ProductID:      r.ProductID,
			Date:           r.Date.Time,
			Quantity:       r.Quantity,
			UnitPrice:      r.UnitPrice,
			TotalAmount:    r.TotalAmount,
			DiscountAmount: r.DiscountAmount,
			PaymentMethod:  model.PaymentMethod(r.PaymentMethod),
			SalesChannel:   model.SalesChannel(r.SalesChannel),
		})
	}
	return transactions, nil
}

// Load reads customers.csv, products.csv and transactions.csv from dir
func Load(dir string) ([]model.Customer, []model.Product, []model.Transaction, error) {
	customers, err := LoadCustomers(filepath.Join(dir, "customers.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	products, err := LoadProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	transactions, err := LoadTransactions(filepath.Join(dir, "transactions.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	return customers, products, transactions, nil
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(errors.TypeInput, err, "cannot open %s", path)
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return errors.Parsing("failed to parse "+path, err)
	}
	return nil
}
