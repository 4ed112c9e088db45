// Package db loads entity collections from a relational database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"retail-analytics/core/model"
	"retail-analytics/internal/errors"
)

// Open opens a MySQL connection. DSNs in mysql:// or mariadb:// URL form
// are normalized to the driver format.
func Open(dsn string) (*sql.DB, error) {
	normalized, err := toDriverDSN(dsn)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to open database", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(30 * time.Minute)
	return conn, nil
}

func toDriverDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mysql://") && !strings.HasPrefix(dsn, "mariadb://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", errors.Wrap(errors.TypeConfig, "invalid dsn", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	name := strings.TrimPrefix(u.Path, "/")
	if user == "" || u.Host == "" || name == "" {
		return "", errors.Config("dsn must carry user, host and database", nil)
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC", user, pass, u.Host, name), nil
}

// Loader reads entity collections from the database
type Loader struct {
	db *sql.DB
}

// NewLoader creates a loader over an open database handle
func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// Customers loads the customers table
func (l *Loader) Customers(ctx context.Context) ([]model.Customer, error) {
	const q = `SELECT customer_id, customer_name, customer_segment, city, state, registration_date
		FROM customers ORDER BY customer_id`

	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Query("failed to load customers", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		var segment string
		if err := rows.Scan(&c.ID, &c.Name, &segment, &c.City, &c.State, &c.RegistrationDate); err != nil {
			return nil, errors.Query("failed to scan customer row", err)
		}
		c.Segment = model.Segment(segment)
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Products loads the products table
func (l *Loader) Products(ctx context.Context) ([]model.Product, error) {
	const q = `SELECT product_id, product_name, category, COALESCE(subcategory, ''), brand, price, cost
		FROM products ORDER BY product_id`

	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Query("failed to load products", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Subcategory, &p.Brand, &p.Price, &p.Cost); err != nil {
			return nil, errors.Query("failed to scan product row", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Transactions loads the transactions table
func (l *Loader) Transactions(ctx context.Context) ([]model.Transaction, error) {
	const q = `SELECT transaction_id, customer_id, product_id, transaction_date, quantity,
		unit_price, total_amount, discount_amount, payment_method, sales_channel
		FROM transactions ORDER BY transaction_id`

	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Query("failed to load transactions", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var payment, channel string
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.ProductID, &t.Date, &t.Quantity,
			&t.UnitPrice, &t.TotalAmount, &t.DiscountAmount, &payment, &channel); err != nil {
			return nil, errors.Query("failed to scan transaction row", err)
		}
		t.PaymentMethod = model.PaymentMethod(payment)
		t.SalesChannel = model.SalesChannel(channel)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// LoadAll loads all three entity collections
func (l *Loader) LoadAll(ctx context.Context) ([]model.Customer, []model.Product, []model.Transaction, error) {
	customers, err := l.Customers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	products, err := l.Products(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	transactions, err := l.Transactions(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return customers, products, transactions, nil
}
