// Package jsonfile loads entity collections from JSON files.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"retail-analytics/core/model"
	"retail-analytics/internal/errors"
)

// LoadCustomers reads a customers JSON array file
func LoadCustomers(path string) ([]model.Customer, error) {
	var customers []model.Customer
	if err := readJSON(path, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// LoadProducts reads a products JSON array file
func LoadProducts(path string) ([]model.Product, error) {
	var products []model.Product
	if err := readJSON(path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// LoadTransactions reads a transactions JSON array file
func LoadTransactions(path string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := readJSON(path, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// Load reads customers.json, products.json and transactions.json from dir
func Load(dir string) ([]model.Customer, []model.Product, []model.Transaction, error) {
	customers, err := LoadCustomers(filepath.Join(dir, "customers.json"))
	if err != nil {
		return nil, nil, nil, err
	}
	products, err := LoadProducts(filepath.Join(dir, "products.json"))
	if err != nil {
		return nil, nil, nil, err
	}
	transactions, err := LoadTransactions(filepath.Join(dir, "transactions.json"))
	if err != nil {
		return nil, nil, nil, err
	}
	return customers, products, transactions, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.TypeInput, err, "cannot read %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Parsing("failed to parse "+path, err)
	}
	return nil
}
