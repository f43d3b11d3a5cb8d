package catalog

import (
	"errors"
	"time"
)

// Category enumerates supported product categories.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryToys        Category = "toys"
	CategoryAccessories Category = "accessories"
	CategoryHealthcare  Category = "healthcare"
	CategoryGrooming    Category = "grooming"
	CategoryOther       Category = "other"
)

// IsValid checks if the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryToys, CategoryAccessories, CategoryHealthcare, CategoryGrooming, CategoryOther:
		return true
	default:
		return false
	}
}

// Product models one catalog entry. Barcodes are NOT unique: package-size
// variants of materially similar items may share one supplier barcode, and
// lookups must never assume a single match.
type Product struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Category    Category   `json:"category" db:"category"`
	Stock       int        `json:"stock" db:"stock"`
	MinStock    int        `json:"min_stock" db:"min_stock"`
	Price       float64    `json:"price" db:"price"`
	Supplier    *string    `json:"supplier,omitempty" db:"supplier"`
	Barcode     string     `json:"barcode" db:"barcode"`
	BatchNumber *string    `json:"batch_number,omitempty" db:"batch_number"`
	LastUpdated time.Time  `json:"last_updated" db:"last_updated"`
}

// IsLowStock reports whether the product is at or below its reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Validate enforces product invariants.
func (p Product) Validate() error {
	if p.Name == "" {
		return errors.New("catalog: product name required")
	}
	if !p.Category.IsValid() {
		return ErrInvalidCategory
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if p.MinStock < 0 {
		return ErrNegativeMinStock
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Barcode == "" {
		return errors.New("catalog: product barcode required")
	}
	return nil
}

// ErrNotFound indicates the product does not exist.
var ErrNotFound = errors.New("catalog: product not found")

// ErrInvalidCategory indicates an unknown category value.
var ErrInvalidCategory = errors.New("catalog: invalid category")

// ErrNegativeStock triggered when stock would go below zero.
var ErrNegativeStock = errors.New("catalog: stock must be >= 0")

// ErrNegativeMinStock indicates an invalid reorder threshold.
var ErrNegativeMinStock = errors.New("catalog: min stock must be >= 0")

// ErrNegativePrice indicates an invalid unit price.
var ErrNegativePrice = errors.New("catalog: price must be >= 0")
