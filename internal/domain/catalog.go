package domain

import (
	"time"
)

// Category represents a product category. Categories are managed by an
// external catalog service; this service reads them to decide which
// specification preset applies (keyed by Slug).
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is the read-only view of a catalog product used by the search
// and comparison paths. Product CRUD lives in the catalog service.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	Price      float64   `json:"price"`
	CategoryID *int64    `json:"category_id,omitempty"` // Pointer for nullable fields
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
