package domain

import (
	"time"
)

// DataType classifies a specification value.
type DataType string

const (
	DataTypeText    DataType = "text"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
	DataTypeEnum    DataType = "enum"
)

// SpecTemplate declares one attribute slot for a category: products of that
// category may carry a specification with this name, typed and constrained
// as declared here. Name is unique within a category.
type SpecTemplate struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Name         string    `json:"name"`         // machine key, e.g. "core_count"
	DisplayName  string    `json:"display_name"` // human label, e.g. "Core Count"
	DataType     DataType  `json:"data_type"`
	IsRequired   bool      `json:"is_required"`
	IsFilter     bool      `json:"is_filter"` // exposed as a storefront filter
	DisplayOrder int32     `json:"display_order"`
	EnumValues   []string  `json:"enum_values,omitempty"` // legal values when DataType is enum
	Unit         *string   `json:"unit,omitempty"`
	Placeholder  *string   `json:"placeholder,omitempty"`
	HelpText     *string   `json:"help_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductSpec is one stored attribute value for one product. The value is
// persisted as text regardless of DataType; typed handling happens through
// SpecValue. TemplateID points at the originating SpecTemplate when the row
// was built from a template, and is nil for ad-hoc attributes. The row stays
// valid if the template is later deleted or retyped — the link is for
// display grouping only.
type ProductSpec struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	TemplateID   *int64    `json:"template_id,omitempty"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	Value        string    `json:"value"`
	DataType     DataType  `json:"data_type"`
	IsRequired   bool      `json:"is_required"`
	IsFilter     bool      `json:"is_filter"`
	DisplayOrder int32     `json:"display_order"`
	EnumValues   []string  `json:"enum_values,omitempty"`
	Unit         *string   `json:"unit,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
