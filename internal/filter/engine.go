// Package filter derives UI filter descriptors from templates, matches
// products against filter criteria and builds cross-product comparisons.
package filter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"catalog-spec-service/internal/domain"
	"catalog-spec-service/internal/store"
)

// NotSpecified is the placeholder shown for a missing or empty value.
const NotSpecified = "Not specified"

// Engine evaluates filters and comparisons over injected stores. It carries
// no state between calls; every operation is a read/transform pass.
type Engine struct {
	templates store.TemplateStorer
	specs     store.SpecificationStorer
	catalog   store.CatalogStorer
}

// NewEngine creates a filter Engine.
func NewEngine(ts store.TemplateStorer, ss store.SpecificationStorer, cs store.CatalogStorer) *Engine {
	return &Engine{templates: ts, specs: ss, catalog: cs}
}

// Descriptor is the UI-facing shape of one filterable template.
type Descriptor struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	DataType    domain.DataType `json:"data_type"`
	Values      []string        `json:"values,omitempty"` // enum set, if any
	Unit        *string         `json:"unit,omitempty"`
}

// Range is a numeric bound pair; either side may be open.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Query is a set of filter criteria keyed by specification name. Equals
// criteria match by exact typed equality; Ranges apply numeric bounds. A
// product must satisfy every criterion to match.
type Query struct {
	Equals map[string]string `json:"filters,omitempty"`
	Ranges map[string]Range  `json:"ranges,omitempty"`
}

// ComparisonRow is one attribute line of a comparison table. Values maps
// product id to the display value; shape metadata is taken from the first
// product that carries the attribute.
type ComparisonRow struct {
	DisplayName string           `json:"display_name"`
	DataType    domain.DataType  `json:"data_type"`
	Unit        *string          `json:"unit,omitempty"`
	Values      map[int64]string `json:"values"`
}

// Comparison is the full cross-product comparison result. Differences lists
// the specification names whose values are not identical across the set
// (a missing value counts as distinct).
type Comparison struct {
	Products       []domain.Product         `json:"products"`
	Specifications map[string]ComparisonRow `json:"specifications"`
	Differences    []string                 `json:"differences"`
}

// FiltersForCategory shapes the category's filterable templates into UI
// descriptors, in display order.
func (e *Engine) FiltersForCategory(ctx context.Context, categoryID int64) ([]Descriptor, error) {
	templates, err := e.templates.ListTemplatesByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to load templates for category %d: %w", categoryID, err)
	}

	descriptors := make([]Descriptor, 0, len(templates))
	for _, tpl := range templates {
		if !tpl.IsFilter {
			continue
		}
		descriptors = append(descriptors, Descriptor{
			Name:        tpl.Name,
			DisplayName: tpl.DisplayName,
			DataType:    tpl.DataType,
			Values:      tpl.EnumValues,
			Unit:        tpl.Unit,
		})
	}
	return descriptors, nil
}

// Search returns the category's products whose specifications satisfy every
// criterion in the query. The whole category is loaded and evaluated in
// memory; there is no predicate pushdown, which is acceptable at catalog
// scale but not beyond it.
func (e *Engine) Search(ctx context.Context, categoryID int64, query Query) ([]domain.Product, error) {
	if _, err := e.catalog.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("filter: failed to load category %d: %w", categoryID, err)
	}

	products, err := e.catalog.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to load products for category %d: %w", categoryID, err)
	}
	if len(products) == 0 || (len(query.Equals) == 0 && len(query.Ranges) == 0) {
		return products, nil
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	specsByProduct, err := e.specs.ListSpecsByProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to load specifications: %w", err)
	}

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if productMatches(specsByProduct[p.ID], query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// productMatches checks every criterion against the product's specification
// set. A missing specification name fails the product outright.
func productMatches(specList []domain.ProductSpec, query Query) bool {
	byName := make(map[string]*domain.ProductSpec, len(specList))
	for i := range specList {
		byName[specList[i].Name] = &specList[i]
	}

	for name, wanted := range query.Equals {
		spec, ok := byName[name]
		if !ok {
			return false
		}
		if !valuesEqual(spec, wanted) {
			return false
		}
	}

	for name, bounds := range query.Ranges {
		spec, ok := byName[name]
		if !ok {
			return false
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(spec.Value), 64)
		if err != nil {
			return false
		}
		if bounds.Min != nil && value < *bounds.Min {
			return false
		}
		if bounds.Max != nil && value > *bounds.Max {
			return false
		}
	}

	return true
}

// valuesEqual coerces both sides to the specification's own data type and
// compares by exact typed equality. Coercion failure on either side means
// no match.
func valuesEqual(spec *domain.ProductSpec, wanted string) bool {
	stored, err := domain.ParseSpecValue(spec.DataType, spec.Value)
	if err != nil {
		return false
	}
	requested, err := domain.ParseSpecValue(spec.DataType, wanted)
	if err != nil {
		return false
	}
	return stored.Equal(requested)
}

// Compare builds a comparison table across the given products. Rows are
// keyed by raw specification name, not template id: ad-hoc attributes that
// share a name line up with template-driven ones, which is the intended
// best-effort behavior of the decoupled data model.
func (e *Engine) Compare(ctx context.Context, productIDs []int64) (*Comparison, error) {
	products, err := e.catalog.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to load products for comparison: %w", err)
	}
	if len(products) != len(productIDs) {
		return nil, fmt.Errorf("filter: comparison references unknown product ids: %w", store.ErrProductNotFound)
	}

	specsByProduct, err := e.specs.ListSpecsByProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to load specifications for comparison: %w", err)
	}

	rows := make(map[string]ComparisonRow)
	var nameOrder []string
	for _, p := range products {
		for _, spec := range specsByProduct[p.ID] {
			row, seen := rows[spec.Name]
			if !seen {
				// First product carrying the name supplies the row shape.
				row = ComparisonRow{
					DisplayName: spec.DisplayName,
					DataType:    spec.DataType,
					Unit:        spec.Unit,
					Values:      make(map[int64]string, len(products)),
				}
				nameOrder = append(nameOrder, spec.Name)
			}
			row.Values[p.ID] = FormatValue(spec.Value, spec.DataType, spec.Unit)
			rows[spec.Name] = row
		}
	}

	// Fill gaps and collect names whose values differ across the set.
	differences := make([]string, 0, len(rows))
	for _, name := range nameOrder {
		row := rows[name]
		distinct := make(map[string]struct{}, len(products))
		for _, p := range products {
			value, ok := row.Values[p.ID]
			if !ok {
				value = NotSpecified
				row.Values[p.ID] = value
			}
			distinct[value] = struct{}{}
		}
		if len(distinct) > 1 {
			differences = append(differences, name)
		}
	}
	sort.Strings(differences)

	return &Comparison{
		Products:       products,
		Specifications: rows,
		Differences:    differences,
	}, nil
}

// FormatValue renders a stored value for display: booleans become Yes/No,
// numbers get their unit suffix, blanks become the NotSpecified placeholder.
// Unparsable values fall back to the raw string.
func FormatValue(value string, dataType domain.DataType, unit *string) string {
	if strings.TrimSpace(value) == "" {
		return NotSpecified
	}

	switch dataType {
	case domain.DataTypeBoolean:
		parsed, err := domain.ParseSpecValue(domain.DataTypeBoolean, value)
		if err != nil {
			return value
		}
		if parsed.Bool {
			return "Yes"
		}
		return "No"
	case domain.DataTypeNumber:
		parsed, err := domain.ParseSpecValue(domain.DataTypeNumber, value)
		if err != nil {
			return value
		}
		formatted := parsed.String()
		if unit != nil && *unit != "" {
			return formatted + " " + *unit
		}
		return formatted
	default:
		return value
	}
}
