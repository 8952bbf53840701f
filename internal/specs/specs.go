// Package specs implements CRUD and validation for per-product
// specification values.
package specs

import (
	"context"
	"fmt"

	"catalog-spec-service/internal/domain"
	"catalog-spec-service/internal/store"
)

// Service exposes product specification operations over injected stores.
type Service struct {
	specs     store.SpecificationStorer
	templates store.TemplateStorer
}

// NewService creates a specification Service.
func NewService(ss store.SpecificationStorer, ts store.TemplateStorer) *Service {
	return &Service{specs: ss, templates: ts}
}

// GroupedSpecs partitions a product's specifications by the required flag.
type GroupedSpecs struct {
	Required []domain.ProductSpec `json:"required"`
	Optional []domain.ProductSpec `json:"optional"`
	All      []domain.ProductSpec `json:"all"`
}

// ProductSpecifications returns the product's specifications ordered by
// display_order.
func (s *Service) ProductSpecifications(ctx context.Context, productID int64) ([]domain.ProductSpec, error) {
	return s.specs.ListSpecsByProduct(ctx, productID)
}

// GroupedProductSpecifications returns the product's specifications split
// into required and optional groups.
func (s *Service) GroupedProductSpecifications(ctx context.Context, productID int64) (*GroupedSpecs, error) {
	all, err := s.specs.ListSpecsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	grouped := &GroupedSpecs{
		Required: make([]domain.ProductSpec, 0, len(all)),
		Optional: make([]domain.ProductSpec, 0, len(all)),
		All:      all,
	}
	for _, spec := range all {
		if spec.IsRequired {
			grouped.Required = append(grouped.Required, spec)
		} else {
			grouped.Optional = append(grouped.Optional, spec)
		}
	}
	return grouped, nil
}

// SaveProductSpecifications replaces the product's full specification set.
// The store executes the delete and inserts in one transaction; passing an
// empty list leaves the product with zero specifications.
func (s *Service) SaveProductSpecifications(ctx context.Context, productID int64, specList []domain.ProductSpec) ([]domain.ProductSpec, error) {
	return s.specs.ReplaceSpecsForProduct(ctx, productID, specList)
}

// SpecUpdate carries mutable fields for a partial single-row update. Nil
// fields are left unchanged.
type SpecUpdate struct {
	Name         *string
	DisplayName  *string
	Value        *string
	DataType     *domain.DataType
	IsRequired   *bool
	IsFilter     *bool
	DisplayOrder *int32
	EnumValues   []string
	Unit         *string
}

// UpdateProductSpecification applies a partial update to one specification
// row via read-modify-write.
func (s *Service) UpdateProductSpecification(ctx context.Context, id int64, update SpecUpdate) (*domain.ProductSpec, error) {
	existing, err := s.specs.GetSpecByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.DisplayName != nil {
		existing.DisplayName = *update.DisplayName
	}
	if update.Value != nil {
		existing.Value = *update.Value
	}
	if update.DataType != nil {
		existing.DataType = *update.DataType
	}
	if update.IsRequired != nil {
		existing.IsRequired = *update.IsRequired
	}
	if update.IsFilter != nil {
		existing.IsFilter = *update.IsFilter
	}
	if update.DisplayOrder != nil {
		existing.DisplayOrder = *update.DisplayOrder
	}
	if update.EnumValues != nil {
		existing.EnumValues = update.EnumValues
	}
	if update.Unit != nil {
		existing.Unit = update.Unit
	}

	return s.specs.UpdateSpec(ctx, existing)
}

// ValidateForCategory validates a name→value map against every template of
// the category. Templates with no supplied value validate the empty string,
// so required fields surface as errors. Individually invalid fields never
// fail the call; callers inspect the returned map.
func (s *Service) ValidateForCategory(ctx context.Context, categoryID int64, values map[string]string) (map[string]ValidationResult, error) {
	templates, err := s.templates.ListTemplatesByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("specs: failed to load templates for category %d: %w", categoryID, err)
	}

	results := make(map[string]ValidationResult, len(templates))
	for i := range templates {
		tpl := &templates[i]
		results[tpl.Name] = ValidateValue(tpl, values[tpl.Name])
	}
	return results, nil
}

// BuildFromTemplates rebuilds the product's specification set from the
// category's current templates plus user-entered values, then saves it with
// replace-all semantics. Templates without a matching key get an empty value
// rather than being omitted, so the stored set always mirrors the schema.
func (s *Service) BuildFromTemplates(ctx context.Context, productID, categoryID int64, values map[string]string) ([]domain.ProductSpec, error) {
	templates, err := s.templates.ListTemplatesByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("specs: failed to load templates for category %d: %w", categoryID, err)
	}

	drafts := make([]domain.ProductSpec, 0, len(templates))
	for i := range templates {
		tpl := &templates[i]
		templateID := tpl.ID
		drafts = append(drafts, domain.ProductSpec{
			ProductID:    productID,
			TemplateID:   &templateID,
			Name:         tpl.Name,
			DisplayName:  tpl.DisplayName,
			Value:        values[tpl.Name],
			DataType:     tpl.DataType,
			IsRequired:   tpl.IsRequired,
			IsFilter:     tpl.IsFilter,
			DisplayOrder: tpl.DisplayOrder,
			EnumValues:   tpl.EnumValues,
			Unit:         tpl.Unit,
		})
	}

	return s.specs.ReplaceSpecsForProduct(ctx, productID, drafts)
}
