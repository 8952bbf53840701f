// Package registry manages the per-category schema of specification
// templates and bootstraps it from hardcoded presets.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"

	"catalog-spec-service/internal/domain"
	"catalog-spec-service/internal/store"
)

// ErrEnumValuesRequired is returned when a template would end up typed enum
// without a legal value set.
var ErrEnumValuesRequired = errors.New("registry: enum templates must declare enum_values")

// Service exposes template registry operations over an injected store.
type Service struct {
	templates store.TemplateStorer
	catalog   store.CatalogStorer
	logger    *log.Logger
}

// NewService creates a registry Service.
func NewService(ts store.TemplateStorer, cs store.CatalogStorer, logger *log.Logger) *Service {
	return &Service{templates: ts, catalog: cs, logger: logger}
}

// ApplyResult reports the outcome of applying a preset to one category.
type ApplyResult struct {
	CategoryID       int64  `json:"category_id"`
	Slug             string `json:"slug"`
	PresetFound      bool   `json:"preset_found"`
	Skipped          bool   `json:"skipped"` // category already had templates
	TemplatesApplied int    `json:"templates_applied"`
}

// TemplateInfo is the diagnostic view of a category's template state.
type TemplateInfo struct {
	CategoryID   int64  `json:"category_id"`
	Slug         string `json:"slug"`
	HasPreset    bool   `json:"has_preset"`
	PresetCount  int    `json:"preset_count"`
	AppliedCount int    `json:"applied_count"`
	NeedsApply   bool   `json:"needs_apply"`
}

// InitializeResult aggregates a full bootstrap run across all categories.
type InitializeResult struct {
	CategoriesProcessed int           `json:"categories_processed"`
	TemplatesApplied    int           `json:"templates_applied"`
	Results             []ApplyResult `json:"results"`
	Errors              []string      `json:"errors,omitempty"`
}

// TemplatesForCategory returns the category's templates ordered by
// display_order.
func (s *Service) TemplatesForCategory(ctx context.Context, categoryID int64) ([]domain.SpecTemplate, error) {
	return s.templates.ListTemplatesByCategory(ctx, categoryID)
}

// CreateTemplate inserts a single template. Per-category name uniqueness is
// enforced by the store's unique constraint.
func (s *Service) CreateTemplate(ctx context.Context, tpl *domain.SpecTemplate) (*domain.SpecTemplate, error) {
	return s.templates.CreateTemplate(ctx, tpl)
}

// CreateTemplatesForCategory bulk-inserts templates for one category.
func (s *Service) CreateTemplatesForCategory(ctx context.Context, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error) {
	return s.templates.CreateTemplates(ctx, categoryID, tpls)
}

// TemplateUpdate carries the mutable template fields for a partial update.
// Nil fields are left unchanged.
type TemplateUpdate struct {
	Name         *string
	DisplayName  *string
	DataType     *domain.DataType
	IsRequired   *bool
	IsFilter     *bool
	DisplayOrder *int32
	EnumValues   []string // nil means unchanged; empty slice clears
	Unit         *string
	Placeholder  *string
	HelpText     *string
}

// UpdateTemplate applies a partial update to one template via
// read-modify-write.
func (s *Service) UpdateTemplate(ctx context.Context, id int64, update TemplateUpdate) (*domain.SpecTemplate, error) {
	tpl, err := s.templates.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		tpl.Name = *update.Name
	}
	if update.DisplayName != nil {
		tpl.DisplayName = *update.DisplayName
	}
	if update.DataType != nil {
		tpl.DataType = *update.DataType
	}
	if update.IsRequired != nil {
		tpl.IsRequired = *update.IsRequired
	}
	if update.IsFilter != nil {
		tpl.IsFilter = *update.IsFilter
	}
	if update.DisplayOrder != nil {
		tpl.DisplayOrder = *update.DisplayOrder
	}
	if update.EnumValues != nil {
		tpl.EnumValues = update.EnumValues
	}
	if update.Unit != nil {
		tpl.Unit = update.Unit
	}
	if update.Placeholder != nil {
		tpl.Placeholder = update.Placeholder
	}
	if update.HelpText != nil {
		tpl.HelpText = update.HelpText
	}

	// The merged row must still satisfy the enum invariant: retyping to enum
	// without a value set, or clearing the set on an enum template, leaves an
	// enum with no legal values.
	if tpl.DataType == domain.DataTypeEnum && len(tpl.EnumValues) == 0 {
		return nil, ErrEnumValuesRequired
	}

	return s.templates.UpdateTemplate(ctx, tpl)
}

// DeleteTemplate removes one template. Existing product specification values
// created from it are left in place.
func (s *Service) DeleteTemplate(ctx context.Context, id int64) error {
	return s.templates.DeleteTemplate(ctx, id)
}

// ApplyPreset seeds the category with the preset for the given slug. If the
// category already has at least one template the call is a no-op: first
// writer wins, presets never merge into or overwrite an existing schema.
func (s *Service) ApplyPreset(ctx context.Context, categoryID int64, slug string) (*ApplyResult, error) {
	result := &ApplyResult{CategoryID: categoryID, Slug: slug}

	preset, ok := PresetForSlug(slug)
	if !ok {
		s.logger.Printf("INFO: No template preset defined for slug %q, nothing to apply", slug)
		return result, nil
	}
	result.PresetFound = true

	existing, err := s.templates.CountTemplatesByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to count templates for category %d: %w", categoryID, err)
	}
	if existing > 0 {
		result.Skipped = true
		return result, nil
	}

	created, err := s.templates.CreateTemplates(ctx, categoryID, templatesFromPreset(categoryID, preset))
	if err != nil {
		return nil, fmt.Errorf("registry: failed to apply preset %q to category %d: %w", slug, categoryID, err)
	}
	result.TemplatesApplied = len(created)
	s.logger.Printf("INFO: Applied preset %q to category %d (%d templates)", slug, categoryID, result.TemplatesApplied)
	return result, nil
}

// ReapplyPreset handles a category slug rename: every existing template of
// the category is dropped and the preset for the new slug is inserted fresh,
// in one transaction. Administrator customizations do not survive this.
func (s *Service) ReapplyPreset(ctx context.Context, categoryID int64, newSlug string) (*ApplyResult, error) {
	result := &ApplyResult{CategoryID: categoryID, Slug: newSlug}

	preset, ok := PresetForSlug(newSlug)
	if ok {
		result.PresetFound = true
	}

	created, err := s.templates.ReplaceTemplatesForCategory(ctx, categoryID, templatesFromPreset(categoryID, preset))
	if err != nil {
		return nil, fmt.Errorf("registry: failed to reapply preset %q to category %d: %w", newSlug, categoryID, err)
	}
	result.TemplatesApplied = len(created)
	s.logger.Printf("INFO: Reapplied preset %q to category %d (%d templates)", newSlug, categoryID, result.TemplatesApplied)
	return result, nil
}

// TemplateInfo reports whether a preset exists for the slug, how large it
// is, how many templates the category actually has, and whether an apply is
// still pending.
func (s *Service) TemplateInfo(ctx context.Context, categoryID int64, slug string) (*TemplateInfo, error) {
	info := &TemplateInfo{CategoryID: categoryID, Slug: slug}

	if preset, ok := PresetForSlug(slug); ok {
		info.HasPreset = true
		info.PresetCount = len(preset)
	}

	applied, err := s.templates.CountTemplatesByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to count templates for category %d: %w", categoryID, err)
	}
	info.AppliedCount = applied
	info.NeedsApply = info.HasPreset && applied == 0
	return info, nil
}

// InitializeAll applies presets to every category in storage. Individual
// category failures are collected and do not stop the loop.
func (s *Service) InitializeAll(ctx context.Context) (*InitializeResult, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to list categories for initialization: %w", err)
	}

	result := &InitializeResult{Results: make([]ApplyResult, 0, len(categories))}
	for _, category := range categories {
		applied, err := s.ApplyPreset(ctx, category.ID, category.Slug)
		result.CategoriesProcessed++
		if err != nil {
			s.logger.Printf("WARN: Template initialization failed for category %d (%s): %v", category.ID, category.Slug, err)
			result.Errors = append(result.Errors, fmt.Sprintf("category %d (%s): %v", category.ID, category.Slug, err))
			continue
		}
		result.TemplatesApplied += applied.TemplatesApplied
		result.Results = append(result.Results, *applied)
	}
	return result, nil
}
