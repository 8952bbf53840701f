package store

import (
	"context"

	"catalog-spec-service/internal/domain"
)

// TemplateStorer defines the database operations for category specification
// templates.
type TemplateStorer interface {
	CreateTemplate(ctx context.Context, tpl *domain.SpecTemplate) (*domain.SpecTemplate, error)
	// CreateTemplates bulk-inserts the given templates for one category
	// inside a single transaction.
	CreateTemplates(ctx context.Context, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error)
	GetTemplateByID(ctx context.Context, id int64) (*domain.SpecTemplate, error)
	ListTemplatesByCategory(ctx context.Context, categoryID int64) ([]domain.SpecTemplate, error)
	CountTemplatesByCategory(ctx context.Context, categoryID int64) (int, error)
	UpdateTemplate(ctx context.Context, tpl *domain.SpecTemplate) (*domain.SpecTemplate, error)
	// DeleteTemplate removes one template. Product specification rows that
	// reference it are left untouched.
	DeleteTemplate(ctx context.Context, id int64) error
	// ReplaceTemplatesForCategory atomically deletes every template of the
	// category and inserts the given set. Used on category slug renames.
	ReplaceTemplatesForCategory(ctx context.Context, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error)
}

// SpecificationStorer defines the database operations for per-product
// specification values.
type SpecificationStorer interface {
	GetSpecByID(ctx context.Context, id int64) (*domain.ProductSpec, error)
	ListSpecsByProduct(ctx context.Context, productID int64) ([]domain.ProductSpec, error)
	// ListSpecsByProducts batch-loads specifications for many products,
	// keyed by product id. Products with no rows are absent from the map.
	ListSpecsByProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductSpec, error)
	// ReplaceSpecsForProduct atomically deletes every specification of the
	// product and inserts the given set. An empty set leaves zero rows.
	ReplaceSpecsForProduct(ctx context.Context, productID int64, specs []domain.ProductSpec) ([]domain.ProductSpec, error)
	UpdateSpec(ctx context.Context, spec *domain.ProductSpec) (*domain.ProductSpec, error)
}

// CatalogStorer defines the read-only view of categories and products this
// service needs. Category and product CRUD belong to the catalog service.
type CatalogStorer interface {
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}
