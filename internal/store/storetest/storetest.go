// Package storetest provides testify mocks for the store interfaces, shared
// by the service-level test suites.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"catalog-spec-service/internal/domain"
)

// MockTemplateStorer is a mock implementation of store.TemplateStorer.
type MockTemplateStorer struct {
	mock.Mock
}

func (m *MockTemplateStorer) CreateTemplate(ctx context.Context, tpl *domain.SpecTemplate) (*domain.SpecTemplate, error) {
	args := m.Called(ctx, tpl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpecTemplate), args.Error(1)
}

func (m *MockTemplateStorer) CreateTemplates(ctx context.Context, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error) {
	args := m.Called(ctx, categoryID, tpls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpecTemplate), args.Error(1)
}

func (m *MockTemplateStorer) GetTemplateByID(ctx context.Context, id int64) (*domain.SpecTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpecTemplate), args.Error(1)
}

func (m *MockTemplateStorer) ListTemplatesByCategory(ctx context.Context, categoryID int64) ([]domain.SpecTemplate, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpecTemplate), args.Error(1)
}

func (m *MockTemplateStorer) CountTemplatesByCategory(ctx context.Context, categoryID int64) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockTemplateStorer) UpdateTemplate(ctx context.Context, tpl *domain.SpecTemplate) (*domain.SpecTemplate, error) {
	args := m.Called(ctx, tpl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpecTemplate), args.Error(1)
}

func (m *MockTemplateStorer) DeleteTemplate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateStorer) ReplaceTemplatesForCategory(ctx context.Context, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error) {
	args := m.Called(ctx, categoryID, tpls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpecTemplate), args.Error(1)
}

// MockSpecificationStorer is a mock implementation of store.SpecificationStorer.
type MockSpecificationStorer struct {
	mock.Mock
}

func (m *MockSpecificationStorer) GetSpecByID(ctx context.Context, id int64) (*domain.ProductSpec, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductSpec), args.Error(1)
}

func (m *MockSpecificationStorer) ListSpecsByProduct(ctx context.Context, productID int64) ([]domain.ProductSpec, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSpec), args.Error(1)
}

func (m *MockSpecificationStorer) ListSpecsByProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductSpec, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]domain.ProductSpec), args.Error(1)
}

func (m *MockSpecificationStorer) ReplaceSpecsForProduct(ctx context.Context, productID int64, specs []domain.ProductSpec) ([]domain.ProductSpec, error) {
	args := m.Called(ctx, productID, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSpec), args.Error(1)
}

func (m *MockSpecificationStorer) UpdateSpec(ctx context.Context, spec *domain.ProductSpec) (*domain.ProductSpec, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductSpec), args.Error(1)
}

// MockCatalogStorer is a mock implementation of store.CatalogStorer.
type MockCatalogStorer struct {
	mock.Mock
}

func (m *MockCatalogStorer) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogStorer) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCatalogStorer) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogStorer) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
