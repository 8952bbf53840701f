package specs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-spec-service/internal/domain"
	"catalog-spec-service/internal/store/storetest"
)

// Helper function to get a pointer (useful for optional fields in domain structs)
func PtrTo[T any](v T) *T {
	return &v
}

func TestGroupedProductSpecifications(t *testing.T) {
	mockSpecs := new(storetest.MockSpecificationStorer)
	service := NewService(mockSpecs, nil)

	all := []domain.ProductSpec{
		{ID: 1, ProductID: 7, Name: "socket", IsRequired: true},
		{ID: 2, ProductID: 7, Name: "tdp", IsRequired: false},
		{ID: 3, ProductID: 7, Name: "core_count", IsRequired: true},
	}
	mockSpecs.On("ListSpecsByProduct", mock.Anything, int64(7)).Return(all, nil).Once()

	grouped, err := service.GroupedProductSpecifications(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, grouped.Required, 2)
	assert.Len(t, grouped.Optional, 1)
	assert.Len(t, grouped.All, 3)
	assert.Equal(t, "tdp", grouped.Optional[0].Name)

	mockSpecs.AssertExpectations(t)
}

func TestBuildFromTemplates_FillsMissingValuesWithEmpty(t *testing.T) {
	mockSpecs := new(storetest.MockSpecificationStorer)
	mockTemplates := new(storetest.MockTemplateStorer)
	service := NewService(mockSpecs, mockTemplates)

	templates := []domain.SpecTemplate{
		{ID: 10, CategoryID: 3, Name: "brand", DisplayName: "Brand", DataType: domain.DataTypeText, IsRequired: true, DisplayOrder: 0},
		{ID: 11, CategoryID: 3, Name: "ram", DisplayName: "Memory", DataType: domain.DataTypeNumber, DisplayOrder: 1, Unit: PtrTo("GB")},
	}
	mockTemplates.On("ListTemplatesByCategory", mock.Anything, int64(3)).Return(templates, nil).Once()

	// The draft for "ram" must be present with an empty value even though no
	// value was supplied for it.
	mockSpecs.On("ReplaceSpecsForProduct", mock.Anything, int64(7), mock.MatchedBy(func(drafts []domain.ProductSpec) bool {
		if len(drafts) != 2 {
			return false
		}
		brand, ram := drafts[0], drafts[1]
		return brand.Name == "brand" && brand.Value == "Acme" &&
			brand.TemplateID != nil && *brand.TemplateID == 10 &&
			ram.Name == "ram" && ram.Value == "" &&
			ram.TemplateID != nil && *ram.TemplateID == 11
	})).Return([]domain.ProductSpec{{ID: 100}, {ID: 101}}, nil).Once()

	created, err := service.BuildFromTemplates(context.Background(), 7, 3, map[string]string{"brand": "Acme"})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	mockTemplates.AssertExpectations(t)
	mockSpecs.AssertExpectations(t)
}

func TestValidateForCategory(t *testing.T) {
	mockTemplates := new(storetest.MockTemplateStorer)
	service := NewService(nil, mockTemplates)

	templates := []domain.SpecTemplate{
		{ID: 1, Name: "core_count", DisplayName: "Core Count", DataType: domain.DataTypeNumber, IsRequired: true},
		{ID: 2, Name: "wifi", DisplayName: "Built-in Wi-Fi", DataType: domain.DataTypeBoolean},
	}
	mockTemplates.On("ListTemplatesByCategory", mock.Anything, int64(3)).Return(templates, nil).Once()

	results, err := service.ValidateForCategory(context.Background(), 3, map[string]string{
		"core_count": "not-a-number",
	})
	require.NoError(t, err, "individually invalid fields must not fail the call")
	require.Len(t, results, 2)

	assert.False(t, results["core_count"].IsValid)
	assert.Contains(t, results["core_count"].Errors[0], "must be a number")

	// wifi had no supplied value; it is optional so the empty default passes.
	assert.True(t, results["wifi"].IsValid)

	mockTemplates.AssertExpectations(t)
}

func TestUpdateProductSpecification_Partial(t *testing.T) {
	mockSpecs := new(storetest.MockSpecificationStorer)
	service := NewService(mockSpecs, nil)

	existing := &domain.ProductSpec{
		ID: 5, ProductID: 7, Name: "ram", DisplayName: "Memory",
		Value: "16", DataType: domain.DataTypeNumber, DisplayOrder: 2,
	}
	mockSpecs.On("GetSpecByID", mock.Anything, int64(5)).Return(existing, nil).Once()

	mockSpecs.On("UpdateSpec", mock.Anything, mock.MatchedBy(func(spec *domain.ProductSpec) bool {
		// Only Value changed; everything else is preserved.
		return spec.ID == 5 && spec.Value == "32" && spec.Name == "ram" && spec.DisplayOrder == 2
	})).Return(&domain.ProductSpec{ID: 5, Value: "32"}, nil).Once()

	updated, err := service.UpdateProductSpecification(context.Background(), 5, SpecUpdate{Value: PtrTo("32")})
	require.NoError(t, err)
	assert.Equal(t, "32", updated.Value)

	mockSpecs.AssertExpectations(t)
}

func TestSaveProductSpecifications_EmptyList(t *testing.T) {
	mockSpecs := new(storetest.MockSpecificationStorer)
	service := NewService(mockSpecs, nil)

	mockSpecs.On("ReplaceSpecsForProduct", mock.Anything, int64(7), []domain.ProductSpec{}).
		Return([]domain.ProductSpec{}, nil).Once()

	saved, err := service.SaveProductSpecifications(context.Background(), 7, []domain.ProductSpec{})
	require.NoError(t, err)
	assert.Empty(t, saved)

	mockSpecs.AssertExpectations(t)
}
