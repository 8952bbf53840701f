package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-spec-service/internal/domain"
)

func specRowColumns() []string {
	return []string{
		"id", "product_id", "template_id", "name", "display_name", "value",
		"data_type", "is_required", "is_filter", "display_order", "enum_values",
		"unit", "created_at", "updated_at",
	}
}

const insertSpecFragment = `INSERT INTO catalog.product_specifications`

func TestPostgresStore_GetSpecByID_Found(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	specID := int64(7)

	rows := sqlmock.NewRows(specRowColumns()).
		AddRow(specID, int64(1), PtrTo(int64(3)), "core_count", "Core Count", "8",
			"number", true, true, int32(2), "{}", PtrTo("cores"), now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM catalog.product_specifications`)).
		WithArgs(specID).
		WillReturnRows(rows)

	spec, err := store.GetSpecByID(context.Background(), specID)

	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, specID, spec.ID)
	assert.Equal(t, "core_count", spec.Name)
	assert.Equal(t, "8", spec.Value)
	assert.Equal(t, domain.DataTypeNumber, spec.DataType)
	require.NotNil(t, spec.TemplateID)
	assert.Equal(t, int64(3), *spec.TemplateID)
	require.NotNil(t, spec.Unit)
	assert.Equal(t, "cores", *spec.Unit)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetSpecByID_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	specID := int64(99)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM catalog.product_specifications`)).
		WithArgs(specID).
		WillReturnError(sql.ErrNoRows)

	spec, err := store.GetSpecByID(context.Background(), specID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpecificationNotFound), "Error should be ErrSpecificationNotFound")
	assert.Nil(t, spec)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSpecsByProduct(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	productID := int64(1)

	rows := sqlmock.NewRows(specRowColumns()).
		AddRow(int64(1), productID, nil, "brand", "Brand", "Acme", "text", true, true, int32(0), "{}", nil, now, now).
		AddRow(int64(2), productID, PtrTo(int64(3)), "core_count", "Core Count", "8", "number", true, true, int32(1), "{}", nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM catalog.product_specifications`)).
		WithArgs(productID).
		WillReturnRows(rows)

	specs, err := store.ListSpecsByProduct(context.Background(), productID)

	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "brand", specs[0].Name)
	assert.Nil(t, specs[0].TemplateID, "ad-hoc row has no template link")
	assert.Equal(t, "core_count", specs[1].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSpecsByProducts_GroupsByProduct(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	productIDs := []int64{1, 2}

	rows := sqlmock.NewRows(specRowColumns()).
		AddRow(int64(1), int64(1), nil, "ram", "Memory", "16", "number", false, true, int32(0), "{}", PtrTo("GB"), now, now).
		AddRow(int64(2), int64(2), nil, "ram", "Memory", "32", "number", false, true, int32(0), "{}", PtrTo("GB"), now, now).
		AddRow(int64(3), int64(2), nil, "brand", "Brand", "Acme", "text", false, true, int32(1), "{}", nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM catalog.product_specifications`)).
		WithArgs(pq.Array(productIDs)).
		WillReturnRows(rows)

	grouped, err := store.ListSpecsByProducts(context.Background(), productIDs)

	require.NoError(t, err)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped[1], 1)
	assert.Len(t, grouped[2], 2)
	assert.Equal(t, "16", grouped[1][0].Value)
	assert.Equal(t, "32", grouped[2][0].Value)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSpecsByProducts_EmptyInput(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	grouped, err := store.ListSpecsByProducts(context.Background(), nil)

	require.NoError(t, err, "Empty input short-circuits without touching the database")
	assert.Empty(t, grouped)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceSpecsForProduct(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	productID := int64(1)
	specs := []domain.ProductSpec{
		{TemplateID: PtrTo(int64(3)), Name: "core_count", DisplayName: "Core Count",
			Value: "8", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, DisplayOrder: 0},
		{Name: "color", DisplayName: "Color", Value: "Black", DataType: domain.DataTypeText, DisplayOrder: 1},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.product_specifications WHERE product_id = $1;`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	for i, spec := range specs {
		insertRows := sqlmock.NewRows(specRowColumns()).
			AddRow(int64(10+i), productID, spec.TemplateID, spec.Name, spec.DisplayName,
				spec.Value, string(spec.DataType), spec.IsRequired, spec.IsFilter,
				spec.DisplayOrder, "{}", spec.Unit, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(insertSpecFragment)).
			WithArgs(productID, spec.TemplateID, spec.Name, spec.DisplayName, spec.Value,
				spec.DataType, spec.IsRequired, spec.IsFilter, spec.DisplayOrder,
				pq.Array(spec.EnumValues), spec.Unit).
			WillReturnRows(insertRows)
	}
	mock.ExpectCommit()

	created, err := store.ReplaceSpecsForProduct(context.Background(), productID, specs)

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, int64(10), created[0].ID)
	assert.Equal(t, "core_count", created[0].Name)
	assert.Equal(t, int64(11), created[1].ID)
	assert.Nil(t, created[1].TemplateID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceSpecsForProduct_EmptyListClears(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	productID := int64(1)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.product_specifications WHERE product_id = $1;`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	created, err := store.ReplaceSpecsForProduct(context.Background(), productID, nil)

	require.NoError(t, err, "Saving an empty list clears the product's specifications")
	assert.Empty(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceSpecsForProduct_InsertFailureRollsBack(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	productID := int64(1)
	specs := []domain.ProductSpec{
		{Name: "brand", DisplayName: "Brand", Value: "Acme", DataType: domain.DataTypeText},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.product_specifications WHERE product_id = $1;`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta(insertSpecFragment)).
		WithArgs(productID, specs[0].TemplateID, specs[0].Name, specs[0].DisplayName,
			specs[0].Value, specs[0].DataType, specs[0].IsRequired, specs[0].IsFilter,
			specs[0].DisplayOrder, pq.Array(specs[0].EnumValues), specs[0].Unit).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	created, err := store.ReplaceSpecsForProduct(context.Background(), productID, specs)

	require.Error(t, err)
	assert.Nil(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateSpec_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	spec := &domain.ProductSpec{
		ID: int64(99), Name: "brand", DisplayName: "Brand",
		Value: "Acme", DataType: domain.DataTypeText,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE catalog.product_specifications`)).
		WithArgs(spec.Name, spec.DisplayName, spec.Value, spec.DataType, spec.IsRequired,
			spec.IsFilter, spec.DisplayOrder, pq.Array(spec.EnumValues), spec.Unit, spec.ID).
		WillReturnError(sql.ErrNoRows)

	updated, err := store.UpdateSpec(context.Background(), spec)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpecificationNotFound), "Error should be ErrSpecificationNotFound")
	assert.Nil(t, updated)

	require.NoError(t, mock.ExpectationsWereMet())
}
