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

// Helper function to create a mock DB and PostgresStore for testing
func newMockDBAndStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	store := NewPostgresStore(db)
	require.NotNil(t, store, "Store should not be nil")

	return db, mock, store
}

// Helper function to get a pointer (useful for optional fields in domain structs)
func PtrTo[T any](v T) *T {
	return &v
}

func templateRowColumns() []string {
	return []string{
		"id", "category_id", "name", "display_name", "data_type", "is_required",
		"is_filter", "display_order", "enum_values", "unit", "placeholder",
		"help_text", "created_at", "updated_at",
	}
}

const insertTemplateFragment = `INSERT INTO catalog.category_spec_templates`

func TestPostgresStore_CreateTemplate(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	tplToCreate := &domain.SpecTemplate{
		CategoryID:   int64(3),
		Name:         "socket",
		DisplayName:  "Socket",
		DataType:     domain.DataTypeEnum,
		IsRequired:   true,
		IsFilter:     true,
		DisplayOrder: 1,
		EnumValues:   []string{"AM5", "LGA1700"},
		Unit:         nil,
		Placeholder:  nil,
		HelpText:     PtrTo("CPU socket type"),
	}

	expectedID := int64(10)

	rows := sqlmock.NewRows(templateRowColumns()).
		AddRow(expectedID, tplToCreate.CategoryID, tplToCreate.Name, tplToCreate.DisplayName,
			string(tplToCreate.DataType), tplToCreate.IsRequired, tplToCreate.IsFilter,
			tplToCreate.DisplayOrder, "{AM5,LGA1700}", tplToCreate.Unit,
			tplToCreate.Placeholder, tplToCreate.HelpText, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(insertTemplateFragment)).
		WithArgs(tplToCreate.CategoryID, tplToCreate.Name, tplToCreate.DisplayName,
			tplToCreate.DataType, tplToCreate.IsRequired, tplToCreate.IsFilter,
			tplToCreate.DisplayOrder, pq.Array(tplToCreate.EnumValues),
			tplToCreate.Unit, tplToCreate.Placeholder, tplToCreate.HelpText).
		WillReturnRows(rows)

	created, err := store.CreateTemplate(context.Background(), tplToCreate)

	require.NoError(t, err, "CreateTemplate should not return an error")
	require.NotNil(t, created, "Created template should not be nil")
	assert.Equal(t, expectedID, created.ID)
	assert.Equal(t, tplToCreate.Name, created.Name)
	assert.Equal(t, []string{"AM5", "LGA1700"}, created.EnumValues)
	assert.WithinDuration(t, now, created.CreatedAt, time.Second)

	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_CreateTemplate_NameExists(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	tplToCreate := &domain.SpecTemplate{
		CategoryID:  int64(3),
		Name:        "socket",
		DisplayName: "Socket",
		DataType:    domain.DataTypeText,
	}

	pqErr := &pq.Error{Code: "23505", Constraint: "category_spec_templates_category_id_name_key"}
	mock.ExpectQuery(regexp.QuoteMeta(insertTemplateFragment)).
		WithArgs(tplToCreate.CategoryID, tplToCreate.Name, tplToCreate.DisplayName,
			tplToCreate.DataType, tplToCreate.IsRequired, tplToCreate.IsFilter,
			tplToCreate.DisplayOrder, pq.Array(tplToCreate.EnumValues),
			tplToCreate.Unit, tplToCreate.Placeholder, tplToCreate.HelpText).
		WillReturnError(pqErr)

	created, err := store.CreateTemplate(context.Background(), tplToCreate)

	require.Error(t, err, "CreateTemplate should return an error for a duplicate name")
	assert.True(t, errors.Is(err, ErrTemplateNameExists), "Error should be ErrTemplateNameExists")
	assert.Nil(t, created, "Created template should be nil on error")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetTemplateByID_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	templateID := int64(99)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM catalog.category_spec_templates`)).
		WithArgs(templateID).
		WillReturnError(sql.ErrNoRows)

	tpl, err := store.GetTemplateByID(context.Background(), templateID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound), "Error should be ErrTemplateNotFound")
	assert.Nil(t, tpl)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListTemplatesByCategory(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	categoryID := int64(3)

	rows := sqlmock.NewRows(templateRowColumns()).
		AddRow(int64(1), categoryID, "brand", "Brand", "enum", true, true, int32(0), "{AMD,Intel}", nil, nil, nil, now, now).
		AddRow(int64(2), categoryID, "core_count", "Core Count", "number", true, true, int32(1), "{}", nil, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM catalog.category_spec_templates`)).
		WithArgs(categoryID).
		WillReturnRows(rows)

	templates, err := store.ListTemplatesByCategory(context.Background(), categoryID)

	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "brand", templates[0].Name)
	assert.Equal(t, []string{"AMD", "Intel"}, templates[0].EnumValues)
	assert.Equal(t, "core_count", templates[1].Name)
	assert.Equal(t, domain.DataTypeNumber, templates[1].DataType)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CountTemplatesByCategory(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	categoryID := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM catalog.category_spec_templates WHERE category_id = $1;`)).
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := store.CountTemplatesByCategory(context.Background(), categoryID)

	require.NoError(t, err)
	assert.Equal(t, 7, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteTemplate_Success(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	templateID := int64(1)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.category_spec_templates WHERE id = $1;`)).
		WithArgs(templateID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.DeleteTemplate(context.Background(), templateID)

	require.NoError(t, err, "DeleteTemplate should not return an error on success")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteTemplate_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	templateID := int64(99)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.category_spec_templates WHERE id = $1;`)).
		WithArgs(templateID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteTemplate(context.Background(), templateID)

	require.Error(t, err, "DeleteTemplate should return an error if no rows were affected")
	assert.True(t, errors.Is(err, ErrTemplateNotFound), "Error should be ErrTemplateNotFound")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceTemplatesForCategory(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	categoryID := int64(3)
	tpls := []domain.SpecTemplate{
		{Name: "brand", DisplayName: "Brand", DataType: domain.DataTypeText, IsRequired: true, DisplayOrder: 0},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.category_spec_templates WHERE category_id = $1;`)).
		WithArgs(categoryID).
		WillReturnResult(sqlmock.NewResult(0, 4))

	insertRows := sqlmock.NewRows(templateRowColumns()).
		AddRow(int64(20), categoryID, "brand", "Brand", "text", true, false, int32(0), "{}", nil, nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(insertTemplateFragment)).
		WithArgs(categoryID, tpls[0].Name, tpls[0].DisplayName, tpls[0].DataType,
			tpls[0].IsRequired, tpls[0].IsFilter, tpls[0].DisplayOrder,
			pq.Array(tpls[0].EnumValues), tpls[0].Unit, tpls[0].Placeholder, tpls[0].HelpText).
		WillReturnRows(insertRows)
	mock.ExpectCommit()

	created, err := store.ReplaceTemplatesForCategory(context.Background(), categoryID, tpls)

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(20), created[0].ID)
	assert.Equal(t, categoryID, created[0].CategoryID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceTemplatesForCategory_EmptySet(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	categoryID := int64(3)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.category_spec_templates WHERE category_id = $1;`)).
		WithArgs(categoryID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	created, err := store.ReplaceTemplatesForCategory(context.Background(), categoryID, nil)

	require.NoError(t, err, "Replacing with an empty set clears the category's templates")
	assert.Empty(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceTemplatesForCategory_InsertFailureRollsBack(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	categoryID := int64(3)
	tpls := []domain.SpecTemplate{
		{Name: "brand", DisplayName: "Brand", DataType: domain.DataTypeText},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM catalog.category_spec_templates WHERE category_id = $1;`)).
		WithArgs(categoryID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(insertTemplateFragment)).
		WithArgs(categoryID, tpls[0].Name, tpls[0].DisplayName, tpls[0].DataType,
			tpls[0].IsRequired, tpls[0].IsFilter, tpls[0].DisplayOrder,
			pq.Array(tpls[0].EnumValues), tpls[0].Unit, tpls[0].Placeholder, tpls[0].HelpText).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	created, err := store.ReplaceTemplatesForCategory(context.Background(), categoryID, tpls)

	require.Error(t, err)
	assert.Nil(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}
