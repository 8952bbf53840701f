package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"catalog-spec-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrCategoryNotFound      = errors.New("store: category not found")
	ErrProductNotFound       = errors.New("store: product not found")
	ErrTemplateNotFound      = errors.New("store: specification template not found")
	ErrTemplateNameExists    = errors.New("store: template name already exists for this category")
	ErrSpecificationNotFound = errors.New("store: product specification not found")
)

// PostgresStore implements the TemplateStorer, SpecificationStorer and
// CatalogStorer interfaces using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const templateColumns = `id, category_id, name, display_name, data_type, is_required, is_filter, display_order, enum_values, unit, placeholder, help_text, created_at, updated_at`

const specColumns = `id, product_id, template_id, name, display_name, value, data_type, is_required, is_filter, display_order, enum_values, unit, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.SpecTemplate, error) {
	var tpl domain.SpecTemplate
	var enumValues pq.StringArray
	err := row.Scan(
		&tpl.ID, &tpl.CategoryID, &tpl.Name, &tpl.DisplayName, &tpl.DataType,
		&tpl.IsRequired, &tpl.IsFilter, &tpl.DisplayOrder, &enumValues,
		&tpl.Unit, &tpl.Placeholder, &tpl.HelpText,
		&tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	tpl.EnumValues = []string(enumValues)
	return &tpl, nil
}

func scanProductSpec(row rowScanner) (*domain.ProductSpec, error) {
	var spec domain.ProductSpec
	var enumValues pq.StringArray
	err := row.Scan(
		&spec.ID, &spec.ProductID, &spec.TemplateID, &spec.Name, &spec.DisplayName,
		&spec.Value, &spec.DataType, &spec.IsRequired, &spec.IsFilter,
		&spec.DisplayOrder, &enumValues, &spec.Unit,
		&spec.CreatedAt, &spec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	spec.EnumValues = []string(enumValues)
	return &spec, nil
}

func isTemplateNameConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // Unique violation
		return strings.Contains(pqErr.Constraint, "category_spec_templates_category_id_name_key") ||
			strings.Contains(pqErr.Detail, "Key (category_id, name)")
	}
	return false
}

// --- TemplateStorer Implementation ---

func (s *PostgresStore) CreateTemplate(ctx context.Context, tpl *domain.SpecTemplate) (*domain.SpecTemplate, error) {
	query := `
		INSERT INTO catalog.category_spec_templates
			(category_id, name, display_name, data_type, is_required, is_filter, display_order, enum_values, unit, placeholder, help_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + templateColumns + `;
	`
	row := s.db.QueryRowContext(ctx, query,
		tpl.CategoryID, tpl.Name, tpl.DisplayName, tpl.DataType, tpl.IsRequired,
		tpl.IsFilter, tpl.DisplayOrder, pq.Array(tpl.EnumValues), tpl.Unit, tpl.Placeholder, tpl.HelpText,
	)

	created, err := scanTemplate(row)
	if err != nil {
		if isTemplateNameConflict(err) {
			return nil, ErrTemplateNameExists
		}
		return nil, fmt.Errorf("store: CreateTemplate failed to scan row: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) CreateTemplates(ctx context.Context, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error) {
	if len(tpls) == 0 {
		return []domain.SpecTemplate{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: CreateTemplates failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op once committed.

	created, err := insertTemplatesTx(ctx, tx, categoryID, tpls)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: CreateTemplates failed to commit: %w", err)
	}
	return created, nil
}

func insertTemplatesTx(ctx context.Context, tx *sql.Tx, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error) {
	query := `
		INSERT INTO catalog.category_spec_templates
			(category_id, name, display_name, data_type, is_required, is_filter, display_order, enum_values, unit, placeholder, help_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + templateColumns + `;
	`
	created := make([]domain.SpecTemplate, 0, len(tpls))
	for i := range tpls {
		tpl := &tpls[i]
		row := tx.QueryRowContext(ctx, query,
			categoryID, tpl.Name, tpl.DisplayName, tpl.DataType, tpl.IsRequired,
			tpl.IsFilter, tpl.DisplayOrder, pq.Array(tpl.EnumValues), tpl.Unit, tpl.Placeholder, tpl.HelpText,
		)
		inserted, err := scanTemplate(row)
		if err != nil {
			if isTemplateNameConflict(err) {
				return nil, ErrTemplateNameExists
			}
			return nil, fmt.Errorf("store: bulk template insert failed at %q: %w", tpl.Name, err)
		}
		created = append(created, *inserted)
	}
	return created, nil
}

func (s *PostgresStore) GetTemplateByID(ctx context.Context, id int64) (*domain.SpecTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM catalog.category_spec_templates
		WHERE id = $1;
	`
	tpl, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("store: GetTemplateByID failed to scan row: %w", err)
	}
	return tpl, nil
}

func (s *PostgresStore) ListTemplatesByCategory(ctx context.Context, categoryID int64) ([]domain.SpecTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM catalog.category_spec_templates
		WHERE category_id = $1
		ORDER BY display_order ASC, id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("store: ListTemplatesByCategory failed to query templates: %w", err)
	}
	defer rows.Close()

	templates := make([]domain.SpecTemplate, 0)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListTemplatesByCategory failed to scan template row: %w", err)
		}
		templates = append(templates, *tpl)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListTemplatesByCategory iteration error: %w", err)
	}
	return templates, nil
}

func (s *PostgresStore) CountTemplatesByCategory(ctx context.Context, categoryID int64) (int, error) {
	query := `SELECT COUNT(*) FROM catalog.category_spec_templates WHERE category_id = $1;`
	var count int
	if err := s.db.QueryRowContext(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("store: CountTemplatesByCategory failed to count templates: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) UpdateTemplate(ctx context.Context, tpl *domain.SpecTemplate) (*domain.SpecTemplate, error) {
	query := `
		UPDATE catalog.category_spec_templates
		SET name = $1, display_name = $2, data_type = $3, is_required = $4, is_filter = $5,
			display_order = $6, enum_values = $7, unit = $8, placeholder = $9, help_text = $10,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING ` + templateColumns + `;
	`
	row := s.db.QueryRowContext(ctx, query,
		tpl.Name, tpl.DisplayName, tpl.DataType, tpl.IsRequired, tpl.IsFilter,
		tpl.DisplayOrder, pq.Array(tpl.EnumValues), tpl.Unit, tpl.Placeholder, tpl.HelpText,
		tpl.ID,
	)
	updated, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		if isTemplateNameConflict(err) {
			return nil, ErrTemplateNameExists
		}
		return nil, fmt.Errorf("store: UpdateTemplate failed to scan row: %w", err)
	}
	return updated, nil
}

// DeleteTemplate removes a single template row. Product specification rows
// sharing the template's name keep their values; they become ad-hoc.
func (s *PostgresStore) DeleteTemplate(ctx context.Context, id int64) error {
	query := `DELETE FROM catalog.category_spec_templates WHERE id = $1;`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("store: DeleteTemplate failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteTemplate failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *PostgresStore) ReplaceTemplatesForCategory(ctx context.Context, categoryID int64, tpls []domain.SpecTemplate) ([]domain.SpecTemplate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: ReplaceTemplatesForCategory failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM catalog.category_spec_templates WHERE category_id = $1;`
	if _, err := tx.ExecContext(ctx, deleteQuery, categoryID); err != nil {
		return nil, fmt.Errorf("store: ReplaceTemplatesForCategory failed to delete existing templates: %w", err)
	}

	created := []domain.SpecTemplate{}
	if len(tpls) > 0 {
		created, err = insertTemplatesTx(ctx, tx, categoryID, tpls)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: ReplaceTemplatesForCategory failed to commit: %w", err)
	}
	return created, nil
}

// --- SpecificationStorer Implementation ---

func (s *PostgresStore) GetSpecByID(ctx context.Context, id int64) (*domain.ProductSpec, error) {
	query := `
		SELECT ` + specColumns + `
		FROM catalog.product_specifications
		WHERE id = $1;
	`
	spec, err := scanProductSpec(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpecificationNotFound
		}
		return nil, fmt.Errorf("store: GetSpecByID failed to scan row: %w", err)
	}
	return spec, nil
}

func (s *PostgresStore) ListSpecsByProduct(ctx context.Context, productID int64) ([]domain.ProductSpec, error) {
	query := `
		SELECT ` + specColumns + `
		FROM catalog.product_specifications
		WHERE product_id = $1
		ORDER BY display_order ASC, id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("store: ListSpecsByProduct failed to query specifications: %w", err)
	}
	defer rows.Close()

	specs := make([]domain.ProductSpec, 0)
	for rows.Next() {
		spec, err := scanProductSpec(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListSpecsByProduct failed to scan specification row: %w", err)
		}
		specs = append(specs, *spec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListSpecsByProduct iteration error: %w", err)
	}
	return specs, nil
}

func (s *PostgresStore) ListSpecsByProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductSpec, error) {
	result := make(map[int64][]domain.ProductSpec, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + specColumns + `
		FROM catalog.product_specifications
		WHERE product_id = ANY($1)
		ORDER BY product_id ASC, display_order ASC, id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("store: ListSpecsByProducts failed to query specifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		spec, err := scanProductSpec(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListSpecsByProducts failed to scan specification row: %w", err)
		}
		result[spec.ProductID] = append(result[spec.ProductID], *spec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListSpecsByProducts iteration error: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) ReplaceSpecsForProduct(ctx context.Context, productID int64, specs []domain.ProductSpec) ([]domain.ProductSpec, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: ReplaceSpecsForProduct failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM catalog.product_specifications WHERE product_id = $1;`
	if _, err := tx.ExecContext(ctx, deleteQuery, productID); err != nil {
		return nil, fmt.Errorf("store: ReplaceSpecsForProduct failed to delete existing specifications: %w", err)
	}

	insertQuery := `
		INSERT INTO catalog.product_specifications
			(product_id, template_id, name, display_name, value, data_type, is_required, is_filter, display_order, enum_values, unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + specColumns + `;
	`
	created := make([]domain.ProductSpec, 0, len(specs))
	for i := range specs {
		spec := &specs[i]
		row := tx.QueryRowContext(ctx, insertQuery,
			productID, spec.TemplateID, spec.Name, spec.DisplayName, spec.Value,
			spec.DataType, spec.IsRequired, spec.IsFilter, spec.DisplayOrder,
			pq.Array(spec.EnumValues), spec.Unit,
		)
		inserted, err := scanProductSpec(row)
		if err != nil {
			return nil, fmt.Errorf("store: ReplaceSpecsForProduct failed to insert %q: %w", spec.Name, err)
		}
		created = append(created, *inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: ReplaceSpecsForProduct failed to commit: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) UpdateSpec(ctx context.Context, spec *domain.ProductSpec) (*domain.ProductSpec, error) {
	query := `
		UPDATE catalog.product_specifications
		SET name = $1, display_name = $2, value = $3, data_type = $4, is_required = $5,
			is_filter = $6, display_order = $7, enum_values = $8, unit = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING ` + specColumns + `;
	`
	row := s.db.QueryRowContext(ctx, query,
		spec.Name, spec.DisplayName, spec.Value, spec.DataType, spec.IsRequired,
		spec.IsFilter, spec.DisplayOrder, pq.Array(spec.EnumValues), spec.Unit,
		spec.ID,
	)
	updated, err := scanProductSpec(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpecificationNotFound
		}
		return nil, fmt.Errorf("store: UpdateSpec failed to scan row: %w", err)
	}
	return updated, nil
}

// --- CatalogStorer Implementation ---

func (s *PostgresStore) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM catalog.categories
		WHERE id = $1;
	`
	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: GetCategoryByID failed to scan row: %w", err)
	}
	return &category, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM catalog.categories
		ORDER BY name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	query := `
		SELECT id, name, sku, price, category_id, is_active, created_at, updated_at
		FROM catalog.products
		WHERE category_id = $1 AND is_active = TRUE
		ORDER BY name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("store: ListProductsByCategory failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.CategoryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListProductsByCategory failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProductsByCategory iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	query := `
		SELECT id, name, sku, price, category_id, is_active, created_at, updated_at
		FROM catalog.products
		WHERE id = ANY($1);
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("store: GetProductsByIDs failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, len(ids))
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.CategoryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: GetProductsByIDs failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: GetProductsByIDs iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		err := s.db.Close()
		if err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
		log.Println("INFO: Database connection pool closed successfully.")
		return nil
	}
	return nil
}
