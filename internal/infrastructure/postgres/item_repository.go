package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/despensa-api/internal/domain"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// itemColumns columnas en el orden de scanItem. Los lotes y las ubicaciones
// heredadas viajan como JSONB dentro de la fila del producto.
const itemColumns = `id, household_id, name, category_id, supermarket, unit, is_basic, min_threshold, no_expiry, batches, legacy_locations, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para productos de despensa.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Find pagina productos; householdID vacío recorre todos los hogares.
func (r *ItemRepo) Find(ctx context.Context, householdID string, skip, limit int) ([]*entity.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pantry_items
		WHERE ($1 = '' OR household_id = $1)
		ORDER BY created_at, id LIMIT $2 OFFSET $3`, itemColumns)
	rows, err := r.q.Query(ctx, query, householdID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM pantry_items WHERE id = $1`, itemColumns)
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByName busca por nombre dentro de un hogar, insensible a mayúsculas.
// Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByName(ctx context.Context, householdID, name string) (*entity.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pantry_items
		WHERE household_id = $1 AND lower(name) = lower(trim($2))`, itemColumns)
	item, err := scanItem(r.q.QueryRow(ctx, query, householdID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return item, nil
}

// ListByHousehold lista todos los productos de un hogar.
func (r *ItemRepo) ListByHousehold(ctx context.Context, householdID string) ([]*entity.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pantry_items
		WHERE household_id = $1 ORDER BY lower(name)`, itemColumns)
	rows, err := r.q.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// Save hace upsert del producto completo, lotes incluidos, y devuelve la fila persistida.
func (r *ItemRepo) Save(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	query := fmt.Sprintf(`
		INSERT INTO pantry_items (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category_id = EXCLUDED.category_id,
			supermarket = EXCLUDED.supermarket,
			unit = EXCLUDED.unit,
			is_basic = EXCLUDED.is_basic,
			min_threshold = EXCLUDED.min_threshold,
			no_expiry = EXCLUDED.no_expiry,
			batches = EXCLUDED.batches,
			legacy_locations = EXCLUDED.legacy_locations,
			updated_at = EXCLUDED.updated_at
		RETURNING %s`, itemColumns, itemColumns)
	saved, err := scanItem(r.q.QueryRow(ctx, query,
		item.ID, item.HouseholdID, item.Name, item.CategoryID, item.Supermarket,
		item.Unit, item.IsBasic, item.MinThreshold, item.NoExpiry,
		item.Batches, item.Locations, item.CreatedAt, item.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("save item: %w", err)
	}
	return saved, nil
}

// Delete elimina un producto. Devuelve false si no existía.
func (r *ItemRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pantry_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// scanItem escanea una fila de pantry_items en el orden de itemColumns.
// pgx decodifica las columnas JSONB directamente en los slices de lotes.
func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.HouseholdID, &it.Name, &it.CategoryID, &it.Supermarket,
		&it.Unit, &it.IsBasic, &it.MinThreshold, &it.NoExpiry,
		&it.Batches, &it.Locations, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
