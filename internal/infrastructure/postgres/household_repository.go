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

var _ repository.HouseholdRepository = (*HouseholdRepo)(nil)

// HouseholdRepo implementación del puerto HouseholdRepository sobre PostgreSQL.
type HouseholdRepo struct {
	q Querier
}

// NewHouseholdRepository construye el adaptador de persistencia de hogares.
func NewHouseholdRepository(q Querier) *HouseholdRepo {
	return &HouseholdRepo{q: q}
}

// Create persiste un hogar nuevo. El nombre es único.
func (r *HouseholdRepo) Create(ctx context.Context, h *entity.Household) error {
	query := `
		INSERT INTO households (id, name, access_code_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, h.ID, h.Name, h.AccessCodeHash, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrHouseholdExists
		}
		return fmt.Errorf("insert household: %w", err)
	}
	return nil
}

// GetByID obtiene un hogar por ID. Devuelve nil, nil si no existe.
func (r *HouseholdRepo) GetByID(ctx context.Context, id string) (*entity.Household, error) {
	query := `
		SELECT id, name, access_code_hash, created_at, updated_at
		FROM households WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByName obtiene un hogar por nombre exacto. Devuelve nil, nil si no existe.
func (r *HouseholdRepo) GetByName(ctx context.Context, name string) (*entity.Household, error) {
	query := `
		SELECT id, name, access_code_hash, created_at, updated_at
		FROM households WHERE name = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, name))
}

func (r *HouseholdRepo) scanOne(row pgx.Row) (*entity.Household, error) {
	var h entity.Household
	err := row.Scan(&h.ID, &h.Name, &h.AccessCodeHash, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get household: %w", err)
	}
	return &h, nil
}
