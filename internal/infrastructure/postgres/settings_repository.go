package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/despensa-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo almacén clave/valor de banderas de la aplicación.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de banderas.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetFlag devuelve el valor de la bandera; false si no existe.
func (r *SettingsRepo) GetFlag(ctx context.Context, key string) (bool, error) {
	var value bool
	err := r.q.QueryRow(ctx,
		`SELECT value FROM app_settings WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get flag %s: %w", key, err)
	}
	return value, nil
}

// SetFlag hace upsert de la bandera.
func (r *SettingsRepo) SetFlag(ctx context.Context, key string, value bool) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO app_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
	if err != nil {
		return fmt.Errorf("set flag %s: %w", key, err)
	}
	return nil
}
