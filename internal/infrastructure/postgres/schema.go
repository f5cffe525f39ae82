package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas si no existen. El esquema es deliberadamente
// plano: los lotes y las ubicaciones heredadas viven como JSONB dentro de la
// fila del producto, que se lee y escribe siempre como documento completo.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS households (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL UNIQUE,
			access_code_hash TEXT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pantry_items (
			id               TEXT PRIMARY KEY,
			household_id     TEXT NOT NULL REFERENCES households(id),
			name             TEXT NOT NULL,
			category_id      TEXT NOT NULL DEFAULT '',
			supermarket      TEXT NOT NULL DEFAULT '',
			unit             TEXT NOT NULL DEFAULT '',
			is_basic         BOOLEAN NOT NULL DEFAULT FALSE,
			min_threshold    NUMERIC NOT NULL DEFAULT 0,
			no_expiry        BOOLEAN NOT NULL DEFAULT FALSE,
			batches          JSONB NOT NULL DEFAULT '[]',
			legacy_locations JSONB,
			created_at       TIMESTAMPTZ NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS pantry_items_household_name
			ON pantry_items (household_id, lower(name))`,
		`CREATE TABLE IF NOT EXISTS pantry_events (
			id                TEXT PRIMARY KEY,
			household_id      TEXT NOT NULL,
			event_type        TEXT NOT NULL,
			product_id        TEXT NOT NULL,
			product_name      TEXT NOT NULL,
			quantity          NUMERIC NOT NULL DEFAULT 0,
			delta_quantity    NUMERIC NOT NULL DEFAULT 0,
			previous_quantity NUMERIC NOT NULL DEFAULT 0,
			next_quantity     NUMERIC NOT NULL DEFAULT 0,
			unit              TEXT NOT NULL DEFAULT '',
			batch_id          TEXT NOT NULL DEFAULT '',
			expiration_date   TEXT NOT NULL DEFAULT '',
			source            TEXT NOT NULL DEFAULT '',
			timestamp         TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS pantry_events_household_type
			ON pantry_events (household_id, event_type)`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key   TEXT PRIMARY KEY,
			value BOOLEAN NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
