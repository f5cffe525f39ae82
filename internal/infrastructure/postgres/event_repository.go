package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

const eventColumns = `id, household_id, event_type, product_id, product_name, quantity, delta_quantity, previous_quantity, next_quantity, unit, batch_id, expiration_date, source, timestamp`

// EventRepo implementación del libro de eventos sobre PostgreSQL. La tabla es
// append-only: este adaptador solo inserta y lee.
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador del libro de eventos.
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

// Append inserta un evento. Nunca actualiza filas existentes.
func (r *EventRepo) Append(ctx context.Context, ev *entity.Event) error {
	query := fmt.Sprintf(`
		INSERT INTO pantry_events (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, eventColumns)
	_, err := r.q.Exec(ctx, query,
		ev.ID, ev.HouseholdID, ev.EventType, ev.ProductID, ev.ProductName,
		ev.Quantity, ev.DeltaQuantity, ev.PreviousQuantity, ev.NextQuantity,
		ev.Unit, ev.BatchID, ev.ExpirationDate, ev.Source, ev.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List devuelve los eventos del hogar, más recientes primero.
func (r *EventRepo) List(ctx context.Context, householdID string, limit, offset int) ([]*entity.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pantry_events
		WHERE household_id = $1
		ORDER BY timestamp DESC LIMIT $2 OFFSET $3`, eventColumns)
	rows, err := r.q.Query(ctx, query, householdID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListByType devuelve todos los eventos de un tipo dentro del hogar.
func (r *EventRepo) ListByType(ctx context.Context, householdID, eventType string) ([]*entity.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pantry_events
		WHERE household_id = $1 AND event_type = $2
		ORDER BY timestamp`, eventColumns)
	rows, err := r.q.Query(ctx, query, householdID, eventType)
	if err != nil {
		return nil, fmt.Errorf("list events by type: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]*entity.Event, error) {
	var list []*entity.Event
	for rows.Next() {
		var ev entity.Event
		if err := rows.Scan(
			&ev.ID, &ev.HouseholdID, &ev.EventType, &ev.ProductID, &ev.ProductName,
			&ev.Quantity, &ev.DeltaQuantity, &ev.PreviousQuantity, &ev.NextQuantity,
			&ev.Unit, &ev.BatchID, &ev.ExpirationDate, &ev.Source, &ev.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}
