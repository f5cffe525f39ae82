package repository

import (
	"context"

	"github.com/jcastano/despensa-api/internal/domain/entity"
)

// EventRepository puerto del libro de eventos. Solo agrega y lee; el log es
// append-only por contrato: la aplicación nunca actualiza ni borra eventos.
type EventRepository interface {
	Append(ctx context.Context, event *entity.Event) error
	List(ctx context.Context, householdID string, limit, offset int) ([]*entity.Event, error)
	// ListByType filtra por tipo de evento (p. ej. EXPIRE para la
	// deduplicación del escaneo de vencidos).
	ListByType(ctx context.Context, householdID, eventType string) ([]*entity.Event, error)
}
