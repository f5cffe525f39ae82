package repository

import (
	"context"

	"github.com/jcastano/despensa-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia del agregado Item. El almacén se
// consume como un document store mínimo: consulta por selector con
// paginación (skip/limit), upsert y borrado.
type ItemRepository interface {
	// Find pagina todos los items; householdID vacío recorre todos los
	// hogares (escaneo completo de la migración).
	Find(ctx context.Context, householdID string, skip, limit int) ([]*entity.Item, error)
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByName busca por nombre normalizado (insensible a mayúsculas)
	// dentro de un hogar. Devuelve nil, nil si no existe.
	GetByName(ctx context.Context, householdID, name string) (*entity.Item, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*entity.Item, error)
	// Save upsert; devuelve el documento posiblemente revisado.
	Save(ctx context.Context, item *entity.Item) (*entity.Item, error)
	// Delete devuelve false si el documento no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
