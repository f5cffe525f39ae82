package pantry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
	"github.com/jcastano/despensa-api/internal/domain/repository"
)

// ExpiryScanUseCase detecta lotes vencidos y los registra en el libro de
// eventos. La deduplicación usa una clave estable (producto, lote-o-fecha)
// contra los EXPIRE ya registrados: el mismo lote físico no vuelve a
// aparecer en el historial en cada arranque de la app.
type ExpiryScanUseCase struct {
	itemRepo   repository.ItemRepository
	eventRepo  repository.EventRepository
	windowDays int
}

// NewExpiryScanUseCase construye el caso de uso.
func NewExpiryScanUseCase(itemRepo repository.ItemRepository, eventRepo repository.EventRepository, windowDays int) *ExpiryScanUseCase {
	if windowDays <= 0 {
		windowDays = pantry.DefaultExpiryWindowDays
	}
	return &ExpiryScanUseCase{itemRepo: itemRepo, eventRepo: eventRepo, windowDays: windowDays}
}

// Run escanea el inventario del hogar y agrega un evento EXPIRE por cada
// lote vencido aún no registrado. Devuelve cuántos eventos nuevos agregó.
func (uc *ExpiryScanUseCase) Run(ctx context.Context, householdID string) (int, error) {
	logged, err := uc.eventRepo.ListByType(ctx, householdID, entity.EventTypeEXPIRE)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(logged))
	for _, ev := range logged {
		seen[ev.ExpireKey()] = struct{}{}
	}

	items, err := uc.itemRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	added := 0
	for _, item := range items {
		if item.NoExpiry {
			continue
		}
		total := pantry.SumQuantities(item.Batches)
		for _, b := range item.Batches {
			if pantry.ClassifyBatch(b, now, uc.windowDays) != pantry.BatchStatusExpired {
				continue
			}
			ev := &entity.Event{
				ID:               uuid.New().String(),
				HouseholdID:      householdID,
				EventType:        entity.EventTypeEXPIRE,
				ProductID:        item.ID,
				ProductName:      item.Name,
				Quantity:         pantry.RoundQuantity(b.Quantity),
				DeltaQuantity:    decimal.Zero,
				PreviousQuantity: total,
				NextQuantity:     total,
				Unit:             item.Unit,
				BatchID:          b.BatchID,
				ExpirationDate:   b.ExpirationDate,
				Source:           "expiry-scan",
				Timestamp:        now,
			}
			if _, dup := seen[ev.ExpireKey()]; dup {
				continue
			}
			if err := uc.eventRepo.Append(ctx, ev); err != nil {
				return added, err
			}
			seen[ev.ExpireKey()] = struct{}{}
			added++
		}
	}
	return added, nil
}
