package pantry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
	"github.com/jcastano/despensa-api/internal/domain/repository"
	"github.com/jcastano/despensa-api/pkg/logger"
)

// migrationFlagKey bandera de idempotencia de la migración de esquema.
const migrationFlagKey = "batch_locations_migrated"

// migrationPageSize tamaño de página del escaneo completo.
const migrationPageSize = 100

// MigrationUseCase reconcilia la generación vieja del esquema (cantidad por
// ubicación, lotes anidados en cada ubicación) con el modelo unificado de
// lotes etiquetados con locationId. Corre una vez al arranque, antes de que
// el resto del dominio opere sobre los documentos.
//
// Es segura frente a lecturas concurrentes (solo agrega/normaliza, nunca
// borra contenido visible) y segura de re-ejecutar: el guard de lotes ya
// etiquetados hace que una segunda pasada sea no-op.
type MigrationUseCase struct {
	itemRepo     repository.ItemRepository
	settingsRepo repository.SettingsRepository
	log          *logger.Logger
}

// NewMigrationUseCase construye el caso de uso de migración.
func NewMigrationUseCase(itemRepo repository.ItemRepository, settingsRepo repository.SettingsRepository, log *logger.Logger) *MigrationUseCase {
	return &MigrationUseCase{itemRepo: itemRepo, settingsRepo: settingsRepo, log: log}
}

// Run ejecuta la pasada completa paginada. La bandera de completitud solo se
// persiste cuando TODOS los documentos calificados migraron sin error; un
// fallo a mitad la deja sin poner para que el próximo arranque reintente.
// Los errores no tumban el arranque: se registran y se devuelven al caller.
func (uc *MigrationUseCase) Run(ctx context.Context) error {
	done, err := uc.settingsRepo.GetFlag(ctx, migrationFlagKey)
	if err != nil {
		return fmt.Errorf("leer bandera de migración: %w", err)
	}
	if done {
		return nil
	}

	migrated, skip := 0, 0
	for {
		page, err := uc.itemRepo.Find(ctx, "", skip, migrationPageSize)
		if err != nil {
			uc.log.Error().Err(err).Int("skip", skip).Msg("migración: escaneo interrumpido; se reintenta en el próximo arranque")
			return fmt.Errorf("migración: escaneo de items: %w", err)
		}
		if len(page) == 0 {
			break
		}
		for _, item := range page {
			if !MigrateItem(item) {
				continue
			}
			if _, err := uc.itemRepo.Save(ctx, item); err != nil {
				uc.log.Error().Err(err).Str("item_id", item.ID).Msg("migración: guardado falló; bandera sin poner")
				return fmt.Errorf("migración: guardar item %s: %w", item.ID, err)
			}
			migrated++
		}
		skip += len(page)
	}

	if err := uc.settingsRepo.SetFlag(ctx, migrationFlagKey, true); err != nil {
		return fmt.Errorf("persistir bandera de migración: %w", err)
	}
	uc.log.Info().Int("migrados", migrated).Msg("migración de esquema de lotes completada")
	return nil
}

// MigrateItem reescribe in-place un documento de la generación vieja al
// modelo unificado. Devuelve false si el documento ya estaba migrado (guard
// de idempotencia: lotes ya etiquetados con ubicación y sin forma legada).
func MigrateItem(item *entity.Item) bool {
	if len(item.Locations) == 0 && allBatchesTagged(item.Batches) {
		return false
	}

	flattened := make([]entity.Batch, 0, len(item.Batches)+len(item.Locations))
	for _, b := range item.Batches {
		b.LocationID = entity.NormalizeLocationID(b.LocationID)
		flattened = append(flattened, b)
	}

	legacyThreshold := decimal.Zero
	for _, loc := range item.Locations {
		locID := entity.NormalizeLocationID(loc.ID)
		legacyThreshold = legacyThreshold.Add(pantry.RoundQuantity(loc.MinThreshold))

		if len(loc.Batches) == 0 {
			// Ubicación con cantidad suelta y sin lotes: se sintetiza un
			// lote sin vencimiento que la transporta.
			if loc.Quantity == nil {
				continue
			}
			qty := pantry.RoundQuantity(*loc.Quantity)
			if qty.LessThanOrEqual(decimal.Zero) {
				continue
			}
			flattened = append(flattened, entity.Batch{
				BatchID:    uuid.New().String(),
				Quantity:   qty,
				LocationID: locID,
			})
			continue
		}
		for _, b := range loc.Batches {
			if b.BatchID == "" {
				b.BatchID = uuid.New().String()
			}
			b.LocationID = locID
			flattened = append(flattened, b)
		}
	}

	item.Batches = pantry.PruneEmptyBatches(pantry.MergeBatchesByExpiry(flattened))
	item.Locations = nil

	// El umbral a nivel de item gana; si no existía, se suman los umbrales
	// legados por ubicación (el umbral del modelo nuevo es total, no por
	// ubicación).
	if item.MinThreshold.LessThanOrEqual(decimal.Zero) && legacyThreshold.GreaterThan(decimal.Zero) {
		item.MinThreshold = legacyThreshold
	}
	return true
}

func allBatchesTagged(batches []entity.Batch) bool {
	for _, b := range batches {
		if b.LocationID == "" {
			return false
		}
	}
	return true
}
