package pantry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
	"github.com/jcastano/despensa-api/internal/domain/entity"
)

func TestExpiryScan_RegistraSoloVencidosYNoRepite(t *testing.T) {
	itemRepo := newFakeItemRepo()
	eventRepo := &fakeEventRepo{}
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextMonth := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	_, err := itemRepo.Save(ctx, &entity.Item{
		ID:          "item-1",
		HouseholdID: "hogar-1",
		Name:        "Yogur",
		Batches: []entity.Batch{
			{BatchID: "vencido", LocationID: "nevera", ExpirationDate: yesterday, Quantity: dec("2")},
			{BatchID: "fresco", LocationID: "nevera", ExpirationDate: nextMonth, Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	// Producto "no vence": sus fechas sueltas no generan eventos.
	_, err = itemRepo.Save(ctx, &entity.Item{
		ID:          "item-2",
		HouseholdID: "hogar-1",
		Name:        "Sal",
		NoExpiry:    true,
		Batches: []entity.Batch{
			{BatchID: "x", LocationID: "despensa", ExpirationDate: yesterday, Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	scan := apppantry.NewExpiryScanUseCase(itemRepo, eventRepo, 3)

	added, err := scan.Run(ctx, "hogar-1")
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	expires := eventRepo.byType(entity.EventTypeEXPIRE)
	require.Len(t, expires, 1)
	assert.Equal(t, "item-1", expires[0].ProductID)
	assert.Equal(t, "vencido", expires[0].BatchID)

	// Segunda pasada: el mismo lote físico no vuelve al historial.
	added, err = scan.Run(ctx, "hogar-1")
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Len(t, eventRepo.byType(entity.EventTypeEXPIRE), 1)
}
