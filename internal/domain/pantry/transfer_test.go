package pantry_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
)

func batch(id, location, expiry, qty string) entity.Batch {
	return entity.Batch{
		BatchID:        id,
		LocationID:     location,
		ExpirationDate: expiry,
		Quantity:       dec(qty),
	}
}

func total(batches []entity.Batch) decimal.Decimal {
	return pantry.SumQuantities(batches)
}

func TestMoveBatches_ConservaLaCantidadTotal(t *testing.T) {
	source := []entity.Batch{
		batch("a", "despensa", "2024-03-01", "2"),
		batch("b", "despensa", "2024-02-01", "5"),
	}
	dest := []entity.Batch{
		batch("c", "nevera", "2024-04-01", "1"),
	}
	before := total(source).Add(total(dest))

	res := pantry.MoveBatches(pantry.MoveInput{
		Source:              source,
		Destination:         dest,
		Amount:              dec("4"),
		DestinationLocation: "nevera",
	})

	after := total(res.RemainingSource).Add(total(res.NextDestination))
	assert.True(t, before.Equal(after), "antes=%s después=%s", before, after)
	assert.True(t, total(res.Moved).Equal(dec("4")))
}

func TestMoveBatches_RechazoTodoONada(t *testing.T) {
	source := []entity.Batch{batch("a", "despensa", "2024-02-01", "3")}
	dest := []entity.Batch{batch("b", "nevera", "", "1")}

	for _, amount := range []string{"0", "3.5", "-1"} {
		res := pantry.MoveBatches(pantry.MoveInput{
			Source:      source,
			Destination: dest,
			Amount:      dec(amount),
		})
		assert.Empty(t, res.Moved, "amount=%s", amount)
		assert.Equal(t, source, res.RemainingSource, "amount=%s", amount)
		assert.Equal(t, dest, res.NextDestination, "amount=%s", amount)
	}
}

func TestMoveBatches_ParteElLoteYConservaElVencimiento(t *testing.T) {
	source := []entity.Batch{batch("a", "despensa", "2024-02-01", "5")}

	res := pantry.MoveBatches(pantry.MoveInput{
		Source:              source,
		Amount:              dec("3"),
		DestinationLocation: "nevera",
	})

	require.Len(t, res.Moved, 1)
	moved := res.Moved[0]
	assert.Equal(t, "2024-02-01", moved.ExpirationDate, "partir no inventa fecha")
	assert.NotEqual(t, "a", moved.BatchID, "la porción movida es un lote nuevo")
	assert.Equal(t, "nevera", moved.LocationID)
	assert.True(t, moved.Quantity.Equal(dec("3")))

	require.Len(t, res.RemainingSource, 1)
	assert.Equal(t, "a", res.RemainingSource[0].BatchID)
	assert.True(t, res.RemainingSource[0].Quantity.Equal(dec("2")))
}

func TestMoveBatches_ConsumePrimeroLoQueVenceAntes(t *testing.T) {
	source := []entity.Batch{
		batch("sin-fecha", "despensa", "", "4"),
		batch("tarde", "despensa", "2024-06-01", "4"),
		batch("pronto", "despensa", "2024-02-01", "4"),
	}

	res := pantry.MoveBatches(pantry.MoveInput{
		Source:              source,
		Amount:              dec("6"),
		DestinationLocation: "nevera",
	})

	// 4 del lote que vence primero y 2 del siguiente; el sin fecha queda intacto.
	require.Len(t, res.Moved, 2)
	assert.Equal(t, "2024-02-01", res.Moved[0].ExpirationDate)
	assert.Equal(t, "2024-06-01", res.Moved[1].ExpirationDate)
	assert.True(t, res.Moved[1].Quantity.Equal(dec("2")))

	remaining := map[string]string{}
	for _, b := range res.RemainingSource {
		remaining[b.ExpirationDate] = b.Quantity.String()
	}
	assert.Equal(t, "4", remaining[""], "el lote sin fecha se consume de último")
	assert.Equal(t, "2", remaining["2024-06-01"])
}

func TestMoveBatches_FusionaEnElDestino(t *testing.T) {
	source := []entity.Batch{batch("a", "despensa", "2024-02-01", "3")}
	dest := []entity.Batch{batch("b", "nevera", "2024-02-01", "1")}

	res := pantry.MoveBatches(pantry.MoveInput{
		Source:              source,
		Destination:         dest,
		Amount:              dec("3"),
		DestinationLocation: "nevera",
	})

	require.Len(t, res.NextDestination, 1, "misma ubicación y fecha se combinan")
	assert.True(t, res.NextDestination[0].Quantity.Equal(dec("4")))
	assert.Empty(t, res.RemainingSource)
}

func TestConsumeFIFO_TopaEnCero(t *testing.T) {
	batches := []entity.Batch{
		batch("a", "despensa", "2024-02-01", "2"),
		batch("b", "despensa", "", "1"),
	}

	consumed, remaining := pantry.ConsumeFIFO(batches, dec("10"))
	assert.True(t, consumed.Equal(dec("3")), "consume todo lo disponible")
	assert.Empty(t, remaining, "nunca queda cantidad negativa")
}

func TestConsumeFIFO_CantidadNoPositivaNoHaceNada(t *testing.T) {
	batches := []entity.Batch{batch("a", "despensa", "2024-02-01", "2")}

	consumed, remaining := pantry.ConsumeFIFO(batches, decimal.Zero)
	assert.True(t, consumed.IsZero())
	assert.Equal(t, batches, remaining)
}

func TestConsumeFIFO_ParteElLote(t *testing.T) {
	batches := []entity.Batch{
		batch("pronto", "despensa", "2024-02-01", "2"),
		batch("tarde", "despensa", "2024-06-01", "5"),
	}

	consumed, remaining := pantry.ConsumeFIFO(batches, dec("3"))
	assert.True(t, consumed.Equal(dec("3")))
	require.Len(t, remaining, 1)
	assert.Equal(t, "tarde", remaining[0].BatchID)
	assert.True(t, remaining[0].Quantity.Equal(dec("4")))
}
