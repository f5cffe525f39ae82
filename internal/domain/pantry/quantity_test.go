package pantry_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNumberOrZero_NoFinitos(t *testing.T) {
	assert.True(t, pantry.NumberOrZero(math.NaN()).IsZero())
	assert.True(t, pantry.NumberOrZero(math.Inf(1)).IsZero())
	assert.True(t, pantry.NumberOrZero(math.Inf(-1)).IsZero())
	assert.True(t, pantry.NumberOrZero(1.5).Equal(dec("1.5")))
}

func TestSumQuantities_SumaRedondeada(t *testing.T) {
	batches := []entity.Batch{
		{Quantity: dec("0.105")}, // redondea a 0.11 (banker's a 2 decimales)
		{Quantity: dec("2")},
		{Quantity: dec("0.9")},
	}
	total := pantry.SumQuantities(batches)
	assert.True(t, total.Equal(dec("3.01")), "total = %s", total)

	assert.True(t, pantry.SumQuantities(nil).IsZero())
}

func TestParseExpiry(t *testing.T) {
	tt, ok := pantry.ParseExpiry("2024-06-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), tt)

	// Timestamps completos de documentos viejos: se toma solo el día.
	tt, ok = pantry.ParseExpiry("2024-06-15T18:30:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), tt)

	_, ok = pantry.ParseExpiry("")
	assert.False(t, ok)
	_, ok = pantry.ParseExpiry("no-es-fecha")
	assert.False(t, ok)
}

func TestMergeBatchesByExpiry_FusionaPorUbicacionYFecha(t *testing.T) {
	batches := []entity.Batch{
		{BatchID: "a", Quantity: dec("2"), ExpirationDate: "2024-06-15", LocationID: "despensa"},
		{BatchID: "b", Quantity: dec("1"), ExpirationDate: "2024-06-15", LocationID: "nevera"},
		{BatchID: "c", Quantity: dec("3"), ExpirationDate: "2024-06-15", LocationID: "despensa", Opened: true},
	}
	merged := pantry.MergeBatchesByExpiry(batches)
	require.Len(t, merged, 2)

	// Orden de primera aparición: despensa primero.
	assert.Equal(t, "a", merged[0].BatchID)
	assert.True(t, merged[0].Quantity.Equal(dec("5")))
	assert.True(t, merged[0].Opened, "opened se hereda de cualquier lote aportante")
	assert.Equal(t, "nevera", merged[1].LocationID)
}

func TestMergeBatchesByExpiry_SinFechaNuncaSeFusionan(t *testing.T) {
	batches := []entity.Batch{
		{BatchID: "a", Quantity: dec("1"), LocationID: "despensa"},
		{BatchID: "b", Quantity: dec("1"), LocationID: "despensa"},
	}
	merged := pantry.MergeBatchesByExpiry(batches)
	assert.Len(t, merged, 2, "la ausencia de fecha no implica identidad compartida")
}

func TestMergeBatchesByExpiry_EsIdempotente(t *testing.T) {
	batches := []entity.Batch{
		{BatchID: "a", Quantity: dec("2"), ExpirationDate: "2024-06-15", LocationID: "despensa"},
		{BatchID: "b", Quantity: dec("3"), ExpirationDate: "2024-06-15", LocationID: "despensa"},
		{BatchID: "c", Quantity: dec("1"), LocationID: "nevera"},
	}
	once := pantry.MergeBatchesByExpiry(batches)
	twice := pantry.MergeBatchesByExpiry(once)
	assert.Equal(t, once, twice)
}

func TestMergeBatchesByExpiry_NoMutaLaEntrada(t *testing.T) {
	batches := []entity.Batch{
		{BatchID: "a", Quantity: dec("2"), ExpirationDate: "2024-06-15", LocationID: "despensa"},
		{BatchID: "b", Quantity: dec("3"), ExpirationDate: "2024-06-15", LocationID: "despensa"},
	}
	_ = pantry.MergeBatchesByExpiry(batches)
	assert.True(t, batches[0].Quantity.Equal(dec("2")), "la entrada no debe mutarse")
}

func TestMergeBatchesByExpiry_NormalizaUbicacionVacia(t *testing.T) {
	merged := pantry.MergeBatchesByExpiry([]entity.Batch{
		{BatchID: "a", Quantity: dec("1"), ExpirationDate: "2024-06-15", LocationID: "  "},
	})
	require.Len(t, merged, 1)
	assert.Equal(t, entity.LocationUnassigned, merged[0].LocationID)
}

func TestPruneEmptyBatches(t *testing.T) {
	pruned := pantry.PruneEmptyBatches([]entity.Batch{
		{BatchID: "a", Quantity: dec("0")},
		{BatchID: "b", Quantity: dec("-1")},
		{BatchID: "c", Quantity: dec("0.5")},
	})
	require.Len(t, pruned, 1)
	assert.Equal(t, "c", pruned[0].BatchID)
}

func TestEarliestExpiry(t *testing.T) {
	batches := []entity.Batch{
		{ExpirationDate: "2024-07-01"},
		{ExpirationDate: ""},
		{ExpirationDate: "2024-06-15"},
	}
	earliest, ok := pantry.EarliestExpiry(batches)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), earliest)

	_, ok = pantry.EarliestExpiry([]entity.Batch{{ExpirationDate: ""}})
	assert.False(t, ok)
}
