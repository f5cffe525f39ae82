package pantry_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
)

// now fijo: 2024-01-10 al mediodía; la clasificación es por día, la hora no
// debe influir.
var now = time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC)

func TestClassifyBatch_FronterasDeVentana(t *testing.T) {
	cases := []struct {
		expiry string
		want   pantry.BatchStatus
	}{
		{"2024-01-09", pantry.BatchStatusExpired},    // ayer
		{"2024-01-10", pantry.BatchStatusNearExpiry}, // hoy: vence hoy, aún no vencido
		{"2024-01-13", pantry.BatchStatusNearExpiry}, // último día de la ventana (inclusive)
		{"2024-01-14", pantry.BatchStatusNormal},     // justo fuera
		{"", pantry.BatchStatusUnknown},
		{"garbage", pantry.BatchStatusUnknown},
	}
	for _, c := range cases {
		got := pantry.ClassifyBatch(entity.Batch{ExpirationDate: c.expiry}, now, 3)
		assert.Equal(t, c.want, got, "expiry=%q", c.expiry)
	}
}

func TestIsLowStock_UmbralCeroDesactiva(t *testing.T) {
	assert.False(t, pantry.IsLowStock(decimal.Zero, decimal.Zero), "umbral 0 no significa siempre bajo")
	assert.True(t, pantry.IsLowStock(dec("1"), dec("3")))
	assert.False(t, pantry.IsLowStock(dec("3"), dec("3")), "igual al umbral no es bajo")
}

func TestClassifyItem_PrioridadDeEstados(t *testing.T) {
	threshold := dec("10")

	// Vencido gana a todo, incluso con stock bajo.
	st := pantry.ClassifyItem([]entity.Batch{
		{Quantity: dec("1"), ExpirationDate: "2024-01-01"},
		{Quantity: dec("1"), ExpirationDate: "2024-01-11"},
	}, threshold, now, 3, false)
	assert.Equal(t, pantry.ItemStatusExpired, st)

	// Por vencer gana a stock bajo.
	st = pantry.ClassifyItem([]entity.Batch{
		{Quantity: dec("1"), ExpirationDate: "2024-01-11"},
	}, threshold, now, 3, false)
	assert.Equal(t, pantry.ItemStatusNearExpiry, st)

	// Sin riesgo de vencimiento, el umbral decide.
	st = pantry.ClassifyItem([]entity.Batch{
		{Quantity: dec("1"), ExpirationDate: "2024-02-01"},
	}, threshold, now, 3, false)
	assert.Equal(t, pantry.ItemStatusLowStock, st)

	st = pantry.ClassifyItem([]entity.Batch{
		{Quantity: dec("20"), ExpirationDate: "2024-02-01"},
	}, threshold, now, 3, false)
	assert.Equal(t, pantry.ItemStatusNormal, st)
}

func TestClassifyItem_NoExpiryIgnoraFechas(t *testing.T) {
	// Producto "no vence": una fecha suelta vencida no debe marcarlo.
	st := pantry.ClassifyItem([]entity.Batch{
		{Quantity: dec("5"), ExpirationDate: "2020-01-01"},
	}, decimal.Zero, now, 3, true)
	assert.Equal(t, pantry.ItemStatusNormal, st)
}

func TestAutoSuggest(t *testing.T) {
	assert.False(t, pantry.AutoSuggest(false, decimal.Zero, decimal.Zero), "solo básicos")
	assert.True(t, pantry.AutoSuggest(true, decimal.Zero, decimal.Zero), "básico agotado")
	assert.True(t, pantry.AutoSuggest(true, dec("1"), dec("3")), "básico bajo umbral")
	assert.False(t, pantry.AutoSuggest(true, dec("5"), dec("3")))
	assert.False(t, pantry.AutoSuggest(true, dec("5"), decimal.Zero), "con stock y sin umbral no sugiere")
}
