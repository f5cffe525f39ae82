package pantry

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/entity"
)

// BatchStatus estado de vencimiento de un lote individual.
type BatchStatus string

const (
	BatchStatusExpired    BatchStatus = "expired"
	BatchStatusNearExpiry BatchStatus = "near-expiry"
	BatchStatusNormal     BatchStatus = "normal"
	BatchStatusUnknown    BatchStatus = "unknown"
)

// ItemStatus estado agregado de un producto.
type ItemStatus string

const (
	ItemStatusExpired    ItemStatus = "expired"
	ItemStatusNearExpiry ItemStatus = "near-expiry"
	ItemStatusLowStock   ItemStatus = "low-stock"
	ItemStatusNormal     ItemStatus = "normal"
)

// DefaultExpiryWindowDays ventana por defecto para "por vencer".
const DefaultExpiryWindowDays = 3

// ClassifyBatch clasifica un lote contra "ahora" y la ventana configurada.
// Sin fecha o fecha no parseable → unknown. Fecha estrictamente anterior a
// hoy (granularidad de día) → expired. Entre hoy y la ventana, ambos
// inclusive → near-expiry. El resto → normal.
func ClassifyBatch(b entity.Batch, now time.Time, windowDays int) BatchStatus {
	expiry, ok := ParseExpiry(b.ExpirationDate)
	if !ok {
		return BatchStatusUnknown
	}
	today := DayOf(now)
	if expiry.Before(today) {
		return BatchStatusExpired
	}
	days := int(expiry.Sub(today).Hours() / 24)
	if days <= windowDays {
		return BatchStatusNearExpiry
	}
	return BatchStatusNormal
}

// IsLowStock indica stock bajo: umbral configurado (> 0) y total por debajo.
// Umbral 0 o ausente desactiva la regla por completo, no significa "siempre bajo".
func IsLowStock(total, minThreshold decimal.Decimal) bool {
	return minThreshold.GreaterThan(decimal.Zero) && total.LessThan(minThreshold)
}

// ClassifyItem deriva el estado agregado de un producto. El orden de
// prioridad es una decisión de diseño: el riesgo de vencimiento siempre se
// muestra antes que el riesgo de cantidad.
func ClassifyItem(batches []entity.Batch, minThreshold decimal.Decimal, now time.Time, windowDays int, noExpiry bool) ItemStatus {
	if !noExpiry {
		anyNear := false
		for _, b := range batches {
			switch ClassifyBatch(b, now, windowDays) {
			case BatchStatusExpired:
				return ItemStatusExpired
			case BatchStatusNearExpiry:
				anyNear = true
			}
		}
		if anyNear {
			return ItemStatusNearExpiry
		}
	}
	if IsLowStock(SumQuantities(batches), minThreshold) {
		return ItemStatusLowStock
	}
	return ItemStatusNormal
}

// AutoSuggest predicado de auto-agregar a la lista de compras, distinto del
// estado low-stock de la vista: solo aplica a productos marcados como básicos.
func AutoSuggest(isBasic bool, total, minThreshold decimal.Decimal) bool {
	if !isBasic {
		return false
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return true
	}
	return minThreshold.GreaterThan(decimal.Zero) && total.LessThan(minThreshold)
}
