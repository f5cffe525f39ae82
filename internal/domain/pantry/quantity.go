// Package pantry contiene los servicios de dominio puros del inventario del
// hogar: primitivas de cantidades y lotes, clasificación de vencimientos,
// motor de traslados FIFO-por-vencimiento, agregación por producto y motor de
// sugerencias de compra. Ninguna función de este paquete hace I/O; todas son
// deterministas dado el mismo estado, "ahora" y ventana de vencimiento.
package pantry

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/entity"
)

// quantityDecimals precisión de todas las cantidades persistidas y mostradas.
// Evita que la deriva de punto flotante se acumule en incrementos repetidos.
const quantityDecimals = 2

// expiryLayout formato ISO de fecha de vencimiento (solo día, sin hora).
const expiryLayout = "2006-01-02"

// NumberOrZero coerciona un número que cruza una frontera de confianza
// (input de usuario, documento persistido, argumento de tool-call): los
// valores no finitos pasan a 0 en lugar de propagarse.
func NumberOrZero(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// RoundQuantity redondea una cantidad a la precisión canónica.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(quantityDecimals)
}

// SumQuantities suma las cantidades redondeadas de todos los lotes.
// Lista nil o vacía suma 0.
func SumQuantities(batches []entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(RoundQuantity(b.Quantity))
	}
	return total
}

// ParseExpiry interpreta una fecha de vencimiento ISO y la normaliza a
// medianoche UTC. Devuelve false si la cadena está vacía o no es parseable.
func ParseExpiry(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(expiryLayout, s); err == nil {
		return DayOf(t), true
	}
	// Documentos viejos guardan timestamps completos; se toma solo el día.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayOf(t), true
	}
	return time.Time{}, false
}

// DayOf normaliza un instante a la medianoche UTC de su día. Todas las
// comparaciones de vencimiento se hacen con granularidad de día.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MergeBatchesByExpiry agrupa los lotes que comparten (ubicación, fecha de
// vencimiento): las cantidades se suman y opened queda true si algún lote
// aportante estaba abierto. Los lotes sin fecha nunca se fusionan entre sí;
// la ausencia de clave no implica identidad compartida. Devuelve lotes nuevos
// sin mutar la entrada; el orden es el de primera aparición.
func MergeBatchesByExpiry(batches []entity.Batch) []entity.Batch {
	if len(batches) == 0 {
		return []entity.Batch{}
	}
	merged := make([]entity.Batch, 0, len(batches))
	index := make(map[string]int, len(batches))

	for _, b := range batches {
		b.LocationID = entity.NormalizeLocationID(b.LocationID)
		b.Quantity = RoundQuantity(b.Quantity)
		if !b.HasExpiry() {
			b.ExpirationDate = ""
			merged = append(merged, b)
			continue
		}
		key := b.LocationID + "|" + strings.TrimSpace(b.ExpirationDate)
		if i, ok := index[key]; ok {
			merged[i].Quantity = RoundQuantity(merged[i].Quantity.Add(b.Quantity))
			merged[i].Opened = merged[i].Opened || b.Opened
			continue
		}
		index[key] = len(merged)
		merged = append(merged, b)
	}
	return merged
}

// PruneEmptyBatches descarta los lotes cuya cantidad quedó en 0 o negativa
// tras una mutación. Devuelve una lista nueva.
func PruneEmptyBatches(batches []entity.Batch) []entity.Batch {
	out := make([]entity.Batch, 0, len(batches))
	for _, b := range batches {
		if RoundQuantity(b.Quantity).GreaterThan(decimal.Zero) {
			out = append(out, b)
		}
	}
	return out
}

// EarliestExpiry devuelve la fecha de vencimiento parseable más próxima del
// conjunto, o false si ningún lote declara una. Los empates del mismo día se
// resuelven por primera aparición; el orden exacto entre ellos es irrelevante.
func EarliestExpiry(batches []entity.Batch) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, b := range batches {
		t, ok := ParseExpiry(b.ExpirationDate)
		if !ok {
			continue
		}
		if !found || t.Before(earliest) {
			earliest = t
			found = true
		}
	}
	return earliest, found
}
