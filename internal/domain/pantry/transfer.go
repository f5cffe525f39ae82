package pantry

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/entity"
)

// MoveInput entrada del motor de traslados. Source y Destination son los
// conjuntos de lotes de la ubicación origen y destino del mismo producto.
// DestinationLocation re-etiqueta los lotes movidos; vacío conserva la
// ubicación original de cada lote.
type MoveInput struct {
	Source              []entity.Batch
	Destination         []entity.Batch
	Amount              decimal.Decimal
	DestinationLocation string
}

// MoveResult resultado del traslado. Un traslado rechazado por stock
// insuficiente devuelve Moved vacío y copias intactas de las entradas: el
// caller debe verificar len(Moved) == 0, no hay excepción.
type MoveResult struct {
	Moved           []entity.Batch
	RemainingSource []entity.Batch
	NextDestination []entity.Batch
}

// MoveBatches mueve la cantidad solicitada de la ubicación origen a la
// destino. Consume los lotes origen en orden ascendente de vencimiento (los
// lotes sin fecha van de últimos: "no vence pronto"); es una política FIFO
// por riesgo de frescura para mover primero el stock más próximo a vencer.
//
// Si un lote cabe completo en lo que falta por mover, se traslada entero con
// el mismo batch_id y vencimiento. Si excede lo pendiente, se parte: la
// porción movida hereda el vencimiento del lote origen (partir nunca inventa
// una fecha nueva) y el original queda en el origen con la cantidad reducida.
//
// Semántica todo-o-nada: si el total del origen no alcanza, no se aplica
// ningún movimiento parcial.
func MoveBatches(in MoveInput) MoveResult {
	amount := RoundQuantity(in.Amount)
	if amount.LessThan(decimal.Zero) {
		amount = decimal.Zero
	}

	rejected := MoveResult{
		Moved:           []entity.Batch{},
		RemainingSource: copyBatches(in.Source),
		NextDestination: copyBatches(in.Destination),
	}
	if amount.IsZero() || amount.GreaterThan(SumQuantities(in.Source)) {
		return rejected
	}

	source := copyBatches(in.Source)
	sortByExpiryAscending(source)

	moved := make([]entity.Batch, 0, len(source))
	remaining := make([]entity.Batch, 0, len(source))
	pending := amount

	for i, b := range source {
		if pending.IsZero() {
			remaining = append(remaining, source[i:]...)
			break
		}
		qty := RoundQuantity(b.Quantity)
		if qty.LessThanOrEqual(pending) {
			// Lote completo: conserva batch_id y vencimiento.
			moved = append(moved, b)
			pending = pending.Sub(qty)
			continue
		}
		// Partir: la porción movida es un lote nuevo con el mismo vencimiento.
		split := b
		split.BatchID = uuid.New().String()
		split.Quantity = pending
		moved = append(moved, split)

		b.Quantity = RoundQuantity(qty.Sub(pending))
		remaining = append(remaining, b)
		pending = decimal.Zero
	}

	if in.DestinationLocation != "" {
		dest := entity.NormalizeLocationID(in.DestinationLocation)
		for i := range moved {
			moved[i].LocationID = dest
		}
	}

	// Re-canonicalizar ambos lados con la misma regla de fusión por
	// vencimiento: mover hacia una ubicación que ya tiene un lote con la
	// fecha idéntica los combina en lugar de duplicar la fila.
	return MoveResult{
		Moved:           moved,
		RemainingSource: MergeBatchesByExpiry(remaining),
		NextDestination: MergeBatchesByExpiry(append(copyBatches(in.Destination), moved...)),
	}
}

// ConsumeFIFO descuenta la cantidad solicitada de un conjunto de lotes con la
// misma política FIFO-por-vencimiento del traslado. A diferencia de
// MoveBatches, consumir más de lo disponible no se rechaza: se consume todo y
// el total queda en 0 (las cantidades nunca se vuelven negativas). Devuelve lo
// realmente consumido y los lotes restantes ya podados.
func ConsumeFIFO(batches []entity.Batch, amount decimal.Decimal) (decimal.Decimal, []entity.Batch) {
	amount = RoundQuantity(amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, copyBatches(batches)
	}
	source := copyBatches(batches)
	sortByExpiryAscending(source)

	consumed := decimal.Zero
	remaining := make([]entity.Batch, 0, len(source))
	pending := amount
	for i, b := range source {
		if pending.IsZero() {
			remaining = append(remaining, source[i:]...)
			break
		}
		qty := RoundQuantity(b.Quantity)
		if qty.LessThanOrEqual(pending) {
			consumed = consumed.Add(qty)
			pending = pending.Sub(qty)
			continue
		}
		b.Quantity = RoundQuantity(qty.Sub(pending))
		consumed = consumed.Add(pending)
		pending = decimal.Zero
		remaining = append(remaining, b)
	}
	return consumed, PruneEmptyBatches(remaining)
}

// sortByExpiryAscending ordena in-place por vencimiento ascendente; los lotes
// sin fecha (o con fecha no parseable) quedan al final. Orden estable para
// que los empates conserven la posición original.
func sortByExpiryAscending(batches []entity.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		ti, oki := ParseExpiry(batches[i].ExpirationDate)
		tj, okj := ParseExpiry(batches[j].ExpirationDate)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return ti.Before(tj)
	})
}

func copyBatches(batches []entity.Batch) []entity.Batch {
	out := make([]entity.Batch, len(batches))
	copy(out, batches)
	return out
}
