package pantry

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/entity"
)

// BatchStatusCounts desglose de lotes por clasificación de vencimiento.
type BatchStatusCounts struct {
	Expired    int `json:"expired"`
	NearExpiry int `json:"near_expiry"`
	Normal     int `json:"normal"`
	Unknown    int `json:"unknown"`
}

// Label arma la etiqueta legible del desglose ("2 vencidos, 1 por vencer").
// Devuelve cadena vacía si no hay nada que resaltar.
func (c BatchStatusCounts) Label() string {
	parts := make([]string, 0, 3)
	if c.Expired > 0 {
		parts = append(parts, fmt.Sprintf("%d vencido(s)", c.Expired))
	}
	if c.NearExpiry > 0 {
		parts = append(parts, fmt.Sprintf("%d por vencer", c.NearExpiry))
	}
	if c.Unknown > 0 {
		parts = append(parts, fmt.Sprintf("%d sin fecha", c.Unknown))
	}
	return strings.Join(parts, ", ")
}

// ItemSummary vista derivada de un producto: totales, vencimiento más
// próximo, desglose por ubicación y estado agregado. Nunca se persiste; se
// recalcula en cada lectura y es determinista dado el mismo producto,
// "ahora" y ventana.
type ItemSummary struct {
	ItemID         string
	Name           string
	Unit           string
	Supermarket    string
	IsBasic        bool
	TotalQuantity  decimal.Decimal
	MinThreshold   decimal.Decimal
	EarliestExpiry string
	HasOpenBatch   bool
	PerLocation    map[string]decimal.Decimal
	Counts         BatchStatusCounts
	CountsLabel    string
	Status         ItemStatus
}

// BuildItemSummary calcula el modelo de vista de un producto combinando
// todos sus lotes (todas las ubicaciones).
func BuildItemSummary(it entity.Item, now time.Time, windowDays int) ItemSummary {
	s := ItemSummary{
		ItemID:        it.ID,
		Name:          it.Name,
		Unit:          it.Unit,
		Supermarket:   it.Supermarket,
		IsBasic:       it.IsBasic,
		TotalQuantity: SumQuantities(it.Batches),
		MinThreshold:  it.MinThreshold,
		PerLocation:   make(map[string]decimal.Decimal),
	}

	for _, b := range it.Batches {
		loc := entity.NormalizeLocationID(b.LocationID)
		s.PerLocation[loc] = s.PerLocation[loc].Add(RoundQuantity(b.Quantity))
		if b.Opened {
			s.HasOpenBatch = true
		}
		if it.NoExpiry {
			// Producto marcado "no vence": las fechas sueltas se ignoran.
			s.Counts.Normal++
			continue
		}
		switch ClassifyBatch(b, now, windowDays) {
		case BatchStatusExpired:
			s.Counts.Expired++
		case BatchStatusNearExpiry:
			s.Counts.NearExpiry++
		case BatchStatusNormal:
			s.Counts.Normal++
		default:
			s.Counts.Unknown++
		}
	}

	if !it.NoExpiry {
		if earliest, ok := EarliestExpiry(it.Batches); ok {
			s.EarliestExpiry = earliest.Format(expiryLayout)
		}
	}
	s.CountsLabel = s.Counts.Label()
	s.Status = ClassifyItem(it.Batches, it.MinThreshold, now, windowDays, it.NoExpiry)
	return s
}

// QuantityAtLocation total del producto restringido a una ubicación.
func QuantityAtLocation(batches []entity.Batch, locationID string) decimal.Decimal {
	locationID = entity.NormalizeLocationID(locationID)
	total := decimal.Zero
	for _, b := range batches {
		if entity.NormalizeLocationID(b.LocationID) == locationID {
			total = total.Add(RoundQuantity(b.Quantity))
		}
	}
	return total
}
