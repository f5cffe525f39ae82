package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LocationUnassigned marcador para lotes cuya ubicación quedó vacía tras
// normalizar (datos legados o importaciones sin ubicación).
const LocationUnassigned = "sin-ubicacion"

// Batch representa un lote de un producto: una cantidad que comparte fecha de
// vencimiento y estado de apertura dentro de una ubicación del hogar.
// ExpirationDate es una fecha ISO (YYYY-MM-DD); vacía significa "sin
// vencimiento conocido". Un lote con cantidad 0 se poda tras cualquier mutación.
type Batch struct {
	BatchID        string          `json:"batch_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpirationDate string          `json:"expiration_date,omitempty"`
	Opened         bool            `json:"opened,omitempty"`
	LocationID     string          `json:"location_id"`
}

// Item es la raíz de agregado del inventario: un producto del hogar con sus
// lotes repartidos entre ubicaciones. MinThreshold es el total deseado
// sumando todas las ubicaciones, no por ubicación.
type Item struct {
	ID           string
	HouseholdID  string
	Name         string
	CategoryID   string
	Supermarket  string
	Unit         string
	IsBasic      bool
	MinThreshold decimal.Decimal
	NoExpiry     bool
	Batches      []Batch
	// Locations conserva la forma legada por-ubicación hasta que la migración
	// aplana sus lotes sobre Batches. Nunca se escribe desde la app.
	Locations []LegacyLocation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LegacyLocation forma antigua del documento: cada ubicación llevaba su propia
// cantidad, umbral y lotes sin location_id. Solo entrada de la migración.
type LegacyLocation struct {
	ID           string           `json:"id"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	MinThreshold decimal.Decimal  `json:"min_threshold,omitempty"`
	Batches      []Batch          `json:"batches,omitempty"`
}

// NormalizeLocationID recorta espacios; vacío pasa al marcador sin-ubicacion.
func NormalizeLocationID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return LocationUnassigned
	}
	return id
}

// HasExpiry indica si el lote declara fecha de vencimiento.
func (b Batch) HasExpiry() bool {
	return strings.TrimSpace(b.ExpirationDate) != ""
}
