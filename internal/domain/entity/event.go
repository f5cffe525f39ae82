package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento del libro de mutaciones (append-only).
const (
	EventTypeADD     = "ADD"
	EventTypeCONSUME = "CONSUME"
	EventTypeEDIT    = "EDIT"
	EventTypeEXPIRE  = "EXPIRE"
	EventTypeDELETE  = "DELETE"
	EventTypeIMPORT  = "IMPORT"
)

// Event registro inmutable de una mutación del inventario. La aplicación solo
// agrega eventos; nunca los actualiza ni los borra. DeltaQuantity es negativo
// en consumos. PreviousQuantity/NextQuantity son totales del producto antes y
// después de la mutación.
type Event struct {
	ID               string
	HouseholdID      string
	EventType        string
	ProductID        string
	ProductName      string
	Quantity         decimal.Decimal
	DeltaQuantity    decimal.Decimal
	PreviousQuantity decimal.Decimal
	NextQuantity     decimal.Decimal
	Unit             string
	BatchID          string
	ExpirationDate   string
	Source           string
	Timestamp        time.Time
}

// ExpireKey clave estable para deduplicar eventos EXPIRE entre arranques:
// un mismo lote físico vencido solo se registra una vez.
func (e Event) ExpireKey() string {
	if e.BatchID != "" {
		return e.ProductID + "|" + e.BatchID
	}
	return e.ProductID + "|" + e.ExpirationDate
}
