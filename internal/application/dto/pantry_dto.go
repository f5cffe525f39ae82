package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
)

// BatchDTO lote de un producto en respuestas y requests.
type BatchDTO struct {
	BatchID        string          `json:"batch_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpirationDate string          `json:"expiration_date,omitempty"`
	Opened         bool            `json:"opened,omitempty"`
	LocationID     string          `json:"location_id"`
}

// CreateItemRequest body para POST /api/items (alta rápida o formulario
// avanzado). Location es obligatoria; Batches opcional para altas con varios
// lotes de entrada.
type CreateItemRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Quantity       float64         `json:"quantity"`
	Location       string          `json:"location"`
	CategoryID     string          `json:"category_id,omitempty"`
	Supermarket    string          `json:"supermarket,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	IsBasic        bool            `json:"is_basic,omitempty"`
	MinThreshold   decimal.Decimal `json:"min_threshold,omitempty"`
	NoExpiry       bool            `json:"no_expiry,omitempty"`
	ExpirationDate string          `json:"expiration_date,omitempty"`
	Batches        []BatchDTO      `json:"batches,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. Reemplaza los metadatos y,
// si Batches no es nil, el conjunto completo de lotes.
type UpdateItemRequest struct {
	Name         string          `json:"name,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	Supermarket  string          `json:"supermarket,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	IsBasic      *bool           `json:"is_basic,omitempty"`
	MinThreshold decimal.Decimal `json:"min_threshold,omitempty"`
	NoExpiry     *bool           `json:"no_expiry,omitempty"`
	Batches      []BatchDTO      `json:"batches,omitempty"`
}

// AdjustQuantityRequest body para PATCH /api/items/:id/quantity. Delta con
// signo sobre la ubicación (y opcionalmente el lote con ese vencimiento).
// Debounce true difiere la escritura coalesciendo taps rápidos.
type AdjustQuantityRequest struct {
	Location       string  `json:"location" validate:"required"`
	QuantityChange float64 `json:"quantity_change"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
	Debounce       bool    `json:"debounce,omitempty"`
	Source         string  `json:"source,omitempty"`
}

// MoveRequest body para POST /api/items/:id/move.
type MoveRequest struct {
	FromLocation string  `json:"from_location" validate:"required"`
	ToLocation   string  `json:"to_location" validate:"required"`
	Quantity     float64 `json:"quantity"`
	// ExpirationDate restringe el traslado a los lotes del origen con esa
	// fecha exacta; vacío mueve FIFO-por-vencimiento sobre toda la ubicación.
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// MarkOpenedRequest body para POST /api/items/:id/open.
type MarkOpenedRequest struct {
	Location       string `json:"location,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// ImportItemsRequest body para POST /api/items/import (carga masiva).
type ImportItemsRequest struct {
	Items []CreateItemRequest `json:"items" validate:"required,min=1"`
}

// ItemSummaryDTO modelo de vista de un producto; derivado, nunca persistido.
type ItemSummaryDTO struct {
	ID             string                     `json:"id"`
	Name           string                     `json:"name"`
	Unit           string                     `json:"unit,omitempty"`
	Supermarket    string                     `json:"supermarket,omitempty"`
	IsBasic        bool                       `json:"is_basic"`
	TotalQuantity  decimal.Decimal            `json:"total_quantity"`
	MinThreshold   decimal.Decimal            `json:"min_threshold"`
	EarliestExpiry string                     `json:"earliest_expiry,omitempty"`
	HasOpenBatch   bool                       `json:"has_open_batch"`
	PerLocation    map[string]decimal.Decimal `json:"per_location"`
	BatchCounts    pantry.BatchStatusCounts   `json:"batch_counts"`
	BatchLabel     string                     `json:"batch_label,omitempty"`
	Status         pantry.ItemStatus          `json:"status"`
	Batches        []BatchDTO                 `json:"batches"`
}

// SuggestionDTO sugerencia de compra.
type SuggestionDTO struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Unit              string          `json:"unit,omitempty"`
	Reason            string          `json:"reason"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	MinThreshold      decimal.Decimal `json:"min_threshold"`
}

// SuggestionGroupDTO sugerencias agrupadas por supermercado.
type SuggestionGroupDTO struct {
	Supermarket string          `json:"supermarket"`
	Suggestions []SuggestionDTO `json:"suggestions"`
}

// EventDTO registro del historial de mutaciones.
type EventDTO struct {
	ID               string          `json:"id"`
	EventType        string          `json:"event_type"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	DeltaQuantity    decimal.Decimal `json:"delta_quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NextQuantity     decimal.Decimal `json:"next_quantity"`
	Unit             string          `json:"unit,omitempty"`
	BatchID          string          `json:"batch_id,omitempty"`
	Source           string          `json:"source,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}
