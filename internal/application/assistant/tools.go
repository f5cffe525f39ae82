// Package assistant implementa la frontera entre el asistente conversacional
// y el inventario: un catálogo fijo de herramientas con argumentos descritos
// por JSON Schema, un parseo estricto a una unión discriminada por nombre de
// herramienta, y el despacho hacia los casos de uso del inventario. Las
// herramientas o campos desconocidos se rechazan aquí, antes de tocar el
// dominio.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/internal/application/ports"
	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
)

// Nombres de las herramientas del catálogo.
const (
	ToolAddProduct     = "addProduct"
	ToolAdjustQuantity = "adjustQuantity"
	ToolMoveProduct    = "moveProduct"
	ToolMarkOpened     = "markOpened"
	ToolDeleteProduct  = "deleteProduct"
	ToolGetProducts    = "getProducts"
	ToolGetExpiring    = "getExpiringSoon"
	ToolListByLocation = "listByLocation"
	ToolGetSuggestions = "getSuggestions"
)

// Argumentos por herramienta. Solo se aceptan los campos declarados en el
// schema; el decoder rechaza los desconocidos.

type AddProductArgs struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Location       string  `json:"location"`
	CategoryID     string  `json:"categoryId,omitempty"`
	ExpirationDate string  `json:"expirationDate,omitempty"`
}

type AdjustQuantityArgs struct {
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	QuantityChange float64 `json:"quantityChange"`
	ExpirationDate string  `json:"expirationDate,omitempty"`
}

type MoveProductArgs struct {
	Name           string  `json:"name"`
	FromLocation   string  `json:"fromLocation"`
	ToLocation     string  `json:"toLocation"`
	Quantity       float64 `json:"quantity,omitempty"`
	ExpirationDate string  `json:"expirationDate,omitempty"`
}

type MarkOpenedArgs struct {
	Name           string `json:"name"`
	Location       string `json:"location,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

type DeleteProductArgs struct {
	Name string `json:"name"`
}

type GetProductsArgs struct{}

type GetExpiringSoonArgs struct {
	Days int `json:"days,omitempty"`
}

type ListByLocationArgs struct {
	Location string `json:"location"`
}

type GetSuggestionsArgs struct {
	IncludeBasics *bool `json:"includeBasics,omitempty"`
}

// ToolCall unión discriminada: exactamente uno de los punteros es no-nil.
type ToolCall struct {
	Name           string
	AddProduct     *AddProductArgs
	AdjustQuantity *AdjustQuantityArgs
	MoveProduct    *MoveProductArgs
	MarkOpened     *MarkOpenedArgs
	DeleteProduct  *DeleteProductArgs
	GetProducts    *GetProductsArgs
	GetExpiring    *GetExpiringSoonArgs
	ListByLocation *ListByLocationArgs
	GetSuggestions *GetSuggestionsArgs
}

// ParseToolCall valida nombre y argumentos contra el catálogo. Decodificación
// estricta: un campo no declarado en el schema es un error de parseo.
func ParseToolCall(name string, args json.RawMessage) (*ToolCall, error) {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	call := &ToolCall{Name: name}
	var target any
	switch name {
	case ToolAddProduct:
		call.AddProduct = &AddProductArgs{}
		target = call.AddProduct
	case ToolAdjustQuantity:
		call.AdjustQuantity = &AdjustQuantityArgs{}
		target = call.AdjustQuantity
	case ToolMoveProduct:
		call.MoveProduct = &MoveProductArgs{}
		target = call.MoveProduct
	case ToolMarkOpened:
		call.MarkOpened = &MarkOpenedArgs{}
		target = call.MarkOpened
	case ToolDeleteProduct:
		call.DeleteProduct = &DeleteProductArgs{}
		target = call.DeleteProduct
	case ToolGetProducts:
		call.GetProducts = &GetProductsArgs{}
		target = call.GetProducts
	case ToolGetExpiring:
		call.GetExpiring = &GetExpiringSoonArgs{}
		target = call.GetExpiring
	case ToolListByLocation:
		call.ListByLocation = &ListByLocationArgs{}
		target = call.ListByLocation
	case ToolGetSuggestions:
		call.GetSuggestions = &GetSuggestionsArgs{}
		target = call.GetSuggestions
	default:
		return nil, fmt.Errorf("herramienta desconocida: %q", name)
	}

	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("argumentos de %s: %w", name, err)
	}
	return call, nil
}

// Executor despacha llamadas de herramienta parseadas hacia los casos de uso
// del inventario. Devuelve el resultado serializado en JSON para el bloque
// tool_result.
type Executor struct {
	inventory   *apppantry.InventoryUseCase
	suggestions *apppantry.SuggestionUseCase
}

// NewExecutor construye el ejecutor.
func NewExecutor(inventory *apppantry.InventoryUseCase, suggestions *apppantry.SuggestionUseCase) *Executor {
	return &Executor{inventory: inventory, suggestions: suggestions}
}

// Execute ejecuta la herramienta sobre el inventario del hogar.
func (e *Executor) Execute(ctx context.Context, householdID string, call *ToolCall) (string, error) {
	switch {
	case call.AddProduct != nil:
		a := call.AddProduct
		item, err := e.inventory.AddProduct(ctx, householdID, "assistant", dto.CreateItemRequest{
			Name:           a.Name,
			Quantity:       a.Quantity,
			Location:       a.Location,
			CategoryID:     a.CategoryID,
			ExpirationDate: a.ExpirationDate,
		})
		if err != nil {
			return "", err
		}
		return toJSON(map[string]any{"item_id": item.ID, "name": item.Name})

	case call.AdjustQuantity != nil:
		a := call.AdjustQuantity
		item, err := e.inventory.GetByName(ctx, householdID, a.Name)
		if err != nil {
			return "", err
		}
		updated, err := e.inventory.AdjustQuantity(ctx, householdID, item.ID, dto.AdjustQuantityRequest{
			Location:       a.Location,
			QuantityChange: a.QuantityChange,
			ExpirationDate: a.ExpirationDate,
			Source:         "assistant",
		})
		if err != nil {
			return "", err
		}
		s, err := e.inventory.GetSummary(ctx, householdID, updated.ID)
		if err != nil {
			return "", err
		}
		return toJSON(map[string]any{"name": updated.Name, "total_quantity": s.TotalQuantity})

	case call.MoveProduct != nil:
		a := call.MoveProduct
		item, err := e.inventory.GetByName(ctx, householdID, a.Name)
		if err != nil {
			return "", err
		}
		updated, err := e.inventory.MoveProduct(ctx, householdID, item.ID, dto.MoveRequest{
			FromLocation:   a.FromLocation,
			ToLocation:     a.ToLocation,
			Quantity:       a.Quantity,
			ExpirationDate: a.ExpirationDate,
		})
		if err != nil {
			return "", err
		}
		return toJSON(map[string]any{"name": updated.Name, "moved_to": a.ToLocation})

	case call.MarkOpened != nil:
		a := call.MarkOpened
		item, err := e.inventory.GetByName(ctx, householdID, a.Name)
		if err != nil {
			return "", err
		}
		if _, err := e.inventory.MarkOpened(ctx, householdID, item.ID, dto.MarkOpenedRequest{
			Location:       a.Location,
			ExpirationDate: a.ExpirationDate,
		}); err != nil {
			return "", err
		}
		return toJSON(map[string]any{"name": item.Name, "opened": true})

	case call.DeleteProduct != nil:
		item, err := e.inventory.GetByName(ctx, householdID, call.DeleteProduct.Name)
		if err != nil {
			return "", err
		}
		if err := e.inventory.DeleteItem(ctx, householdID, item.ID, "assistant"); err != nil {
			return "", err
		}
		return toJSON(map[string]any{"deleted": item.Name})

	case call.GetProducts != nil:
		list, err := e.inventory.ListSummaries(ctx, householdID)
		if err != nil {
			return "", err
		}
		return toJSON(list)

	case call.GetExpiring != nil:
		list, err := e.inventory.ExpiringSoon(ctx, householdID, call.GetExpiring.Days)
		if err != nil {
			return "", err
		}
		return toJSON(list)

	case call.ListByLocation != nil:
		list, err := e.inventory.ListByLocation(ctx, householdID, call.ListByLocation.Location)
		if err != nil {
			return "", err
		}
		return toJSON(list)

	case call.GetSuggestions != nil:
		include := true
		if call.GetSuggestions.IncludeBasics != nil {
			include = *call.GetSuggestions.IncludeBasics
		}
		groups, err := e.suggestions.GetSuggestions(ctx, householdID, include)
		if err != nil {
			return "", err
		}
		return toJSON(groups)
	}
	return "", fmt.Errorf("llamada de herramienta vacía")
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializar resultado: %w", err)
	}
	return string(b), nil
}

// Catalog catálogo fijo de herramientas con el JSON Schema de cada una.
func Catalog() []ports.LLMToolDefinition {
	return []ports.LLMToolDefinition{
		{
			Name:        ToolAddProduct,
			Description: "Agrega un producto a la despensa o suma stock a uno existente con el mismo nombre.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {"type": "string", "description": "Nombre del producto"},
					"quantity": {"type": "number", "description": "Cantidad a agregar"},
					"location": {"type": "string", "description": "Ubicación (ej. despensa, nevera)"},
					"categoryId": {"type": "string"},
					"expirationDate": {"type": "string", "description": "Fecha de vencimiento YYYY-MM-DD"}
				},
				"required": ["name", "quantity", "location"]
			}`),
		},
		{
			Name:        ToolAdjustQuantity,
			Description: "Aplica un cambio con signo a la cantidad de un producto en una ubicación (negativo consume).",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"location": {"type": "string"},
					"quantityChange": {"type": "number", "description": "Delta con signo; negativo consume"},
					"expirationDate": {"type": "string"}
				},
				"required": ["name", "location", "quantityChange"]
			}`),
		},
		{
			Name:        ToolMoveProduct,
			Description: "Traslada stock de un producto entre dos ubicaciones. Sin cantidad mueve todo el stock del origen.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"fromLocation": {"type": "string"},
					"toLocation": {"type": "string"},
					"quantity": {"type": "number"},
					"expirationDate": {"type": "string", "description": "Solo mover lotes con esta fecha YYYY-MM-DD"}
				},
				"required": ["name", "fromLocation", "toLocation"]
			}`),
		},
		{
			Name:        ToolMarkOpened,
			Description: "Marca como abierto un lote del producto (por defecto el más próximo a vencer).",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"location": {"type": "string"},
					"expirationDate": {"type": "string", "description": "Fecha YYYY-MM-DD del lote a abrir"}
				},
				"required": ["name"]
			}`),
		},
		{
			Name:        ToolDeleteProduct,
			Description: "Elimina un producto de la despensa.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {"name": {"type": "string"}},
				"required": ["name"]
			}`),
		},
		{
			Name:        ToolGetProducts,
			Description: "Lista todos los productos con totales, vencimiento más próximo y estado.",
			InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
		},
		{
			Name:        ToolGetExpiring,
			Description: "Lista los productos vencidos o por vencer dentro de la ventana de días indicada.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {"days": {"type": "integer", "minimum": 1}}
			}`),
		},
		{
			Name:        ToolListByLocation,
			Description: "Lista los productos con stock en una ubicación.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {"location": {"type": "string"}},
				"required": ["location"]
			}`),
		},
		{
			Name:        ToolGetSuggestions,
			Description: "Devuelve la lista de compras sugerida agrupada por supermercado.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {"includeBasics": {"type": "boolean"}}
			}`),
		},
	}
}
