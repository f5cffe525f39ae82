package pantry

import (
	"context"

	"github.com/jcastano/despensa-api/internal/domain/pantry"
	"github.com/jcastano/despensa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el documento del producto y su
// evento de mutación se escriban atómicamente: un traslado entre ubicaciones
// del mismo producto nunca puede observarse a medio aplicar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		eventRepo repository.EventRepository,
	) error) error
}

// ShoppingListPDFGenerator puerto de salida para la lista de compras
// imprimible. La implementación vive en infrastructure/pdf.
type ShoppingListPDFGenerator interface {
	GenerateShoppingListPDF(ctx context.Context, householdName string, groups []pantry.SuggestionGroup) ([]byte, error)
}
