package pantry

import (
	"context"

	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/internal/domain"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
	"github.com/jcastano/despensa-api/internal/domain/repository"
)

// SuggestionUseCase genera la lista de compras sugerida del hogar: productos
// vacíos o por debajo de su umbral, agrupados por supermercado, más la
// versión imprimible en PDF.
type SuggestionUseCase struct {
	itemRepo      repository.ItemRepository
	householdRepo repository.HouseholdRepository
	pdfGen        ShoppingListPDFGenerator
}

// NewSuggestionUseCase construye el caso de uso. pdfGen puede ser nil si la
// exportación a PDF no está habilitada.
func NewSuggestionUseCase(itemRepo repository.ItemRepository, householdRepo repository.HouseholdRepository, pdfGen ShoppingListPDFGenerator) *SuggestionUseCase {
	return &SuggestionUseCase{itemRepo: itemRepo, householdRepo: householdRepo, pdfGen: pdfGen}
}

// GetSuggestions evalúa todos los productos y devuelve las sugerencias
// agrupadas por supermercado (el grupo "sin asignar" de último).
func (uc *SuggestionUseCase) GetSuggestions(ctx context.Context, householdID string, includeBasics bool) ([]dto.SuggestionGroupDTO, error) {
	groups, err := uc.buildGroups(ctx, householdID, includeBasics)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SuggestionGroupDTO, 0, len(groups))
	for _, g := range groups {
		groupDTO := dto.SuggestionGroupDTO{
			Supermarket: g.Supermarket,
			Suggestions: make([]dto.SuggestionDTO, 0, len(g.Suggestions)),
		}
		for _, s := range g.Suggestions {
			groupDTO.Suggestions = append(groupDTO.Suggestions, dto.SuggestionDTO{
				ItemID:            s.ItemID,
				ItemName:          s.ItemName,
				Unit:              s.Unit,
				Reason:            s.Reason,
				SuggestedQuantity: s.SuggestedQuantity,
				CurrentQuantity:   s.CurrentQuantity,
				MinThreshold:      s.MinThreshold,
			})
		}
		out = append(out, groupDTO)
	}
	return out, nil
}

// GenerateShoppingListPDF arma la lista de compras imprimible del hogar.
func (uc *SuggestionUseCase) GenerateShoppingListPDF(ctx context.Context, householdID string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, domain.ErrInvalidInput
	}
	household, err := uc.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, domain.ErrNotFound
	}
	groups, err := uc.buildGroups(ctx, householdID, true)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateShoppingListPDF(ctx, household.Name, groups)
}

func (uc *SuggestionUseCase) buildGroups(ctx context.Context, householdID string, includeBasics bool) ([]pantry.SuggestionGroup, error) {
	items, err := uc.itemRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	plain := make([]entity.Item, 0, len(items))
	for _, it := range items {
		plain = append(plain, *it)
	}
	return pantry.BuildSuggestions(plain, includeBasics), nil
}
