package http

import (
	"github.com/gofiber/fiber/v2"

	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
	"github.com/jcastano/despensa-api/internal/application/dto"
)

// ShoppingHandler lista de compras sugerida y su PDF (protegido).
type ShoppingHandler struct {
	uc *apppantry.SuggestionUseCase
}

// NewShoppingHandler construye el handler.
func NewShoppingHandler(uc *apppantry.SuggestionUseCase) *ShoppingHandler {
	return &ShoppingHandler{uc: uc}
}

// Suggestions godoc
// @Summary      Lista de compras sugerida agrupada por supermercado
// @Tags         shopping
// @Security     Bearer
// @Produce      json
// @Param        include_basics  query  bool  false  "Incluir básicos agotados sin umbral"  default(true)
// @Success      200  {array}  dto.SuggestionGroupDTO
// @Router       /api/shopping/suggestions [get]
func (h *ShoppingHandler) Suggestions(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	includeBasics := c.QueryBool("include_basics", true)
	out, err := h.uc.GetSuggestions(c.UserContext(), householdID, includeBasics)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Lista de compras en PDF
// @Tags         shopping
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/shopping/suggestions/pdf [get]
func (h *ShoppingHandler) PDF(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	pdfBytes, err := h.uc.GenerateShoppingListPDF(c.UserContext(), householdID)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="lista-de-compras.pdf"`)
	return c.Send(pdfBytes)
}
