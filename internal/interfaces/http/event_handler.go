package http

import (
	"github.com/gofiber/fiber/v2"

	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
	"github.com/jcastano/despensa-api/internal/application/dto"
)

// EventHandler historial de mutaciones y escaneo de vencidos (protegido).
type EventHandler struct {
	inventory  *apppantry.InventoryUseCase
	expiryScan *apppantry.ExpiryScanUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(inventory *apppantry.InventoryUseCase, expiryScan *apppantry.ExpiryScanUseCase) *EventHandler {
	return &EventHandler{inventory: inventory, expiryScan: expiryScan}
}

// History godoc
// @Summary      Historial de eventos del hogar
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  map[string]interface{}  "data + metadatos de página"
// @Router       /api/events [get]
func (h *EventHandler) History(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.inventory.History(c.UserContext(), householdID, page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(struct {
		Data []dto.EventDTO `json:"data"`
		dto.PageResponse
	}{out, dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// ExpiryScan godoc
// @Summary      Registrar eventos EXPIRE para lotes vencidos sin registrar
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/events/expiry-scan [post]
func (h *EventHandler) ExpiryScan(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	count, err := h.expiryScan.Run(c.UserContext(), householdID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"expired_recorded": count})
}
