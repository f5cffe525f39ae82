package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/internal/domain"
)

// ItemHandler maneja las peticiones HTTP del inventario de la despensa (protegido).
type ItemHandler struct {
	uc *apppantry.InventoryUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *apppantry.InventoryUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar producto (alta rápida o con lotes)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ItemSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	item, err := h.uc.AddProduct(c.UserContext(), householdID, "manual", in)
	if err != nil {
		return mapDomainError(c, err)
	}
	out, err := h.uc.GetSummary(c.UserContext(), householdID, item.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos con totales y estado
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  false  "Filtrar por ubicación con stock"
// @Success      200  {array}  dto.ItemSummaryDTO
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	if location := c.Query("location"); location != "" {
		out, err := h.uc.ListByLocation(c.UserContext(), householdID, location)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.ListSummaries(c.UserContext(), householdID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ByLocation godoc
// @Summary      Productos con stock en una ubicación
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.ItemSummaryDTO
// @Router       /api/locations/{id}/items [get]
func (h *ItemHandler) ByLocation(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	out, err := h.uc.ListByLocation(c.UserContext(), householdID, c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Productos vencidos o por vencer
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(3)
// @Success      200  {array}  dto.ItemSummaryDTO
// @Router       /api/items/expiring [get]
func (h *ItemHandler) Expiring(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	out, err := h.uc.ExpiringSoon(c.UserContext(), householdID, c.QueryInt("days", h.uc.WindowDays()))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ItemSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetSummary(c.UserContext(), householdID, id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar producto (metadatos y lotes)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ItemSummaryDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	id := c.Params("id")
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.UserContext(), householdID, id, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	out, err := h.uc.GetSummary(c.UserContext(), householdID, item.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	id := c.Params("id")
	if err := h.uc.DeleteItem(c.UserContext(), householdID, id, "manual"); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajustar cantidad en una ubicación (delta con signo)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustQuantityRequest  true  "location, quantity_change"
// @Success      200   {object}  dto.ItemSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/quantity [patch]
func (h *ItemHandler) Adjust(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	id := c.Params("id")
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.AdjustQuantity(c.UserContext(), householdID, id, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	out, err := h.uc.GetSummary(c.UserContext(), householdID, item.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.MoveRequest  true  "from_location, to_location, quantity"
// @Success      200   {object}  dto.ItemSummaryDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/move [post]
func (h *ItemHandler) Move(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	id := c.Params("id")
	var in dto.MoveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.MoveProduct(c.UserContext(), householdID, id, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	out, err := h.uc.GetSummary(c.UserContext(), householdID, item.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Open godoc
// @Summary      Marcar un lote como abierto
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.MarkOpenedRequest  false  "location, expiration_date (opcionales)"
// @Success      200   {object}  dto.ItemSummaryDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/open [post]
func (h *ItemHandler) Open(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	id := c.Params("id")
	var in dto.MarkOpenedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	item, err := h.uc.MarkOpened(c.UserContext(), householdID, id, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	out, err := h.uc.GetSummary(c.UserContext(), householdID, item.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar productos en lote
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportItemsRequest  true  "items"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ItemHandler) Import(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	var in dto.ImportItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	count, err := h.uc.ImportItems(c.UserContext(), householdID, in)
	if err != nil {
		// Importación parcial: se informa cuántos entraron antes del fallo.
		return c.Status(statusForDomainError(err)).JSON(fiber.Map{
			"imported": count,
			"error":    err.Error(),
		})
	}
	return c.JSON(fiber.Map{"imported": count})
}

// CancelPendingSave godoc
// @Summary      Descartar el guardado diferido de un producto
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]bool
// @Router       /api/items/{id}/pending-save [delete]
func (h *ItemHandler) CancelPendingSave(c *fiber.Ctx) error {
	cancelled := h.uc.CancelPendingSave(c.Params("id"))
	return c.JSON(fiber.Map{"cancelled": cancelled})
}

// mapDomainError traduce errores centinela del dominio a códigos HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el producto pertenece a otro hogar"})
	case errors.Is(err, domain.ErrLocationRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "LOCATION_REQUIRED", Message: "todo lote necesita una ubicación"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la ubicación de origen"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un producto con ese nombre"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func statusForDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrLocationRequired), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
