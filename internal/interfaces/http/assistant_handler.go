package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/despensa-api/internal/application/assistant"
	"github.com/jcastano/despensa-api/internal/application/dto"
)

// AssistantHandler conversación con el asistente de la despensa (protegido).
type AssistantHandler struct {
	uc *assistant.ChatUseCase
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(uc *assistant.ChatUseCase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Chat godoc
// @Summary      Enviar un mensaje al asistente
// @Description  El asistente puede consultar y modificar el inventario con
// @Description  como máximo una herramienta por turno.
// @Tags         assistant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message, history"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assistant/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	householdID := GetHouseholdID(c)
	if householdID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "household_id requerido"})
	}
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "message es requerido"})
	}
	out, err := h.uc.Chat(c.UserContext(), householdID, in)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ASSISTANT_UNAVAILABLE", Message: err.Error()})
	}
	return c.JSON(out)
}
