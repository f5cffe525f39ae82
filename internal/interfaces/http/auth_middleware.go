package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/pkg/jwt"
)

// Locals keys para el hogar y el dispositivo en Fiber.
const (
	LocalHouseholdID = "household_id"
	LocalDeviceName  = "device_name"
)

// AuthMiddleware valida el Bearer Token JWT y extrae el hogar a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		householdID, deviceName, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalHouseholdID, householdID)
		c.Locals(LocalDeviceName, deviceName)
		return c.Next()
	}
}

// GetHouseholdID devuelve el hogar del contexto (después del middleware de auth).
func GetHouseholdID(c *fiber.Ctx) string {
	v := c.Locals(LocalHouseholdID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetDeviceName devuelve el dispositivo del contexto (puede ser vacío).
func GetDeviceName(c *fiber.Ctx) string {
	v := c.Locals(LocalDeviceName)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
