package dto

import "time"

// RegisterHouseholdRequest entrada para crear un hogar (access_code en texto,
// se hashea en el use case).
type RegisterHouseholdRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=120"`
	AccessCode string `json:"access_code" validate:"required,min=6"`
}

// LoginRequest entrada para login de un dispositivo en un hogar.
type LoginRequest struct {
	HouseholdName string `json:"household_name" validate:"required"`
	AccessCode    string `json:"access_code" validate:"required"`
	DeviceName    string `json:"device_name,omitempty"`
}

// HouseholdResponse salida de un hogar (sin hash).
type HouseholdResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token emitido para el dispositivo.
type LoginResponse struct {
	Token       string `json:"token"`
	HouseholdID string `json:"household_id"`
	ExpiresIn   int    `json:"expires_in"` // segundos
}
