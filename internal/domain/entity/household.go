package entity

import "time"

// Household hogar propietario del inventario. AccessCodeHash guarda el código
// de acceso hasheado con bcrypt; los dispositivos se autentican con él.
type Household struct {
	ID             string
	Name           string
	AccessCodeHash string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
