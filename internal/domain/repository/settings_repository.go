package repository

import "context"

// SettingsRepository almacén clave/valor de banderas de la aplicación
// (p. ej. la bandera de idempotencia de la migración de esquema).
type SettingsRepository interface {
	GetFlag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, value bool) error
}
