package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta el unique_violation (23505) de Postgres; es lo
// que dispara el índice de nombre de producto por hogar y el de nombre de
// hogar, y los repos lo traducen a errores de dominio.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Errores envueltos fuera de la jerarquía de pgconn.
	return strings.Contains(err.Error(), "23505")
}
