package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta la violación de constraint único (23505) que los
// Create mapean a domain.ErrDuplicate: las PK de stock_transfers, outlets e
// ingredients, y la clave compuesta (outlet_id, ingredient_id) de stock.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// Drivers intermedios pueden envolver el error sin preservar el tipo.
	return strings.Contains(err.Error(), "23505")
}
