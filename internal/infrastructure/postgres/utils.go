package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// orderClause resuelve la columna de ordenamiento contra una lista blanca.
// Un OrderBy desconocido o vacío cae en la columna por defecto.
func orderClause(allowed map[string]string, orderBy, def string, desc bool) string {
	col, ok := allowed[orderBy]
	if !ok {
		col = def
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

// limitOffset normaliza paginación: límite por defecto 50, máximo 100.
func limitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
