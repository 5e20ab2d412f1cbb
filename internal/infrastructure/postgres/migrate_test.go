package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	data, err := migrationsFS.ReadFile("migrations/" + name)
	require.NoError(t, err)
	return string(data)
}

// Un ajuste por conteo cíclico puede dejar reservado > cantidad; esa fila debe
// poder persistirse. El esquema no debe imponer un CHECK entre ambas columnas
// o el Upsert del ajuste abortaría la transacción con entrada válida.
func TestSchema_StockRecords_PermiteReservadoMayorQueCantidad(t *testing.T) {
	ddl := readMigration(t, "0001_init.up.sql")

	normalized := strings.ToLower(strings.Join(strings.Fields(ddl), " "))
	assert.NotContains(t, normalized, "reserved_quantity <= quantity",
		"el invariante reservado <= cantidad lo hace cumplir el libro, no el esquema")
	assert.NotContains(t, normalized, "quantity >= reserved_quantity")
}

// Los CHECK de una sola columna sí viven en el esquema.
func TestSchema_StockRecords_ConservaChecksDeColumna(t *testing.T) {
	ddl := readMigration(t, "0001_init.up.sql")

	assert.Contains(t, ddl, "CHECK (quantity >= 0)")
	assert.Contains(t, ddl, "CHECK (reserved_quantity >= 0)")
	assert.Contains(t, ddl, "UNIQUE (product_id, location_id)")
}

func TestPgx5DSN_NormalizaEsquema(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@host:5432/db":     "pgx5://u:p@host:5432/db",
		"postgresql://u:p@host:5432/db":   "pgx5://u:p@host:5432/db",
		"pgx5://u:p@host:5432/db":         "pgx5://u:p@host:5432/db",
		"host=localhost dbname=db user=u": "host=localhost dbname=db user=u",
	}
	for in, want := range cases {
		assert.Equal(t, want, pgx5DSN(in), "dsn %q", in)
	}
}
