package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// Columnas de ordenamiento permitidas para el listado de inventario.
var stockOrderColumns = map[string]string{
	"quantity":     "quantity",
	"reserved":     "reserved_quantity",
	"last_updated": "last_updated",
}

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador del libro de inventario. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devuelve el registro de un producto en una ubicación, o nil si no existe.
func (r *StockRepo) Get(productID, locationID string) (*entity.StockRecord, error) {
	return r.get(productID, locationID, false)
}

// GetForUpdate igual que Get pero bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *StockRepo) GetForUpdate(productID, locationID string) (*entity.StockRecord, error) {
	return r.get(productID, locationID, true)
}

func (r *StockRepo) get(productID, locationID string, forUpdate bool) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, location_id, quantity, reserved_quantity, last_updated
		FROM stock_records WHERE product_id = $1 AND location_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.ReservedQuantity, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza cantidades (por producto y ubicación).
func (r *StockRepo) Upsert(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, location_id, quantity, reserved_quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reserved_quantity = EXCLUDED.reserved_quantity, last_updated = now()`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.LocationID, rec.Quantity, rec.ReservedQuantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// List lista registros de inventario con filtros y paginación.
func (r *StockRepo) List(f repository.StockFilter) ([]*entity.StockRecord, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		where += fmt.Sprintf(" AND location_id = $%d", len(args))
	}

	var total int
	countQuery := "SELECT count(*) FROM stock_records " + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock records: %w", err)
	}

	limit, offset := limitOffset(f.Limit, f.Offset)
	order := orderClause(stockOrderColumns, f.OrderBy, "last_updated", f.OrderDesc)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, product_id, location_id, quantity, reserved_quantity, last_updated
		FROM stock_records %s %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.ReservedQuantity, &s.LastUpdated); err != nil {
			return nil, 0, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// SumQuantity suma la cantidad física de un producto; locationID vacío = global.
func (r *StockRepo) SumQuantity(productID, locationID string) (int, error) {
	var total int
	var err error
	if locationID != "" {
		err = r.q.QueryRow(context.Background(),
			`SELECT COALESCE(SUM(quantity), 0) FROM stock_records WHERE product_id = $1 AND location_id = $2`,
			productID, locationID,
		).Scan(&total)
	} else {
		err = r.q.QueryRow(context.Background(),
			`SELECT COALESCE(SUM(quantity), 0) FROM stock_records WHERE product_id = $1`,
			productID,
		).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("sum stock quantity: %w", err)
	}
	return total, nil
}

// SumQuantityAtLocation suma las unidades almacenadas en una ubicación
// (todas las referencias). Usada por la verificación de capacidad.
func (r *StockRepo) SumQuantityAtLocation(locationID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_records WHERE location_id = $1`,
		locationID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock at location: %w", err)
	}
	return total, nil
}
