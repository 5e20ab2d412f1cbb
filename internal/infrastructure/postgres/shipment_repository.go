package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

var shipmentOrderColumns = map[string]string{
	"status":      "status",
	"expected_at": "expected_at",
	"created_at":  "created_at",
}

// ShipmentRepo implementación de ShipmentRepository sobre PostgreSQL.
// Los items se cargan siempre junto al envío (agregado completo).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de envíos entrantes. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste el envío y sus items.
func (r *ShipmentRepo) Create(s *entity.InboundShipment) error {
	ctx := context.Background()
	query := `
		INSERT INTO inbound_shipments (id, supplier_id, status, expected_at, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SupplierID, string(s.Status), s.ExpectedAt, s.ReceivedAt, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	for _, item := range s.Items {
		if err := r.insertItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *ShipmentRepo) insertItem(ctx context.Context, item *entity.ShipmentItem) error {
	query := `
		INSERT INTO shipment_items (id, shipment_id, product_id, location_id, quantity_expected, quantity_received)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ShipmentID, item.ProductID, item.LocationID,
		item.QuantityExpected, item.QuantityReceived,
	)
	if err != nil {
		return fmt.Errorf("insert shipment item: %w", err)
	}
	return nil
}

// GetByID obtiene un envío con sus items, o nil si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.InboundShipment, error) {
	return r.get(id, false)
}

// GetByIDForUpdate igual que GetByID pero bloqueando la fila del envío.
func (r *ShipmentRepo) GetByIDForUpdate(id string) (*entity.InboundShipment, error) {
	return r.get(id, true)
}

func (r *ShipmentRepo) get(id string, forUpdate bool) (*entity.InboundShipment, error) {
	ctx := context.Background()
	query := `
		SELECT id, supplier_id, status, expected_at, received_at, created_at
		FROM inbound_shipments WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.InboundShipment
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SupplierID, &status, &s.ExpectedAt, &s.ReceivedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	s.Status = entity.ShipmentStatus(status)

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

func (r *ShipmentRepo) loadItems(ctx context.Context, shipmentID string) ([]*entity.ShipmentItem, error) {
	query := `
		SELECT id, shipment_id, product_id, location_id, quantity_expected, quantity_received
		FROM shipment_items WHERE shipment_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("load shipment items: %w", err)
	}
	defer rows.Close()
	var items []*entity.ShipmentItem
	for rows.Next() {
		var it entity.ShipmentItem
		if err := rows.Scan(&it.ID, &it.ShipmentID, &it.ProductID, &it.LocationID,
			&it.QuantityExpected, &it.QuantityReceived); err != nil {
			return nil, fmt.Errorf("scan shipment item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update actualiza la cabecera del envío (estado, fechas). No toca los items.
func (r *ShipmentRepo) Update(s *entity.InboundShipment) error {
	query := `
		UPDATE inbound_shipments SET status = $2, expected_at = $3, received_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, string(s.Status), s.ExpectedAt, s.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	return nil
}

// UpdateItem actualiza una línea del envío (cantidad recibida).
func (r *ShipmentRepo) UpdateItem(item *entity.ShipmentItem) error {
	query := `
		UPDATE shipment_items SET location_id = $2, quantity_expected = $3, quantity_received = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.LocationID, item.QuantityExpected, item.QuantityReceived,
	)
	if err != nil {
		return fmt.Errorf("update shipment item: %w", err)
	}
	return nil
}

// Delete elimina el envío; sus items caen en cascada (FK).
func (r *ShipmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inbound_shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}

// List lista envíos (con items) filtrando por proveedor y estado.
func (r *ShipmentRepo) List(f repository.ShipmentFilter) ([]*entity.InboundShipment, int, error) {
	ctx := context.Background()
	where := "WHERE 1=1"
	args := []any{}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM inbound_shipments "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shipments: %w", err)
	}

	limit, offset := limitOffset(f.Limit, f.Offset)
	order := orderClause(shipmentOrderColumns, f.OrderBy, "created_at", f.OrderDesc)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, supplier_id, status, expected_at, received_at, created_at
		FROM inbound_shipments %s %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.InboundShipment
	for rows.Next() {
		var s entity.InboundShipment
		var status string
		if err := rows.Scan(&s.ID, &s.SupplierID, &status, &s.ExpectedAt, &s.ReceivedAt, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan shipment: %w", err)
		}
		s.Status = entity.ShipmentStatus(status)
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, s := range list {
		items, err := r.loadItems(ctx, s.ID)
		if err != nil {
			return nil, 0, err
		}
		s.Items = items
	}
	return list, total, nil
}
