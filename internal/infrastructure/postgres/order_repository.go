package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderOrderColumns = map[string]string{
	"status":        "status",
	"customer_name": "customer_name",
	"created_at":    "created_at",
}

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
// Los items se cargan siempre junto al pedido (agregado completo).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos salientes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido y sus items.
func (r *OrderRepo) Create(o *entity.OutboundOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO outbound_orders (id, customer_name, status, shipped_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerName, string(o.Status), o.ShippedAt, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, item := range o.Items {
		if err := r.insertItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepo) insertItem(ctx context.Context, item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, location_id, quantity_ordered, quantity_picked)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrderID, item.ProductID, item.LocationID,
		item.QuantityOrdered, item.QuantityPicked,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus items, o nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.OutboundOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate igual que GetByID pero bloqueando la fila del pedido.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.OutboundOrder, error) {
	return r.get(id, true)
}

func (r *OrderRepo) get(id string, forUpdate bool) (*entity.OutboundOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, customer_name, status, shipped_at, created_at
		FROM outbound_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.OutboundOrder
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerName, &status, &o.ShippedAt, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Status = entity.OrderStatus(status)

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, location_id, quantity_ordered, quantity_picked
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.LocationID,
			&it.QuantityOrdered, &it.QuantityPicked); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update actualiza la cabecera del pedido (estado, cliente, fecha de envío). No toca los items.
func (r *OrderRepo) Update(o *entity.OutboundOrder) error {
	query := `
		UPDATE outbound_orders SET customer_name = $2, status = $3, shipped_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.CustomerName, string(o.Status), o.ShippedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// UpdateItem actualiza una línea del pedido (cantidad pickeada).
func (r *OrderRepo) UpdateItem(item *entity.OrderItem) error {
	query := `
		UPDATE order_items SET location_id = $2, quantity_ordered = $3, quantity_picked = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.LocationID, item.QuantityOrdered, item.QuantityPicked,
	)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	return nil
}

// Delete elimina el pedido; sus items caen en cascada (FK).
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM outbound_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// List lista pedidos (con items) filtrando por cliente y estado.
func (r *OrderRepo) List(f repository.OrderFilter) ([]*entity.OutboundOrder, int, error) {
	ctx := context.Background()
	where := "WHERE 1=1"
	args := []any{}
	if f.CustomerName != "" {
		args = append(args, "%"+f.CustomerName+"%")
		where += fmt.Sprintf(" AND customer_name ILIKE $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM outbound_orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	limit, offset := limitOffset(f.Limit, f.Offset)
	order := orderClause(orderOrderColumns, f.OrderBy, "created_at", f.OrderDesc)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, customer_name, status, shipped_at, created_at
		FROM outbound_orders %s %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.OutboundOrder
	for rows.Next() {
		var o entity.OutboundOrder
		var status string
		if err := rows.Scan(&o.ID, &o.CustomerName, &status, &o.ShippedAt, &o.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		o.Status = entity.OrderStatus(status)
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, o := range list {
		items, err := r.loadItems(ctx, o.ID)
		if err != nil {
			return nil, 0, err
		}
		o.Items = items
	}
	return list, total, nil
}
