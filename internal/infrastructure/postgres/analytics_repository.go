package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountProducts cuenta los productos del catálogo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// TotalStockUnits suma las unidades físicas de todo el inventario.
func (r *AnalyticsRepo) TotalStockUnits(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM stock_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("total stock units: %w", err)
	}
	return n, nil
}

// TotalStockValue suma cantidad * precio de producto sobre todo el inventario.
func (r *AnalyticsRepo) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(sr.quantity * p.price), 0)
		FROM stock_records sr
		JOIN products p ON p.id = sr.product_id`
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("total stock value: %w", err)
	}
	return v, nil
}

// GetLowStockProducts productos cuyo stock total está por debajo de su nivel mínimo.
// Productos sin registros de inventario cuentan con stock 0.
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context) ([]repository.LowStockItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.min_stock_level, COALESCE(SUM(sr.quantity), 0) AS current_stock
		FROM products p
		LEFT JOIN stock_records sr ON sr.product_id = p.id
		WHERE p.min_stock_level > 0
		GROUP BY p.id, p.sku, p.name, p.min_stock_level
		HAVING COALESCE(SUM(sr.quantity), 0) < p.min_stock_level
		ORDER BY p.min_stock_level - COALESCE(SUM(sr.quantity), 0) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.MinStockLevel, &it.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		it.Deficit = it.MinStockLevel - it.CurrentStock
		items = append(items, it)
	}
	return items, rows.Err()
}

// TopProductsByStock productos con más unidades en inventario.
func (r *AnalyticsRepo) TopProductsByStock(ctx context.Context, limit int) ([]repository.ProductStock, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(SUM(sr.quantity), 0) AS units
		FROM products p
		JOIN stock_records sr ON sr.product_id = p.id
		GROUP BY p.id, p.sku, p.name
		ORDER BY units DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products by stock: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductStock
	for rows.Next() {
		var p repository.ProductStock
		if err := rows.Scan(&p.ProductID, &p.SKU, &p.ProductName, &p.Units); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// LocationUtilization unidades almacenadas frente a capacidad, por ubicación.
func (r *AnalyticsRepo) LocationUtilization(ctx context.Context) ([]repository.LocationUsage, error) {
	query := `
		SELECT l.id, l.code, l.capacity, COALESCE(SUM(sr.quantity), 0) AS stored
		FROM locations l
		LEFT JOIN stock_records sr ON sr.location_id = l.id
		GROUP BY l.id, l.code, l.capacity
		ORDER BY l.code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("location utilization: %w", err)
	}
	defer rows.Close()
	var list []repository.LocationUsage
	for rows.Next() {
		var u repository.LocationUsage
		if err := rows.Scan(&u.LocationID, &u.Code, &u.Capacity, &u.Stored); err != nil {
			return nil, fmt.Errorf("scan location usage: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// InboundUnits unidades recibidas en envíos completados desde la fecha dada.
func (r *AnalyticsRepo) InboundUnits(ctx context.Context, since time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(si.quantity_received), 0)
		FROM shipment_items si
		JOIN inbound_shipments s ON s.id = si.shipment_id
		WHERE s.status = $1 AND s.received_at >= $2`
	var n int
	err := r.q.QueryRow(ctx, query, string(entity.ShipmentCompleted), since).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("inbound units: %w", err)
	}
	return n, nil
}

// OutboundUnits unidades pickeadas de pedidos enviados desde la fecha dada.
func (r *AnalyticsRepo) OutboundUnits(ctx context.Context, since time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(oi.quantity_picked), 0)
		FROM order_items oi
		JOIN outbound_orders o ON o.id = oi.order_id
		WHERE o.status = $1 AND o.shipped_at >= $2`
	var n int
	err := r.q.QueryRow(ctx, query, string(entity.OrderShipped), since).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("outbound units: %w", err)
	}
	return n, nil
}
