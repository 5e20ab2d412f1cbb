package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItem producto cuyo stock total está por debajo de su nivel mínimo.
type LowStockItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	MinStockLevel int
	CurrentStock  int
	Deficit       int
}

// ProductStock unidades totales de un producto (widget top productos).
type ProductStock struct {
	ProductID   string
	SKU         string
	ProductName string
	Units       int
}

// LocationUsage ocupación de una ubicación frente a su capacidad.
type LocationUsage struct {
	LocationID string
	Code       string
	Capacity   int
	Stored     int
}

// AnalyticsRepository consultas read-only para el dashboard. Nunca muta el
// libro de inventario.
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	TotalStockUnits(ctx context.Context) (int, error)
	// TotalStockValue suma cantidad * precio de producto sobre todo el inventario.
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
	GetLowStockProducts(ctx context.Context) ([]LowStockItem, error)
	TopProductsByStock(ctx context.Context, limit int) ([]ProductStock, error)
	LocationUtilization(ctx context.Context) ([]LocationUsage, error)
	// InboundUnits unidades recibidas (quantity_received) desde la fecha dada.
	InboundUnits(ctx context.Context, since time.Time) (int, error)
	// OutboundUnits unidades despachadas (quantity_picked de pedidos enviados) desde la fecha dada.
	OutboundUnits(ctx context.Context, since time.Time) (int, error)
}
