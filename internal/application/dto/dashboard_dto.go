package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO producto con más unidades en inventario.
type TopProductDTO struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
}

// LocationUtilizationDTO ocupación de una ubicación.
type LocationUtilizationDTO struct {
	LocationID     string  `json:"location_id"`
	Code           string  `json:"code"`
	Capacity       int     `json:"capacity"`
	Stored         int     `json:"stored"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// DashboardSummaryDTO resumen read-only del almacén.
type DashboardSummaryDTO struct {
	TotalProducts       int                      `json:"total_products"`
	TotalStockUnits     int                      `json:"total_stock_units"`
	TotalStockValue     decimal.Decimal          `json:"total_stock_value"`
	LowStockCount       int                      `json:"low_stock_products_count"`
	LowStockAlerts      []LowStockProductDTO     `json:"low_stock_alerts"`
	TopProductsByStock  []TopProductDTO          `json:"top_products_by_stock"`
	LocationUtilization []LocationUtilizationDTO `json:"warehouse_utilization"`
	InboundUnits30Days  int                      `json:"total_inbound_30_days"`
	OutboundUnits30Days int                      `json:"total_outbound_30_days"`
	GeneratedAt         time.Time                `json:"generated_at"`
}
