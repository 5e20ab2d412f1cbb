package dto

import "time"

// StockOperationRequest body para add/remove/reserve/unreserve de stock.
type StockOperationRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// AdjustStockRequest body para POST /api/inventory/adjust (conteo cíclico:
// Quantity reemplaza la cantidad actual, no la incrementa).
type AdjustStockRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason,omitempty"`
}

// MoveStockRequest body para POST /api/inventory/move.
type MoveStockRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int    `json:"quantity"`
}

// StockRecordResponse registro del libro de inventario en respuestas.
type StockRecordResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	LocationID       string    `json:"location_id"`
	Quantity         int       `json:"quantity"`
	ReservedQuantity int       `json:"reserved_quantity"`
	Available        int       `json:"available"`
	LastUpdated      time.Time `json:"last_updated"`
}

// MoveStockResponse los dos registros actualizados por un traslado.
type MoveStockResponse struct {
	From StockRecordResponse `json:"from"`
	To   StockRecordResponse `json:"to"`
}

// StockLevelResponse respuesta del nivel de stock de un producto.
type StockLevelResponse struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id,omitempty"`
	StockLevel int    `json:"stock_level"`
}

// StockListResponse listado paginado del inventario.
type StockListResponse struct {
	Items []StockRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LowStockProductDTO producto por debajo de su nivel mínimo de stock.
type LowStockProductDTO struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"product_sku"`
	ProductName   string `json:"product_name"`
	MinStockLevel int    `json:"min_stock_level"`
	CurrentStock  int    `json:"current_stock"`
	Deficit       int    `json:"difference"`
}
