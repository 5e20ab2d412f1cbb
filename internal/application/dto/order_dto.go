package dto

import "time"

// OrderItemRequest línea de un pedido saliente al crearlo. QuantityOrdered es
// la cantidad que se reserva en el libro de inventario.
type OrderItemRequest struct {
	ProductID       string `json:"product_id"`
	LocationID      string `json:"location_id"`
	QuantityOrdered int    `json:"quantity_ordered"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest body para PUT /api/orders/:id.
type UpdateOrderRequest struct {
	CustomerName *string `json:"customer_name,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// PickItemRequest cantidad realmente tomada de una línea durante el picking.
type PickItemRequest struct {
	ProductID      string `json:"product_id"`
	QuantityPicked int    `json:"quantity_picked"`
}

// PickOrderRequest body para POST /api/orders/:id/pick.
type PickOrderRequest struct {
	Items []PickItemRequest `json:"items"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	LocationID      string `json:"location_id"`
	QuantityOrdered int    `json:"quantity_ordered"`
	QuantityPicked  int    `json:"quantity_picked"`
}

// OrderResponse pedido saliente en respuestas.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	ShippedAt    *time.Time          `json:"shipped_at,omitempty"`
	Items        []OrderItemResponse `json:"items"`
}

// OrderListResponse listado paginado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
