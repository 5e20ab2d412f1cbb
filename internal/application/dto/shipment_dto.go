package dto

import "time"

// ShipmentItemRequest línea de un envío entrante al crearlo.
type ShipmentItemRequest struct {
	ProductID        string `json:"product_id"`
	LocationID       string `json:"location_id"`
	QuantityExpected int    `json:"quantity_expected"`
}

// CreateShipmentRequest body para POST /api/shipments.
type CreateShipmentRequest struct {
	SupplierID string                `json:"supplier_id"`
	ExpectedAt *time.Time            `json:"expected_at,omitempty"`
	Items      []ShipmentItemRequest `json:"items"`
}

// UpdateShipmentRequest body para PUT /api/shipments/:id.
type UpdateShipmentRequest struct {
	ExpectedAt *time.Time `json:"expected_at,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// ReceiveItemRequest cantidad realmente recibida de una línea.
type ReceiveItemRequest struct {
	ProductID        string `json:"product_id"`
	QuantityReceived int    `json:"quantity_received"`
}

// ReceiveShipmentRequest body para POST /api/shipments/:id/receive.
type ReceiveShipmentRequest struct {
	Items []ReceiveItemRequest `json:"items"`
}

// ShipmentItemResponse línea de envío en respuestas.
type ShipmentItemResponse struct {
	ID               string `json:"id"`
	ProductID        string `json:"product_id"`
	LocationID       string `json:"location_id"`
	QuantityExpected int    `json:"quantity_expected"`
	QuantityReceived int    `json:"quantity_received"`
}

// ShipmentResponse envío entrante en respuestas.
type ShipmentResponse struct {
	ID         string                 `json:"id"`
	SupplierID string                 `json:"supplier_id"`
	Status     string                 `json:"status"`
	ExpectedAt *time.Time             `json:"expected_at,omitempty"`
	ReceivedAt *time.Time             `json:"received_at,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	Items      []ShipmentItemResponse `json:"items"`
}

// ShipmentListResponse listado paginado de envíos.
type ShipmentListResponse struct {
	Items []ShipmentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
