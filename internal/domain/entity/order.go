package entity

import "time"

// OrderStatus estado de un pedido saliente.
type OrderStatus string

// Estados de pedido saliente.
const (
	OrderPending OrderStatus = "PENDIENTE"
	OrderPicking OrderStatus = "EN_PICKING"
	OrderPacked  OrderStatus = "EMPACADO"
	OrderShipped OrderStatus = "ENVIADO"
)

// IsValid indica si el valor corresponde a un estado conocido.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPicking, OrderPacked, OrderShipped:
		return true
	}
	return false
}

// CanTransitionTo valida PENDIENTE → EN_PICKING → EMPACADO → ENVIADO.
// No hay salida desde ENVIADO.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderPicking || next == OrderPacked
	case OrderPicking:
		return next == OrderPacked
	case OrderPacked:
		return next == OrderShipped
	}
	return false
}

// OutboundOrder representa un pedido a despachar a un cliente.
// Al crearse reserva stock por cada línea; el picking convierte la reserva
// en una reducción de cantidad física.
type OutboundOrder struct {
	ID           string
	CustomerName string
	Status       OrderStatus
	CreatedAt    time.Time
	ShippedAt    *time.Time
	Items        []*OrderItem
}

// OrderItem línea de un pedido saliente. QuantityOrdered es también la cantidad
// reservada; QuantityPicked queda en 0 hasta el picking.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	LocationID      string
	QuantityOrdered int
	QuantityPicked  int
}

// FindItemByProduct devuelve la línea del producto indicado, o nil si no existe.
func (o *OutboundOrder) FindItemByProduct(productID string) *OrderItem {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return item
		}
	}
	return nil
}
