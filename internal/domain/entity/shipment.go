package entity

import "time"

// ShipmentStatus estado de un envío entrante.
type ShipmentStatus string

// Estados de envío entrante (valores en el API igual que en la tabla).
const (
	ShipmentPending    ShipmentStatus = "PENDIENTE"
	ShipmentInProgress ShipmentStatus = "EN_PROCESO"
	ShipmentCompleted  ShipmentStatus = "COMPLETADO"
)

// IsValid indica si el valor corresponde a un estado conocido.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentPending, ShipmentInProgress, ShipmentCompleted:
		return true
	}
	return false
}

// CanTransitionTo valida la transición PENDIENTE → EN_PROCESO → COMPLETADO.
// No hay salida desde COMPLETADO.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	switch s {
	case ShipmentPending:
		return next == ShipmentInProgress || next == ShipmentCompleted
	case ShipmentInProgress:
		return next == ShipmentCompleted
	}
	return false
}

// InboundShipment representa un envío entrante de un proveedor.
// Es dueño exclusivo de sus items: borrarlo borra los items.
type InboundShipment struct {
	ID         string
	SupplierID string
	Status     ShipmentStatus
	ExpectedAt *time.Time
	ReceivedAt *time.Time
	CreatedAt  time.Time
	Items      []*ShipmentItem
}

// ShipmentItem línea de un envío entrante. QuantityExpected se fija al crear;
// QuantityReceived queda en 0 hasta procesar la recepción.
type ShipmentItem struct {
	ID               string
	ShipmentID       string
	ProductID        string
	LocationID       string
	QuantityExpected int
	QuantityReceived int
}

// FindItemByProduct devuelve la línea del producto indicado, o nil si no existe.
func (s *InboundShipment) FindItemByProduct(productID string) *ShipmentItem {
	for _, item := range s.Items {
		if item.ProductID == productID {
			return item
		}
	}
	return nil
}
