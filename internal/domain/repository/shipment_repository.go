package repository

import "github.com/jhoicas/sga-pro-api/internal/domain/entity"

// ShipmentFilter filtros del listado de envíos entrantes.
type ShipmentFilter struct {
	SupplierID string
	Status     entity.ShipmentStatus
	Limit      int
	Offset     int
	OrderBy    string
	OrderDesc  bool
}

// ShipmentRepository puerto de persistencia de envíos entrantes y sus items.
// Get/GetForUpdate devuelven el envío con items cargados; GetForUpdate bloquea
// la fila del envío dentro de la transacción.
type ShipmentRepository interface {
	Create(s *entity.InboundShipment) error
	GetByID(id string) (*entity.InboundShipment, error)
	GetByIDForUpdate(id string) (*entity.InboundShipment, error)
	Update(s *entity.InboundShipment) error
	UpdateItem(item *entity.ShipmentItem) error
	Delete(id string) error
	List(f ShipmentFilter) ([]*entity.InboundShipment, int, error)
}
