package repository

import "github.com/jhoicas/sga-pro-api/internal/domain/entity"

// OrderFilter filtros del listado de pedidos salientes.
type OrderFilter struct {
	CustomerName string // coincidencia parcial, sin distinguir mayúsculas
	Status       entity.OrderStatus
	Limit        int
	Offset       int
	OrderBy      string
	OrderDesc    bool
}

// OrderRepository puerto de persistencia de pedidos salientes y sus items.
type OrderRepository interface {
	Create(o *entity.OutboundOrder) error
	GetByID(id string) (*entity.OutboundOrder, error)
	GetByIDForUpdate(id string) (*entity.OutboundOrder, error)
	Update(o *entity.OutboundOrder) error
	UpdateItem(item *entity.OrderItem) error
	Delete(id string) error
	List(f OrderFilter) ([]*entity.OutboundOrder, int, error)
}
