package repository

import "github.com/jhoicas/sga-pro-api/internal/domain/entity"

// SupplierFilter filtros del listado de proveedores.
type SupplierFilter struct {
	Search    string // busca por nombre
	Limit     int
	Offset    int
	OrderBy   string
	OrderDesc bool
}

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id string) error
	List(f SupplierFilter) ([]*entity.Supplier, int, error)
}
