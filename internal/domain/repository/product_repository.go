package repository

import "github.com/jhoicas/sga-pro-api/internal/domain/entity"

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search    string // busca en sku y nombre
	Category  string
	Limit     int
	Offset    int
	OrderBy   string
	OrderDesc bool
}

// ProductRepository puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(p *entity.Product) error
	Delete(id string) error
	List(f ProductFilter) ([]*entity.Product, int, error)
}
