package repository

import "github.com/jhoicas/sga-pro-api/internal/domain/entity"

// LocationFilter filtros del listado de ubicaciones.
type LocationFilter struct {
	Search    string // busca por código
	Limit     int
	Offset    int
	OrderBy   string
	OrderDesc bool
}

// LocationRepository puerto de persistencia de ubicaciones físicas.
// El motor de inventario lo consulta en modo solo lectura (existencia y capacidad).
type LocationRepository interface {
	Create(l *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	Update(l *entity.Location) error
	Delete(id string) error
	List(f LocationFilter) ([]*entity.Location, int, error)
}
