package inventory

import (
	"context"

	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las operaciones
// del libro de inventario: o todas las mutaciones de fn quedan aplicadas,
// o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
