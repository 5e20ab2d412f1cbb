package fulfillment

import (
	"context"

	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// del flujo de despacho. La creación de un pedido (con sus reservas) y el
// picking completo se confirman o revierten como un todo: un pedido creado
// siempre tiene todas sus líneas reservadas.
type TxRunner interface {
	RunFulfillment(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
