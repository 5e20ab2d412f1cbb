package receiving

import (
	"context"

	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// que necesita el flujo de recepción. La recepción completa de un envío (estado,
// cantidades recibidas y sumas al inventario) se confirma o revierte como un
// todo: nunca quedan líneas aplicadas a medias.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		shipmentRepo repository.ShipmentRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
