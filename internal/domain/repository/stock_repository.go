package repository

import "github.com/jhoicas/sga-pro-api/internal/domain/entity"

// StockFilter filtros y paginación para el listado de inventario.
// OrderBy se valida contra una lista blanca en el adaptador; un valor
// desconocido cae en el orden por defecto.
type StockFilter struct {
	ProductID  string
	LocationID string
	Limit      int
	Offset     int
	OrderBy    string
	OrderDesc  bool
}

// StockRepository define el puerto del libro de inventario por (producto, ubicación).
// Las mutaciones se usan dentro de transacciones; GetForUpdate bloquea la fila
// (SELECT FOR UPDATE) para serializar escritores del mismo registro.
type StockRepository interface {
	// Get devuelve el registro o nil si no existe.
	Get(productID, locationID string) (*entity.StockRecord, error)
	// GetForUpdate igual que Get pero bloqueando la fila dentro de la tx.
	GetForUpdate(productID, locationID string) (*entity.StockRecord, error)
	Upsert(rec *entity.StockRecord) error
	List(f StockFilter) ([]*entity.StockRecord, int, error)
	// SumQuantity suma la cantidad física del producto; locationID vacío = global.
	// Devuelve 0 si no hay registros.
	SumQuantity(productID, locationID string) (int, error)
	// SumQuantityAtLocation suma la cantidad almacenada en una ubicación
	// (todas las referencias de producto).
	SumQuantityAtLocation(locationID string) (int, error)
}
