package entity

import "time"

// StockRecord es la unidad del libro de inventario: cantidad física y cantidad
// reservada de un producto en una ubicación. Único por (ProductID, LocationID).
//
// Invariantes: Quantity >= 0 y 0 <= ReservedQuantity <= Quantity. El caso de uso
// de inventario las verifica en cada mutación bajo bloqueo de fila.
type StockRecord struct {
	ID               string
	ProductID        string
	LocationID       string
	Quantity         int
	ReservedQuantity int
	LastUpdated      time.Time
}

// Available devuelve las unidades disponibles para reservar o retirar
// (cantidad física menos reservada). Derivado, nunca se persiste.
func (s *StockRecord) Available() int {
	return s.Quantity - s.ReservedQuantity
}
