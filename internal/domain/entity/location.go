package entity

import "time"

// Location representa una ubicación física de almacenamiento (pasillo-estante-nivel).
// Capacity es el máximo de unidades que la ubicación puede contener; el motor de
// inventario lo verifica en cada adición de stock.
type Location struct {
	ID          string
	Code        string
	Description string
	Capacity    int
	CreatedAt   time.Time
}
