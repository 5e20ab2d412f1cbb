package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo del almacén.
// MinStockLevel es el umbral para alertas de reposición.
type Product struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	MinStockLevel int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
