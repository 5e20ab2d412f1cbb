package inventory

import (
	"context"

	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// LowStockUseCase lista los productos cuyo stock total está por debajo de su
// nivel mínimo, ordenados por mayor déficit primero. Solo lectura.
type LowStockUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(analyticsRepo repository.AnalyticsRepository) *LowStockUseCase {
	return &LowStockUseCase{analyticsRepo: analyticsRepo}
}

// GetLowStockProducts devuelve los productos bajo el umbral de reposición.
func (uc *LowStockUseCase) GetLowStockProducts(ctx context.Context) ([]dto.LowStockProductDTO, error) {
	items, err := uc.analyticsRepo.GetLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockProductDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockProductDTO{
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			ProductName:   it.ProductName,
			MinStockLevel: it.MinStockLevel,
			CurrentStock:  it.CurrentStock,
			Deficit:       it.Deficit,
		})
	}
	return out, nil
}
