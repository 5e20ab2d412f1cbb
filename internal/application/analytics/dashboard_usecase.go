// Package analytics contiene los casos de uso read-only para el dashboard
// del almacén.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

const (
	dashboardTopProducts = 5                   // número de productos en el widget top
	dashboardFlowWindow  = 30 * 24 * time.Hour // ventana de entradas/salidas
)

// DashboardUseCase genera el resumen agregado del almacén.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// Nunca muta el libro de inventario; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro grupos de consultas en paralelo:
//  1. Totales: productos, unidades, valor de inventario
//  2. Alertas de stock bajo
//  3. Top productos por unidades + ocupación por ubicación
//  4. Flujo entrante/saliente de los últimos 30 días
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	since := now.Add(-dashboardFlowWindow)

	type totalsResult struct {
		products int
		units    int
		value    decimal.Decimal
		err      error
	}
	type lowStockResult struct {
		items []repository.LowStockItem
		err   error
	}
	type widgetsResult struct {
		top   []repository.ProductStock
		usage []repository.LocationUsage
		err   error
	}
	type flowResult struct {
		inbound  int
		outbound int
		err      error
	}

	totalsCh := make(chan totalsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	widgetsCh := make(chan widgetsResult, 1)
	flowCh := make(chan flowResult, 1)

	go func() {
		var r totalsResult
		r.products, r.err = uc.analyticsRepo.CountProducts(ctx)
		if r.err == nil {
			r.units, r.err = uc.analyticsRepo.TotalStockUnits(ctx)
		}
		if r.err == nil {
			r.value, r.err = uc.analyticsRepo.TotalStockValue(ctx)
		}
		totalsCh <- r
	}()
	go func() {
		items, err := uc.analyticsRepo.GetLowStockProducts(ctx)
		lowCh <- lowStockResult{items, err}
	}()
	go func() {
		var r widgetsResult
		r.top, r.err = uc.analyticsRepo.TopProductsByStock(ctx, dashboardTopProducts)
		if r.err == nil {
			r.usage, r.err = uc.analyticsRepo.LocationUtilization(ctx)
		}
		widgetsCh <- r
	}()
	go func() {
		var r flowResult
		r.inbound, r.err = uc.analyticsRepo.InboundUnits(ctx, since)
		if r.err == nil {
			r.outbound, r.err = uc.analyticsRepo.OutboundUnits(ctx, since)
		}
		flowCh <- r
	}()

	totals := <-totalsCh
	low := <-lowCh
	widgets := <-widgetsCh
	flow := <-flowCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de inventario: %w", totals.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: alertas de stock bajo: %w", low.err)
	}
	if widgets.err != nil {
		return nil, fmt.Errorf("dashboard: widgets de almacén: %w", widgets.err)
	}
	if flow.err != nil {
		return nil, fmt.Errorf("dashboard: flujo de unidades: %w", flow.err)
	}

	alerts := make([]dto.LowStockProductDTO, 0, len(low.items))
	for _, it := range low.items {
		alerts = append(alerts, dto.LowStockProductDTO{
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			ProductName:   it.ProductName,
			MinStockLevel: it.MinStockLevel,
			CurrentStock:  it.CurrentStock,
			Deficit:       it.Deficit,
		})
	}

	top := make([]dto.TopProductDTO, 0, len(widgets.top))
	for _, p := range widgets.top {
		top = append(top, dto.TopProductDTO{
			ProductID:   p.ProductID,
			SKU:         p.SKU,
			ProductName: p.ProductName,
			Units:       p.Units,
		})
	}

	usage := make([]dto.LocationUtilizationDTO, 0, len(widgets.usage))
	for _, u := range widgets.usage {
		pct := 0.0
		if u.Capacity > 0 {
			pct = float64(u.Stored) / float64(u.Capacity) * 100
		}
		usage = append(usage, dto.LocationUtilizationDTO{
			LocationID:     u.LocationID,
			Code:           u.Code,
			Capacity:       u.Capacity,
			Stored:         u.Stored,
			UtilizationPct: pct,
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:       totals.products,
		TotalStockUnits:     totals.units,
		TotalStockValue:     totals.value.Round(2),
		LowStockCount:       len(alerts),
		LowStockAlerts:      alerts,
		TopProductsByStock:  top,
		LocationUtilization: usage,
		InboundUnits30Days:  flow.inbound,
		OutboundUnits30Days: flow.outbound,
		GeneratedAt:         now,
	}, nil
}
