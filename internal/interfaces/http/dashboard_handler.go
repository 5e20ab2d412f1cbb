package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sga-pro-api/internal/application/analytics"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/application/usecase"
)

// DashboardHandler expone el resumen del almacén y el registro de auditoría.
type DashboardHandler struct {
	dashboard *analytics.DashboardUseCase
	auditUC   *usecase.AuditLogUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *analytics.DashboardUseCase, auditUC *usecase.AuditLogUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, auditUC: auditUC}
}

// GetSummary godoc
// @Summary      Resumen del almacén
// @Description  Totales de catálogo e inventario, alertas de stock bajo, ocupación por ubicación y flujo de 30 días.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAuditLogs godoc
// @Summary      Registro de auditoría
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.AuditLogListResponse
// @Router       /api/audit-logs [get]
func (h *DashboardHandler) ListAuditLogs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	out, err := h.auditUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
