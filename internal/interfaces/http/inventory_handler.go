package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/application/inventory"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// InventoryHandler maneja las operaciones del libro de inventario (protegido).
type InventoryHandler struct {
	ledger   *inventory.LedgerUseCase
	lowStock *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, lowStock *inventory.LowStockUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, lowStock: lowStock}
}

func parseStockOperation(c *fiber.Ctx) (*dto.StockOperationRequest, error) {
	var in dto.StockOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// AddStock godoc
// @Summary      Sumar stock
// @Description  Suma unidades a una ubicación verificando su capacidad.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "product_id, location_id, quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	in, err := parseStockOperation(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.AddStock(c.Context(), GetUserID(c), in.ProductID, in.LocationID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveStock godoc
// @Summary      Restar stock
// @Description  Resta unidades físicas respetando las reservas vigentes.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "product_id, location_id, quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/remove [post]
func (h *InventoryHandler) RemoveStock(c *fiber.Ctx) error {
	in, err := parseStockOperation(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.RemoveStock(c.Context(), GetUserID(c), in.ProductID, in.LocationID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReserveStock godoc
// @Summary      Reservar stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "product_id, location_id, quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reserve [post]
func (h *InventoryHandler) ReserveStock(c *fiber.Ctx) error {
	in, err := parseStockOperation(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.ReserveStock(c.Context(), GetUserID(c), in.ProductID, in.LocationID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UnreserveStock godoc
// @Summary      Liberar reserva
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "product_id, location_id, quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/unreserve [post]
func (h *InventoryHandler) UnreserveStock(c *fiber.Ctx) error {
	in, err := parseStockOperation(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.UnreserveStock(c.Context(), GetUserID(c), in.ProductID, in.LocationID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock (conteo cíclico)
// @Description  Reemplaza la cantidad física por el valor contado. No toca la reserva.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, location_id, quantity, reason"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.AdjustStock(c.Context(), GetUserID(c), in.ProductID, in.LocationID, in.Quantity, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MoveStock godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  Resta en origen y suma en destino en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveStockRequest  true  "product_id, from_location_id, to_location_id, quantity"
// @Success      200   {object}  dto.MoveStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/move [post]
func (h *InventoryHandler) MoveStock(c *fiber.Ctx) error {
	var in dto.MoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.MoveStock(c.Context(), GetUserID(c), in.ProductID, in.FromLocationID, in.ToLocationID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStockLevel godoc
// @Summary      Nivel de stock de un producto
// @Description  Total físico del producto; location_id vacío suma todas las ubicaciones.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   path   string  true   "ID del producto"
// @Param        location_id  query  string  false  "Limitar a una ubicación"
// @Success      200  {object}  dto.StockLevelResponse
// @Router       /api/inventory/stock-level/{product_id} [get]
func (h *InventoryHandler) GetStockLevel(c *fiber.Ctx) error {
	out, err := h.ledger.GetStockLevel(c.Context(), c.Params("product_id"), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar registros de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        limit        query  int     false  "Tamaño de página"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	out, err := h.ledger.List(c.Context(), repository.StockFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
		OrderBy:    c.Query("order_by"),
		OrderDesc:  c.QueryBool("order_desc"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetLowStock godoc
// @Summary      Productos bajo el nivel mínimo
// @Description  Lista los productos cuyo stock total está por debajo de su umbral, mayor déficit primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockProductDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	list, err := h.lowStock.GetLowStockProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}
