package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/domain"
)

// errorStatus mapea errores de dominio a (status HTTP, código de API).
// Todo error no mapeado es un 500.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrSupplierNotFound),
		errors.Is(err, domain.ErrStockNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return fiber.StatusConflict, "CAPACITY_EXCEEDED"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInsufficientAvailable):
		return fiber.StatusConflict, "INSUFFICIENT_AVAILABLE"
	case errors.Is(err, domain.ErrOverRelease):
		return fiber.StatusConflict, "OVER_RELEASE"
	case errors.Is(err, domain.ErrSameLocation):
		return fiber.StatusBadRequest, "SAME_LOCATION"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrShipmentCompleted):
		return fiber.StatusConflict, "SHIPMENT_COMPLETED"
	case errors.Is(err, domain.ErrOrderShipped):
		return fiber.StatusConflict, "ORDER_SHIPPED"
	case errors.Is(err, domain.ErrOrderNotPacked):
		return fiber.StatusConflict, "ORDER_NOT_PACKED"
	case errors.Is(err, domain.ErrItemNotInShipment):
		return fiber.StatusBadRequest, "ITEM_NOT_IN_SHIPMENT"
	case errors.Is(err, domain.ErrItemNotInOrder):
		return fiber.StatusBadRequest, "ITEM_NOT_IN_ORDER"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe la respuesta de error con el mapeo de errorStatus.
func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
