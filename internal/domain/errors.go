package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrLocationNotFound = errors.New("ubicación no encontrada")
	ErrSupplierNotFound = errors.New("proveedor no encontrado")
	ErrStockNotFound    = errors.New("registro de inventario no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")

	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Errores del motor de inventario.
	ErrCapacityExceeded      = errors.New("capacidad de la ubicación excedida")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInsufficientAvailable = errors.New("stock disponible insuficiente")
	ErrOverRelease           = errors.New("no se puede liberar más de lo reservado")
	ErrSameLocation          = errors.New("ubicación origen y destino deben ser distintas")

	// Errores de las máquinas de estado (recepción y despacho).
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrShipmentCompleted = errors.New("el envío entrante ya fue completado")
	ErrOrderShipped      = errors.New("el pedido ya fue enviado")
	ErrOrderNotPacked    = errors.New("el pedido debe estar empacado antes de enviarse")
	ErrItemNotInShipment = errors.New("el producto no pertenece al envío")
	ErrItemNotInOrder    = errors.New("el producto no pertenece al pedido")
)
