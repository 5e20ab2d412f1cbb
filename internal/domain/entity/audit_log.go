package entity

import "time"

// AuditLog registro de auditoría de una operación mutadora del inventario.
// Detail lleva cantidades antes/después en texto legible; se escribe fuera de
// la transacción de negocio (best-effort).
type AuditLog struct {
	ID         string
	UserID     string
	Operation  string
	EntityKind string
	EntityID   string
	Detail     string
	CreatedAt  time.Time
}
