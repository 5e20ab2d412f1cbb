package repository

import (
	"context"

	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
)

// AuditLogRepository puerto del registro de auditoría. Record se invoca después
// del commit de la transacción de negocio; un fallo aquí se reporta al caller
// para que lo registre en el log, nunca para abortar la operación.
type AuditLogRepository interface {
	Record(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]*entity.AuditLog, int, error)
}
