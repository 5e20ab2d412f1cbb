package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL.
// Las escrituras ocurren fuera de la transacción de negocio (best-effort).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Record inserta una entrada de auditoría.
func (r *AuditLogRepo) Record(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, operation, entity_kind, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.UserID, log.Operation, log.EntityKind, log.EntityID, log.Detail, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List lista entradas de auditoría, más recientes primero.
func (r *AuditLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditLog, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM audit_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	limit, offset = limitOffset(limit, offset)
	query := `
		SELECT id, user_id, operation, entity_kind, entity_id, detail, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Operation, &l.EntityKind, &l.EntityID, &l.Detail, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
