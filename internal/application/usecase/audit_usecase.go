package usecase

import (
	"context"

	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// AuditLogUseCase consulta del registro de auditoría (solo lectura).
type AuditLogUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditLogUseCase construye el caso de uso.
func NewAuditLogUseCase(repo repository.AuditLogRepository) *AuditLogUseCase {
	return &AuditLogUseCase{repo: repo}
}

// List lista entradas de auditoría, más recientes primero.
func (uc *AuditLogUseCase) List(ctx context.Context, limit, offset int) (*dto.AuditLogListResponse, error) {
	entries, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.AuditLogResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Operation:  e.Operation,
			EntityKind: e.EntityKind,
			EntityID:   e.EntityID,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt,
		})
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}
