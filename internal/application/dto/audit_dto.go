package dto

import "time"

// AuditLogResponse entrada del registro de auditoría en respuestas.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Operation  string    `json:"operation"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditLogListResponse listado paginado de auditoría.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
