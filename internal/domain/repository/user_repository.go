package repository

import "github.com/jhoicas/sga-pro-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	// FindByEmail devuelve nil si el email no está registrado.
	FindByEmail(email string) (*entity.User, error)
}
