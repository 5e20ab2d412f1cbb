package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sga-pro-api/internal/application/auth"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/domain"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/sga-pro-api/pkg/jwt"
)

type memUserRepo struct{ users map[string]*entity.User }

func (r *memUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthFixture() (*auth.AuthUseCase, *memUserRepo) {
	repo := &memUserRepo{users: map[string]*entity.User{}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "sga-pro-test",
	})
	return uc, repo
}

func TestRegisterUser_HasheaPasswordYAsignaRolPorDefecto(t *testing.T) {
	uc, repo := newAuthFixture()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "nuevo@acme.com",
		Password: "secreto-fuerte",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleVendedor, resp.Role, "sin rol explícito se asigna vendedor")
	assert.Equal(t, "active", resp.Status)

	stored, err := repo.FindByEmail("nuevo@acme.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto-fuerte", stored.PasswordHash, "el password nunca se guarda en claro")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@acme.com", Password: "secreto-fuerte"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@acme.com", Password: "otro-secreto"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolDesconocido(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@acme.com", Password: "secreto", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenConUserIDYRol(t *testing.T) {
	uc, _ := newAuthFixture()
	created, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "bodega@acme.com",
		Password: "secreto-fuerte",
		Role:     entity.RoleBodeguero,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "bodega@acme.com", Password: "secreto-fuerte"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleBodeguero, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@acme.com", Password: "secreto-fuerte"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@acme.com", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Email desconocido devuelve el mismo error que password incorrecto: la
// respuesta no revela qué emails existen.
func TestLogin_EmailDesconocido(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@acme.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := newAuthFixture()
	created, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@acme.com", Password: "secreto-fuerte"})
	require.NoError(t, err)
	repo.users[created.ID].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "a@acme.com", Password: "secreto-fuerte"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
