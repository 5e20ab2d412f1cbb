package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/application/usecase"
	"github.com/jhoicas/sga-pro-api/internal/domain"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memLocationRepo struct{ locations map[string]*entity.Location }

func (r *memLocationRepo) Create(l *entity.Location) error { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.locations[id], nil
}
func (r *memLocationRepo) GetByCode(code string) (*entity.Location, error) {
	for _, l := range r.locations {
		if l.Code == code {
			return l, nil
		}
	}
	return nil, nil
}
func (r *memLocationRepo) Update(l *entity.Location) error { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) Delete(id string) error          { delete(r.locations, id); return nil }
func (r *memLocationRepo) List(f repository.LocationFilter) ([]*entity.Location, int, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		out = append(out, l)
	}
	return out, len(out), nil
}

// stubStockRepo solo responde SumQuantityAtLocation con un valor fijo.
type stubStockRepo struct{ stored int }

func (r *stubStockRepo) Get(productID, locationID string) (*entity.StockRecord, error) {
	return nil, nil
}
func (r *stubStockRepo) GetForUpdate(productID, locationID string) (*entity.StockRecord, error) {
	return nil, nil
}
func (r *stubStockRepo) Upsert(rec *entity.StockRecord) error { return nil }
func (r *stubStockRepo) List(f repository.StockFilter) ([]*entity.StockRecord, int, error) {
	return nil, 0, nil
}
func (r *stubStockRepo) SumQuantity(productID, locationID string) (int, error) { return 0, nil }
func (r *stubStockRepo) SumQuantityAtLocation(locationID string) (int, error) {
	return r.stored, nil
}

func newLocationFixture(stored int) (*usecase.LocationUseCase, *memLocationRepo) {
	repo := &memLocationRepo{locations: map[string]*entity.Location{}}
	return usecase.NewLocationUseCase(repo, &stubStockRepo{stored: stored}), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationCreate_CodigoUnico(t *testing.T) {
	uc, _ := newLocationFixture(0)

	_, err := uc.Create(dto.CreateLocationRequest{Code: "A-01-01", Capacity: 100})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateLocationRequest{Code: "A-01-01", Capacity: 50})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocationCreate_CapacidadPositiva(t *testing.T) {
	uc, _ := newLocationFixture(0)
	for _, capacity := range []int{0, -10} {
		_, err := uc.Create(dto.CreateLocationRequest{Code: "B-01-01", Capacity: capacity})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// Reducir la capacidad por debajo de lo ya almacenado invalidaría el
// invariante de capacidad: debe rechazarse.
func TestLocationUpdate_NoReduceBajoLoAlmacenado(t *testing.T) {
	uc, _ := newLocationFixture(60)
	created, err := uc.Create(dto.CreateLocationRequest{Code: "A-01-01", Capacity: 100})
	require.NoError(t, err)

	smaller := 50
	_, err = uc.Update(created.ID, dto.UpdateLocationRequest{Capacity: &smaller})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	bigger := 200
	resp, err := uc.Update(created.ID, dto.UpdateLocationRequest{Capacity: &bigger})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Capacity)
}

func TestLocationDelete_RechazaConStock(t *testing.T) {
	uc, _ := newLocationFixture(5)
	created, err := uc.Create(dto.CreateLocationRequest{Code: "A-01-01", Capacity: 100})
	require.NoError(t, err)

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"una ubicación con unidades almacenadas no puede eliminarse")
}

func TestLocationDelete_VaciaSeElimina(t *testing.T) {
	uc, repo := newLocationFixture(0)
	created, err := uc.Create(dto.CreateLocationRequest{Code: "A-01-01", Capacity: 100})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.Empty(t, repo.locations)
}

func TestLocationGetByID_NoExiste(t *testing.T) {
	uc, _ := newLocationFixture(0)
	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}
