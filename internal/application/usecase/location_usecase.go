package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sga-pro-api/internal/application/dto"
	"github.com/jhoicas/sga-pro-api/internal/domain"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones físicas de almacenamiento.
type LocationUseCase struct {
	repo      repository.LocationRepository
	stockRepo repository.StockRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, stockRepo repository.StockRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea una ubicación. El código debe ser único y la capacidad positiva.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" || in.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	location := &entity.Location{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Description: in.Description,
		Capacity:    in.Capacity,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return toLocationResponse(location), nil
}

// Update actualiza descripción y capacidad. Reducir la capacidad por debajo de
// las unidades ya almacenadas no se permite.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	if in.Description != nil {
		location.Description = *in.Description
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		stored, err := uc.stockRepo.SumQuantityAtLocation(id)
		if err != nil {
			return nil, err
		}
		if *in.Capacity < stored {
			return nil, domain.ErrCapacityExceeded
		}
		location.Capacity = *in.Capacity
	}
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones con búsqueda por código y paginación.
func (uc *LocationUseCase) List(f repository.LocationFilter) (*dto.LocationListResponse, error) {
	list, total, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Delete elimina una ubicación. No se permite si aún contiene unidades.
func (uc *LocationUseCase) Delete(id string) error {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrLocationNotFound
	}
	stored, err := uc.stockRepo.SumQuantityAtLocation(id)
	if err != nil {
		return err
	}
	if stored > 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:          l.ID,
		Code:        l.Code,
		Description: l.Description,
		Capacity:    l.Capacity,
		CreatedAt:   l.CreatedAt,
	}
}
