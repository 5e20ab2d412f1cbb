package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sga-pro-api/internal/domain"
	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
	"github.com/jhoicas/sga-pro-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

var locationOrderColumns = map[string]string{
	"code":     "code",
	"capacity": "capacity",
}

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, code, description, capacity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.Description, location.Capacity, location.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.getBy("id", id)
}

// GetByCode obtiene una ubicación por código.
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	return r.getBy("code", code)
}

func (r *LocationRepo) getBy(column, value string) (*entity.Location, error) {
	query := fmt.Sprintf(`
		SELECT id, code, description, capacity, created_at
		FROM locations WHERE %s = $1`, column)
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&l.ID, &l.Code, &l.Description, &l.Capacity, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by %s: %w", column, err)
	}
	return &l, nil
}

// Update actualiza descripción y capacidad. El código no se modifica.
func (r *LocationRepo) Update(location *entity.Location) error {
	query := `UPDATE locations SET description = $2, capacity = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Description, location.Capacity,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// List lista ubicaciones con búsqueda por código y paginación.
func (r *LocationRepo) List(f repository.LocationFilter) ([]*entity.Location, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND code ILIKE $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM locations "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}

	limit, offset := limitOffset(f.Limit, f.Offset)
	order := orderClause(locationOrderColumns, f.OrderBy, "code", f.OrderDesc)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, code, description, capacity, created_at
		FROM locations %s %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Description, &l.Capacity, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// Delete elimina una ubicación por ID.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
