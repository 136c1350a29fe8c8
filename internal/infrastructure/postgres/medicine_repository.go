package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineSelect = `
	SELECT id, created_by, name, generic_name, form, strength, description, created_at, updated_at
	FROM medicines`

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL.
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el repositorio (pool o tx).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

// Create persiste un medicamento; GenericName y Description vacíos se guardan como NULL.
func (r *MedicineRepo) Create(ctx context.Context, m *entity.Medicine) error {
	query := `
		INSERT INTO medicines (id, created_by, name, generic_name, form, strength, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CreatedBy, m.Name, nullIfEmpty(m.GenericName), m.Form, m.Strength, nullIfEmpty(m.Description),
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMedicine
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID.
func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	if !isUUID(id) {
		return nil, nil
	}
	m, err := scanMedicine(r.q.QueryRow(ctx, medicineSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return m, nil
}

// Search busca por subcadena (ILIKE) en name o generic_name.
func (r *MedicineRepo) Search(ctx context.Context, keyword string) ([]*entity.Medicine, error) {
	query := medicineSelect
	var args []any
	if kw := strings.TrimSpace(keyword); kw != "" {
		query += ` WHERE name ILIKE $1 OR generic_name ILIKE $1`
		args = append(args, containsPattern(kw))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search medicines: %w", err)
	}
	defer rows.Close()
	list := []*entity.Medicine{}
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	var generic, description *string
	err := row.Scan(&m.ID, &m.CreatedBy, &m.Name, &generic, &m.Form, &m.Strength, &description,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.GenericName = derefString(generic)
	m.Description = derefString(description)
	return &m, nil
}
