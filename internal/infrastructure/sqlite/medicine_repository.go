package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineColumns = `id, created_by, name, generic_name, form, strength, description, created_at, updated_at`

type medicineRow struct {
	ID          string         `db:"id"`
	CreatedBy   string         `db:"created_by"`
	Name        string         `db:"name"`
	GenericName sql.NullString `db:"generic_name"`
	Form        string         `db:"form"`
	Strength    string         `db:"strength"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r medicineRow) toEntity() *entity.Medicine {
	return &entity.Medicine{
		ID:          r.ID,
		CreatedBy:   r.CreatedBy,
		Name:        r.Name,
		GenericName: r.GenericName.String,
		Form:        r.Form,
		Strength:    r.Strength,
		Description: r.Description.String,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// MedicineRepo implementación del puerto MedicineRepository sobre SQLite.
type MedicineRepo struct {
	q sqlx.ExtContext
}

// NewMedicineRepository construye el adaptador sobre la base o una transacción.
func NewMedicineRepository(q sqlx.ExtContext) *MedicineRepo {
	return &MedicineRepo{q: q}
}

// Create persiste un medicamento.
func (r *MedicineRepo) Create(ctx context.Context, m *entity.Medicine) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO medicines (`+medicineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.CreatedBy, m.Name, nullIfEmpty(m.GenericName), m.Form, m.Strength, nullIfEmpty(m.Description),
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.ErrDuplicateMedicine
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID.
func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	var row medicineRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+medicineColumns+` FROM medicines WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return row.toEntity(), nil
}

// Search busca por subcadena en name o generic_name sin distinguir mayúsculas.
func (r *MedicineRepo) Search(ctx context.Context, keyword string) ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines`
	var args []any
	if kw := strings.TrimSpace(keyword); kw != "" {
		pattern := containsPattern(kw)
		query += ` WHERE lower(name) LIKE ? ESCAPE '\' OR lower(generic_name) LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at, id`

	var rows []medicineRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search medicines: %w", err)
	}
	list := make([]*entity.Medicine, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
