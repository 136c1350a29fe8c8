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

var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

const pharmacyColumns = `id, owner_id, name, city, address, phone, is_active, cr_number, created_at, updated_at`

type pharmacyRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	City      string    `db:"city"`
	Address   string    `db:"address"`
	Phone     string    `db:"phone"`
	IsActive  bool      `db:"is_active"`
	CRNumber  string    `db:"cr_number"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r pharmacyRow) toEntity() *entity.Pharmacy {
	return &entity.Pharmacy{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		City:      r.City,
		Address:   r.Address,
		Phone:     r.Phone,
		IsActive:  r.IsActive,
		CRNumber:  r.CRNumber,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PharmacyRepo implementación del puerto PharmacyRepository sobre SQLite.
type PharmacyRepo struct {
	q sqlx.ExtContext
}

// NewPharmacyRepository construye el adaptador sobre la base o una transacción.
func NewPharmacyRepository(q sqlx.ExtContext) *PharmacyRepo {
	return &PharmacyRepo{q: q}
}

// Create persiste una farmacia.
func (r *PharmacyRepo) Create(ctx context.Context, p *entity.Pharmacy) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO pharmacies (`+pharmacyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, p.City, p.Address, p.Phone, p.IsActive, p.CRNumber, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return pharmacyWriteError("insert pharmacy", err)
	}
	return nil
}

// GetByID obtiene una farmacia por ID.
func (r *PharmacyRepo) GetByID(ctx context.Context, id string) (*entity.Pharmacy, error) {
	var row pharmacyRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+pharmacyColumns+` FROM pharmacies WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pharmacy: %w", err)
	}
	return row.toEntity(), nil
}

// Update actualiza los datos editables de la farmacia.
func (r *PharmacyRepo) Update(ctx context.Context, p *entity.Pharmacy) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE pharmacies SET name = ?, city = ?, address = ?, phone = ?, is_active = ?, cr_number = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.City, p.Address, p.Phone, p.IsActive, p.CRNumber, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return pharmacyWriteError("update pharmacy", err)
	}
	return nil
}

// ListByOwner lista las farmacias de un dueño en orden de creación.
func (r *PharmacyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Pharmacy, error) {
	return r.list(ctx, `SELECT `+pharmacyColumns+` FROM pharmacies WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
}

// ListActive lista las farmacias activas de todos los dueños.
func (r *PharmacyRepo) ListActive(ctx context.Context) ([]*entity.Pharmacy, error) {
	return r.list(ctx, `SELECT `+pharmacyColumns+` FROM pharmacies WHERE is_active = 1 ORDER BY name, city, id`)
}

// Delete elimina la farmacia; su inventario cae por la FK en cascada.
func (r *PharmacyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM pharmacies WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete pharmacy: %w", err)
	}
	return nil
}

func (r *PharmacyRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Pharmacy, error) {
	var rows []pharmacyRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", err)
	}
	list := make([]*entity.Pharmacy, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// pharmacyWriteError distingue el índice de cr_number del de (owner_id, name, city).
func pharmacyWriteError(op string, err error) error {
	if msg, ok := uniqueViolation(err); ok {
		if strings.Contains(msg, "cr_number") {
			return domain.ErrDuplicateCRNumber
		}
		return domain.ErrDuplicatePharmacy
	}
	return fmt.Errorf("%s: %w", op, err)
}
