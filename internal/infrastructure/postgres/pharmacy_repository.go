package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
)

var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

const (
	pharmacySelect = `
		SELECT id, owner_id, name, city, address, phone, is_active, cr_number, created_at, updated_at
		FROM pharmacies`
	constraintPharmacyCR = "pharmacies_cr_number_key"
)

// PharmacyRepo implementación del puerto PharmacyRepository sobre PostgreSQL.
type PharmacyRepo struct {
	q Querier
}

// NewPharmacyRepository construye el repositorio (pool o tx).
func NewPharmacyRepository(q Querier) *PharmacyRepo {
	return &PharmacyRepo{q: q}
}

// Create persiste una farmacia.
func (r *PharmacyRepo) Create(ctx context.Context, p *entity.Pharmacy) error {
	query := `
		INSERT INTO pharmacies (id, owner_id, name, city, address, phone, is_active, cr_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.City, p.Address, p.Phone, p.IsActive, p.CRNumber, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return pharmacyWriteError("insert pharmacy", err)
	}
	return nil
}

// GetByID obtiene una farmacia por ID.
func (r *PharmacyRepo) GetByID(ctx context.Context, id string) (*entity.Pharmacy, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanPharmacy(r.q.QueryRow(ctx, pharmacySelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pharmacy: %w", err)
	}
	return p, nil
}

// Update actualiza los datos editables de la farmacia.
func (r *PharmacyRepo) Update(ctx context.Context, p *entity.Pharmacy) error {
	query := `
		UPDATE pharmacies SET name = $2, city = $3, address = $4, phone = $5, is_active = $6, cr_number = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.City, p.Address, p.Phone, p.IsActive, p.CRNumber, p.UpdatedAt,
	)
	if err != nil {
		return pharmacyWriteError("update pharmacy", err)
	}
	return nil
}

// ListByOwner lista las farmacias de un dueño en orden de creación.
func (r *PharmacyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Pharmacy, error) {
	if !isUUID(ownerID) {
		return []*entity.Pharmacy{}, nil
	}
	return r.list(ctx, pharmacySelect+` WHERE owner_id = $1 ORDER BY created_at, id`, ownerID)
}

// ListActive lista las farmacias activas de todos los dueños.
func (r *PharmacyRepo) ListActive(ctx context.Context) ([]*entity.Pharmacy, error) {
	return r.list(ctx, pharmacySelect+` WHERE is_active ORDER BY name, city, id`)
}

// Delete elimina la farmacia; el inventario cae por ON DELETE CASCADE.
func (r *PharmacyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM pharmacies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pharmacy: %w", err)
	}
	return nil
}

func (r *PharmacyRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Pharmacy, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", err)
	}
	defer rows.Close()
	list := []*entity.Pharmacy{}
	for rows.Next() {
		p, err := scanPharmacy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pharmacy: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPharmacy(row pgx.Row) (*entity.Pharmacy, error) {
	var p entity.Pharmacy
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.City, &p.Address, &p.Phone, &p.IsActive, &p.CRNumber,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func pharmacyWriteError(op string, err error) error {
	if constraint, ok := uniqueConstraint(err); ok {
		if constraint == constraintPharmacyCR {
			return domain.ErrDuplicateCRNumber
		}
		return domain.ErrDuplicatePharmacy
	}
	return fmt.Errorf("%s: %w", op, err)
}
