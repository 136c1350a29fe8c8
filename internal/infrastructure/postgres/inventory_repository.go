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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const (
	inventorySelect = `
		SELECT id, medicine_id, pharmacy_id, quantity, price, status, created_at, updated_at
		FROM inventory`
	inventoryItemSelect = `
		SELECT i.id, i.medicine_id, i.pharmacy_id, i.quantity, i.price, i.status, i.created_at, i.updated_at,
			m.created_by, m.name, m.generic_name, m.form, m.strength, m.description,
			p.owner_id, p.name, p.city, p.address, p.phone, p.is_active, p.cr_number
		FROM inventory i
		JOIN medicines m ON m.id = i.medicine_id
		JOIN pharmacies p ON p.id = i.pharmacy_id`
)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el repositorio (pool o tx).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste una fila de inventario.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (id, medicine_id, pharmacy_id, quantity, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.MedicineID, inv.PharmacyID, inv.Quantity, inv.Price, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInventory
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de inventario por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.getOne(ctx, inventorySelect+` WHERE id = $1`, id)
}

// GetForUpdate obtiene la fila con SELECT ... FOR UPDATE. Debe usarse dentro de una transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.getOne(ctx, inventorySelect+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryRepo) getOne(ctx context.Context, query, id string) (*entity.Inventory, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.MedicineID, &inv.PharmacyID, &inv.Quantity, &inv.Price, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Update reescribe medicamento, cantidad, precio y estado.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET medicine_id = $2, quantity = $3, price = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.MedicineID, inv.Quantity, inv.Price, inv.Status, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInventory
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// Delete elimina la fila de inventario.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

// ListByPharmacy lista el inventario de una farmacia ordenado por nombre de medicamento.
func (r *InventoryRepo) ListByPharmacy(ctx context.Context, pharmacyID string) ([]*entity.InventoryItem, error) {
	if !isUUID(pharmacyID) {
		return []*entity.InventoryItem{}, nil
	}
	return r.listItems(ctx, inventoryItemSelect+` WHERE i.pharmacy_id = $1 ORDER BY m.name, m.strength, i.id`, pharmacyID)
}

// ListByMedicine lista en qué farmacias está el medicamento.
func (r *InventoryRepo) ListByMedicine(ctx context.Context, medicineID string) ([]*entity.InventoryItem, error) {
	if !isUUID(medicineID) {
		return []*entity.InventoryItem{}, nil
	}
	return r.listItems(ctx, inventoryItemSelect+` WHERE i.medicine_id = $1 ORDER BY p.name, p.city, i.id`, medicineID)
}

func (r *InventoryRepo) listItems(ctx context.Context, query, arg string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	list := []*entity.InventoryItem{}
	for rows.Next() {
		var it entity.InventoryItem
		var generic, description *string
		err := rows.Scan(
			&it.ID, &it.MedicineID, &it.PharmacyID, &it.Quantity, &it.Price, &it.Status, &it.CreatedAt, &it.UpdatedAt,
			&it.Medicine.CreatedBy, &it.Medicine.Name, &generic, &it.Medicine.Form, &it.Medicine.Strength, &description,
			&it.Pharmacy.OwnerID, &it.Pharmacy.Name, &it.Pharmacy.City, &it.Pharmacy.Address, &it.Pharmacy.Phone,
			&it.Pharmacy.IsActive, &it.Pharmacy.CRNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		it.Medicine.ID = it.MedicineID
		it.Medicine.GenericName = derefString(generic)
		it.Medicine.Description = derefString(description)
		it.Pharmacy.ID = it.PharmacyID
		list = append(list, &it)
	}
	return list, rows.Err()
}
