package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, medicine_id, pharmacy_id, quantity, price, status, created_at, updated_at`

type inventoryRow struct {
	ID         string          `db:"id"`
	MedicineID string          `db:"medicine_id"`
	PharmacyID string          `db:"pharmacy_id"`
	Quantity   int64           `db:"quantity"`
	Price      decimal.Decimal `db:"price"` // TEXT en SQLite
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (r inventoryRow) toEntity() entity.Inventory {
	return entity.Inventory{
		ID:         r.ID,
		MedicineID: r.MedicineID,
		PharmacyID: r.PharmacyID,
		Quantity:   r.Quantity,
		Price:      r.Price,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// inventoryItemRow es la fila de inventario con las columnas de medicamento y farmacia del JOIN.
type inventoryItemRow struct {
	inventoryRow
	MedicineCreatedBy   string         `db:"medicine_created_by"`
	MedicineName        string         `db:"medicine_name"`
	MedicineGenericName sql.NullString `db:"medicine_generic_name"`
	MedicineForm        string         `db:"medicine_form"`
	MedicineStrength    string         `db:"medicine_strength"`
	MedicineDescription sql.NullString `db:"medicine_description"`
	PharmacyOwnerID     string         `db:"pharmacy_owner_id"`
	PharmacyName        string         `db:"pharmacy_name"`
	PharmacyCity        string         `db:"pharmacy_city"`
	PharmacyAddress     string         `db:"pharmacy_address"`
	PharmacyPhone       string         `db:"pharmacy_phone"`
	PharmacyIsActive    bool           `db:"pharmacy_is_active"`
	PharmacyCRNumber    string         `db:"pharmacy_cr_number"`
}

func (r inventoryItemRow) toEntity() *entity.InventoryItem {
	return &entity.InventoryItem{
		Inventory: r.inventoryRow.toEntity(),
		Medicine: entity.Medicine{
			ID:          r.MedicineID,
			CreatedBy:   r.MedicineCreatedBy,
			Name:        r.MedicineName,
			GenericName: r.MedicineGenericName.String,
			Form:        r.MedicineForm,
			Strength:    r.MedicineStrength,
			Description: r.MedicineDescription.String,
		},
		Pharmacy: entity.Pharmacy{
			ID:       r.PharmacyID,
			OwnerID:  r.PharmacyOwnerID,
			Name:     r.PharmacyName,
			City:     r.PharmacyCity,
			Address:  r.PharmacyAddress,
			Phone:    r.PharmacyPhone,
			IsActive: r.PharmacyIsActive,
			CRNumber: r.PharmacyCRNumber,
		},
	}
}

const inventoryItemSelect = `
	SELECT i.id, i.medicine_id, i.pharmacy_id, i.quantity, i.price, i.status, i.created_at, i.updated_at,
		m.created_by AS medicine_created_by, m.name AS medicine_name, m.generic_name AS medicine_generic_name,
		m.form AS medicine_form, m.strength AS medicine_strength, m.description AS medicine_description,
		p.owner_id AS pharmacy_owner_id, p.name AS pharmacy_name, p.city AS pharmacy_city,
		p.address AS pharmacy_address, p.phone AS pharmacy_phone, p.is_active AS pharmacy_is_active,
		p.cr_number AS pharmacy_cr_number
	FROM inventory i
	JOIN medicines m ON m.id = i.medicine_id
	JOIN pharmacies p ON p.id = i.pharmacy_id`

// InventoryRepo implementación del puerto InventoryRepository sobre SQLite.
type InventoryRepo struct {
	q sqlx.ExtContext
}

// NewInventoryRepository construye el adaptador sobre la base o una transacción.
func NewInventoryRepository(q sqlx.ExtContext) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste una fila de inventario.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO inventory (`+inventoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.MedicineID, inv.PharmacyID, inv.Quantity, inv.Price, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.ErrDuplicateInventory
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de inventario por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	var row inventoryRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+inventoryColumns+` FROM inventory WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	inv := row.toEntity()
	return &inv, nil
}

// GetForUpdate en SQLite equivale a GetByID: la transacción ya serializa a los escritores.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.GetByID(ctx, id)
}

// Update reescribe medicamento, cantidad, precio y estado.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE inventory SET medicine_id = ?, quantity = ?, price = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		inv.MedicineID, inv.Quantity, inv.Price, inv.Status, inv.UpdatedAt, inv.ID,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.ErrDuplicateInventory
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// Delete elimina la fila de inventario.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

// ListByPharmacy lista el inventario de una farmacia ordenado por nombre de medicamento.
func (r *InventoryRepo) ListByPharmacy(ctx context.Context, pharmacyID string) ([]*entity.InventoryItem, error) {
	return r.listItems(ctx, inventoryItemSelect+` WHERE i.pharmacy_id = ? ORDER BY m.name, m.strength, i.id`, pharmacyID)
}

// ListByMedicine lista en qué farmacias está el medicamento.
func (r *InventoryRepo) ListByMedicine(ctx context.Context, medicineID string) ([]*entity.InventoryItem, error) {
	return r.listItems(ctx, inventoryItemSelect+` WHERE i.medicine_id = ? ORDER BY p.name, p.city, i.id`, medicineID)
}

func (r *InventoryRepo) listItems(ctx context.Context, query string, arg any) ([]*entity.InventoryItem, error) {
	var rows []inventoryItemRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, arg); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	list := make([]*entity.InventoryItem, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
