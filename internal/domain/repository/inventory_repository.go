package repository

import (
	"context"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory (DIP).
type InventoryRepository interface {
	// Create y Update devuelven domain.ErrDuplicateInventory si el par (medicine, pharmacy) ya existe.
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	// GetForUpdate obtiene la fila y la bloquea hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	Delete(ctx context.Context, id string) error
	ListByPharmacy(ctx context.Context, pharmacyID string) ([]*entity.InventoryItem, error)
	ListByMedicine(ctx context.Context, medicineID string) ([]*entity.InventoryItem, error)
}
