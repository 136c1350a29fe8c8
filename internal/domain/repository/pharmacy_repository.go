package repository

import (
	"context"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
)

// PharmacyRepository define el puerto de persistencia para Pharmacy (DIP).
type PharmacyRepository interface {
	// Create y Update traducen violaciones de unicidad a domain.ErrDuplicatePharmacy
	// o domain.ErrDuplicateCRNumber según el constraint.
	Create(ctx context.Context, pharmacy *entity.Pharmacy) error
	GetByID(ctx context.Context, id string) (*entity.Pharmacy, error)
	Update(ctx context.Context, pharmacy *entity.Pharmacy) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Pharmacy, error)
	ListActive(ctx context.Context) ([]*entity.Pharmacy, error)
	// Delete elimina la farmacia; el inventario asociado se borra en cascada (FK).
	Delete(ctx context.Context, id string) error
}
