package repository

import (
	"context"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
)

// MedicineRepository define el puerto de persistencia para Medicine (DIP).
type MedicineRepository interface {
	// Create devuelve domain.ErrDuplicateMedicine si (created_by, name, strength, form) ya existe.
	Create(ctx context.Context, medicine *entity.Medicine) error
	GetByID(ctx context.Context, id string) (*entity.Medicine, error)
	// Search filtra por subcadena (sin distinguir mayúsculas) en name o generic_name.
	// keyword vacío devuelve todo el catálogo en orden de inserción.
	Search(ctx context.Context, keyword string) ([]*entity.Medicine, error)
}
