package repository

import (
	"context"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de lectura devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el índice único de email lo rechaza.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca por email ya normalizado (minúsculas).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
