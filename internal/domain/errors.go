package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInconsistentState = errors.New("estado inconsistente")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// Duplicados concretos; todos cumplen errors.Is(err, ErrDuplicate).
var (
	ErrEmailAlreadyExists = fmt.Errorf("el email ya está registrado: %w", ErrDuplicate)
	ErrDuplicatePharmacy  = fmt.Errorf("ya existe una farmacia con ese nombre en esa ciudad: %w", ErrDuplicate)
	ErrDuplicateCRNumber  = fmt.Errorf("el número de registro comercial ya está en uso: %w", ErrDuplicate)
	ErrDuplicateMedicine  = fmt.Errorf("el medicamento ya existe con esa concentración y forma: %w", ErrDuplicate)
	ErrDuplicateInventory = fmt.Errorf("el medicamento ya existe en esta farmacia: %w", ErrDuplicate)
)
