package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
	"github.com/jhoicas/Farmacias-api/internal/domain/validation"
)

// PharmacyUseCase casos de uso de las farmacias de un dueño.
type PharmacyUseCase struct {
	repo repository.PharmacyRepository
}

// NewPharmacyUseCase construye el caso de uso.
func NewPharmacyUseCase(repo repository.PharmacyRepository) *PharmacyUseCase {
	return &PharmacyUseCase{repo: repo}
}

// Create valida y registra una farmacia del usuario.
// Nombre+ciudad repetidos para el mismo dueño -> domain.ErrDuplicatePharmacy; CR repetido -> domain.ErrDuplicateCRNumber.
func (uc *PharmacyUseCase) Create(ctx context.Context, ownerID string, in dto.PharmacyRequest) (*dto.PharmacyResponse, error) {
	now := time.Now()
	p := &entity.Pharmacy{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyPharmacyRequest(p, in)
	if err := validation.ValidatePharmacy(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPharmacyResponse(p), nil
}

// Update reemplaza los datos de una farmacia del usuario.
func (uc *PharmacyUseCase) Update(ctx context.Context, ownerID, id string, in dto.PharmacyRequest) (*dto.PharmacyResponse, error) {
	p, err := uc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	applyPharmacyRequest(p, in)
	if err := validation.ValidatePharmacy(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPharmacyResponse(p), nil
}

// Delete elimina una farmacia del usuario junto con su inventario.
func (uc *PharmacyUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// GetForOwner obtiene una farmacia del usuario.
func (uc *PharmacyUseCase) GetForOwner(ctx context.Context, ownerID, id string) (*dto.PharmacyResponse, error) {
	p, err := uc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toPharmacyResponse(p), nil
}

// ListByOwner lista las farmacias del usuario.
func (uc *PharmacyUseCase) ListByOwner(ctx context.Context, ownerID string) ([]dto.PharmacyResponse, error) {
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PharmacyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPharmacyResponse(p))
	}
	return items, nil
}

// ListActive lista las farmacias activas (vista pública).
func (uc *PharmacyUseCase) ListActive(ctx context.Context) ([]dto.PublicPharmacyResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PublicPharmacyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToPublicPharmacy(p))
	}
	return items, nil
}

func (uc *PharmacyUseCase) owned(ctx context.Context, ownerID, id string) (*entity.Pharmacy, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.OwnedBy(ownerID) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func applyPharmacyRequest(p *entity.Pharmacy, in dto.PharmacyRequest) {
	p.Name = strings.TrimSpace(in.Name)
	p.City = strings.TrimSpace(in.City)
	p.Address = strings.TrimSpace(in.Address)
	p.Phone = strings.TrimSpace(in.Phone)
	p.CRNumber = strings.TrimSpace(in.CRNumber)
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func toPharmacyResponse(p *entity.Pharmacy) *dto.PharmacyResponse {
	return &dto.PharmacyResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		City:      p.City,
		Address:   p.Address,
		Phone:     p.Phone,
		IsActive:  p.IsActive,
		CRNumber:  p.CRNumber,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPublicPharmacy vista pública de una farmacia.
func ToPublicPharmacy(p *entity.Pharmacy) dto.PublicPharmacyResponse {
	return dto.PublicPharmacyResponse{
		ID:      p.ID,
		Name:    p.Name,
		City:    p.City,
		Address: p.Address,
		Phone:   p.Phone,
	}
}
