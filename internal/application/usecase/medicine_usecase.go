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

// MedicineUseCase casos de uso del catálogo de medicamentos.
type MedicineUseCase struct {
	medicineRepo  repository.MedicineRepository
	inventoryRepo repository.InventoryRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(medicineRepo repository.MedicineRepository, inventoryRepo repository.InventoryRepository) *MedicineUseCase {
	return &MedicineUseCase{medicineRepo: medicineRepo, inventoryRepo: inventoryRepo}
}

// Create valida y registra un medicamento creado por el usuario.
// (creador, nombre, concentración, forma) repetido -> domain.ErrDuplicateMedicine.
func (uc *MedicineUseCase) Create(ctx context.Context, creatorID string, in dto.MedicineRequest) (*dto.MedicineResponse, error) {
	now := time.Now()
	m := &entity.Medicine{
		ID:          uuid.New().String(),
		CreatedBy:   creatorID,
		Name:        strings.TrimSpace(in.Name),
		GenericName: strings.TrimSpace(in.GenericName),
		Form:        strings.TrimSpace(in.Form),
		Strength:    strings.TrimSpace(in.Strength),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validation.ValidateMedicine(m); err != nil {
		return nil, err
	}
	if err := uc.medicineRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return ToMedicineResponse(m), nil
}

// Search busca medicamentos por nombre o nombre genérico. keyword vacío lista todo.
func (uc *MedicineUseCase) Search(ctx context.Context, keyword string) ([]dto.MedicineResponse, error) {
	list, err := uc.medicineRepo.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMedicineResponse(m))
	}
	return items, nil
}

// Detail devuelve el medicamento y su disponibilidad en cada farmacia.
func (uc *MedicineUseCase) Detail(ctx context.Context, id string) (*dto.MedicineDetailResponse, error) {
	m, err := uc.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.inventoryRepo.ListByMedicine(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.MedicineDetailResponse{
		Medicine:     *ToMedicineResponse(m),
		Availability: make([]dto.AvailabilityResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Availability = append(out.Availability, dto.AvailabilityResponse{
			InventoryID: it.ID,
			Pharmacy:    ToPublicPharmacy(&it.Pharmacy),
			Quantity:    it.Quantity,
			Price:       it.Price.StringFixed(2),
			Status:      it.Status,
		})
	}
	return out, nil
}

// ToMedicineResponse mapea la entidad a su salida.
func ToMedicineResponse(m *entity.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		ID:          m.ID,
		Name:        m.Name,
		GenericName: m.GenericName,
		Form:        m.Form,
		Strength:    m.Strength,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
