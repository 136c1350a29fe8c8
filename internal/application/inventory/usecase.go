package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
	"github.com/jhoicas/Farmacias-api/internal/domain/validation"
)

// UseCase casos de uso de stock por farmacia. Las escrituras corren en una transacción
// y las ediciones bloquean la fila (SELECT FOR UPDATE) hasta el Commit.
type UseCase struct {
	txRunner TxRunner
	repos    repository.Repositories
	reporter StockReportGenerator
	now      func() time.Time
}

// NewUseCase construye el caso de uso. repos son los repositorios sobre el pool (lecturas).
func NewUseCase(txRunner TxRunner, repos repository.Repositories, reporter StockReportGenerator) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, reporter: reporter, now: time.Now}
}

// UpsertInput entrada de alta o edición de una fila. ID vacío = alta.
// En edición, MedicineID vacío conserva el medicamento y PharmacyID, si viene, debe coincidir con el de la fila.
type UpsertInput struct {
	ID         string
	MedicineID string
	PharmacyID string
	Quantity   int64
	Price      decimal.Decimal
	Status     string
}

// Upsert valida cantidad y precio, resuelve el estado, verifica que la farmacia sea del usuario
// y crea o actualiza la fila. El par (medicamento, farmacia) repetido devuelve domain.ErrDuplicateInventory.
func (uc *UseCase) Upsert(ctx context.Context, ownerID string, in UpsertInput) (*dto.InventoryResponse, error) {
	status, err := checkStock(in.Quantity, in.Price, in.Status)
	if err != nil {
		return nil, err
	}

	var out *dto.InventoryResponse
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		now := uc.now()
		if in.ID == "" {
			if _, err := ownedPharmacy(ctx, repos, ownerID, in.PharmacyID); err != nil {
				return err
			}
			med, err := existingMedicine(ctx, repos, in.MedicineID)
			if err != nil {
				return err
			}
			inv := &entity.Inventory{
				ID:         uuid.New().String(),
				MedicineID: med.ID,
				PharmacyID: in.PharmacyID,
				Quantity:   in.Quantity,
				Price:      in.Price,
				Status:     status,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := repos.Inventory.Create(ctx, inv); err != nil {
				return err
			}
			out = toInventoryResponse(inv, med)
			return nil
		}

		inv, err := repos.Inventory.GetForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if inv == nil || (in.PharmacyID != "" && inv.PharmacyID != in.PharmacyID) {
			return domain.ErrNotFound
		}
		if _, err := ownedPharmacy(ctx, repos, ownerID, inv.PharmacyID); err != nil {
			return err
		}
		medicineID := in.MedicineID
		if medicineID == "" {
			medicineID = inv.MedicineID
		}
		med, err := existingMedicine(ctx, repos, medicineID)
		if err != nil {
			return err
		}
		inv.MedicineID = med.ID
		inv.Quantity = in.Quantity
		inv.Price = in.Price
		inv.Status = status
		inv.UpdatedAt = now
		if err := repos.Inventory.Update(ctx, inv); err != nil {
			return err
		}
		out = toInventoryResponse(inv, med)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina una fila de inventario de una farmacia del usuario. No borra nada más.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		inv, err := repos.Inventory.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if _, err := ownedPharmacy(ctx, repos, ownerID, inv.PharmacyID); err != nil {
			return err
		}
		return repos.Inventory.Delete(ctx, id)
	})
}

// AddWithNewMedicine crea el medicamento y su fila de stock en la misma transacción:
// si el stock falla, el medicamento no queda creado.
func (uc *UseCase) AddWithNewMedicine(
	ctx context.Context,
	ownerID, pharmacyID string,
	medReq dto.MedicineRequest,
	stock dto.StockRequest,
) (*dto.InventoryResponse, error) {
	now := uc.now()
	med := &entity.Medicine{
		ID:          uuid.New().String(),
		CreatedBy:   ownerID,
		Name:        strings.TrimSpace(medReq.Name),
		GenericName: strings.TrimSpace(medReq.GenericName),
		Form:        strings.TrimSpace(medReq.Form),
		Strength:    strings.TrimSpace(medReq.Strength),
		Description: strings.TrimSpace(medReq.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validation.Join(validation.ValidateMedicine(med), validation.ValidateStock(stock.Quantity, stock.Price)); err != nil {
		return nil, err
	}
	status, err := inventory.ResolveStatus(stock.Quantity, stock.Status)
	if err != nil {
		return nil, err
	}

	inv := &entity.Inventory{
		ID:         uuid.New().String(),
		MedicineID: med.ID,
		PharmacyID: pharmacyID,
		Quantity:   stock.Quantity,
		Price:      stock.Price,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if _, err := ownedPharmacy(ctx, repos, ownerID, pharmacyID); err != nil {
			return err
		}
		if err := repos.Medicines.Create(ctx, med); err != nil {
			return err
		}
		return repos.Inventory.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(inv, med), nil
}

// ListByPharmacy lista el stock de una farmacia del usuario.
func (uc *UseCase) ListByPharmacy(ctx context.Context, ownerID, pharmacyID string) ([]dto.InventoryResponse, error) {
	if _, err := ownedPharmacy(ctx, uc.repos, ownerID, pharmacyID); err != nil {
		return nil, err
	}
	items, err := uc.repos.Inventory.ListByPharmacy(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toInventoryResponse(&it.Inventory, &it.Medicine))
	}
	return out, nil
}

// StockReportPDF genera la hoja de stock de una farmacia del usuario.
// Devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *UseCase) StockReportPDF(ctx context.Context, ownerID, pharmacyID string) ([]byte, string, error) {
	pharmacy, err := ownedPharmacy(ctx, uc.repos, ownerID, pharmacyID)
	if err != nil {
		return nil, "", err
	}
	items, err := uc.repos.Inventory.ListByPharmacy(ctx, pharmacyID)
	if err != nil {
		return nil, "", err
	}
	report := BuildStockReport(pharmacy, items, uc.now())
	pdf, err := uc.reporter.GenerateStockReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("generar hoja de stock: %w", err)
	}
	return pdf, fmt.Sprintf("stock-%s-%s.pdf", pharmacy.CRNumber, report.GeneratedAt.Format("20060102")), nil
}

// BuildStockReport calcula los totales de la hoja de stock.
func BuildStockReport(pharmacy *entity.Pharmacy, items []*entity.InventoryItem, at time.Time) *StockReport {
	report := &StockReport{Pharmacy: *pharmacy, Items: items, TotalValue: decimal.Zero, GeneratedAt: at}
	for _, it := range items {
		report.TotalUnits += it.Quantity
		report.TotalValue = report.TotalValue.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return report
}

// checkStock aplica las reglas numéricas y el acoplamiento cantidad/estado.
func checkStock(quantity int64, price decimal.Decimal, status string) (string, error) {
	if err := validation.ValidateStock(quantity, price); err != nil {
		return "", err
	}
	return inventory.ResolveStatus(quantity, status)
}

// ownedPharmacy carga la farmacia y verifica que sea del usuario.
func ownedPharmacy(ctx context.Context, repos repository.Repositories, ownerID, pharmacyID string) (*entity.Pharmacy, error) {
	if pharmacyID == "" {
		return nil, domain.ErrNotFound
	}
	p, err := repos.Pharmacies.GetByID(ctx, pharmacyID)
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

func existingMedicine(ctx context.Context, repos repository.Repositories, id string) (*entity.Medicine, error) {
	if id == "" {
		return nil, validation.Errors{{Field: "medicine_id", Message: "el medicamento es obligatorio"}}
	}
	m, err := repos.Medicines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, validation.Errors{{Field: "medicine_id", Message: "el medicamento no existe"}}
	}
	return m, nil
}

func toInventoryResponse(inv *entity.Inventory, med *entity.Medicine) *dto.InventoryResponse {
	r := &dto.InventoryResponse{
		ID:         inv.ID,
		PharmacyID: inv.PharmacyID,
		MedicineID: inv.MedicineID,
		Quantity:   inv.Quantity,
		Price:      inv.Price.StringFixed(2),
		Status:     inv.Status,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
	if med != nil {
		r.Medicine = med.Name
		r.Strength = med.Strength
		r.Form = med.Form
	}
	return r
}
