package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/sqlite"
)

type fakeReporter struct {
	got *inventory.StockReport
}

func (f *fakeReporter) GenerateStockReport(_ context.Context, r *inventory.StockReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	uc       *inventory.UseCase
	repos    repository.Repositories
	reporter *fakeReporter
	owner    string
	pharmacy string
	medicine string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	repos := sqlite.NewRepositories(db)
	f := &fixture{repos: repos, reporter: &fakeReporter{}}
	f.uc = inventory.NewUseCase(sqlite.NewTxRunner(db), repos, f.reporter)
	f.owner = f.user(t, "a@x.com")
	f.pharmacy = f.newPharmacy(t, f.owner, "CR-10001")

	now := time.Now()
	f.medicine = uuid.NewString()
	require.NoError(t, repos.Medicines.Create(ctx, &entity.Medicine{
		ID: f.medicine, CreatedBy: f.owner, Name: "Panadol", GenericName: "Paracetamol",
		Form: entity.FormTablet, Strength: "500mg", CreatedAt: now, UpdatedAt: now,
	}))
	return f
}

func (f *fixture) user(t *testing.T, email string) string {
	t.Helper()
	now := time.Now()
	id := uuid.NewString()
	require.NoError(t, f.repos.Users.Create(context.Background(), &entity.User{
		ID: id, FirstName: "Ana", LastName: "Diaz", Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func (f *fixture) newPharmacy(t *testing.T, ownerID, cr string) string {
	t.Helper()
	now := time.Now()
	id := uuid.NewString()
	require.NoError(t, f.repos.Pharmacies.Create(context.Background(), &entity.Pharmacy{
		ID: id, OwnerID: ownerID, Name: "CityMed " + cr[len(cr)-1:], City: "Riyadh", Address: "King Fahd Road",
		Phone: "+966500000000", IsActive: true, CRNumber: cr, CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func (f *fixture) add(qty int64, price, status string) (*dto.InventoryResponse, error) {
	return f.uc.Upsert(context.Background(), f.owner, inventory.UpsertInput{
		MedicineID: f.medicine, PharmacyID: f.pharmacy, Quantity: qty,
		Price: decimal.RequireFromString(price), Status: status,
	})
}

func TestUpsert_Alta(t *testing.T) {
	f := newFixture(t)
	out, err := f.add(10, "5.00", entity.StockStatusIn)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Quantity)
	assert.Equal(t, "5.00", out.Price)
	assert.Equal(t, entity.StockStatusIn, out.Status)
	assert.Equal(t, "Panadol", out.Medicine)
}

func TestUpsert_EstadoDerivado(t *testing.T) {
	f := newFixture(t)
	out, err := f.add(0, "5", "")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusOut, out.Status)
}

func TestUpsert_EstadoInconsistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.add(0, "5.00", entity.StockStatusIn)
	assert.ErrorIs(t, err, domain.ErrInconsistentState)

	_, err = f.add(3, "5.00", entity.StockStatusOut)
	assert.ErrorIs(t, err, domain.ErrInconsistentState)

	items, err := f.repos.Inventory.ListByPharmacy(context.Background(), f.pharmacy)
	require.NoError(t, err)
	assert.Empty(t, items, "nada se persiste")
}

func TestUpsert_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.add(-1, "5.00", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.add(1, "5.001", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Upsert(context.Background(), f.owner, inventory.UpsertInput{
		MedicineID: uuid.NewString(), PharmacyID: f.pharmacy, Quantity: 1, Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "medicamento inexistente")
}

func TestUpsert_ParDuplicado(t *testing.T) {
	f := newFixture(t)
	_, err := f.add(10, "5.00", "")
	require.NoError(t, err)
	_, err = f.add(2, "1.00", "")
	assert.ErrorIs(t, err, domain.ErrDuplicateInventory)
}

func TestUpsert_AltasConcurrentesDelMismoPar(t *testing.T) {
	f := newFixture(t)
	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.add(int64(i+1), "2.00", "")
		}(i)
	}
	wg.Wait()

	ok, dup := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrDuplicateInventory):
			dup++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestUpsert_Edicion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.add(10, "5.00", "")
	require.NoError(t, err)

	updated, err := f.uc.Upsert(ctx, f.owner, inventory.UpsertInput{
		ID: created.ID, Quantity: 0, Price: decimal.RequireFromString("4.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusOut, updated.Status)
	assert.Equal(t, "4.25", updated.Price)
	assert.Equal(t, f.medicine, updated.MedicineID, "medicine_id vacío conserva el medicamento")

	_, err = f.uc.Upsert(ctx, f.owner, inventory.UpsertInput{
		ID: created.ID, PharmacyID: uuid.NewString(), Quantity: 1, Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la fila no pertenece a esa farmacia")

	_, err = f.uc.Upsert(ctx, f.owner, inventory.UpsertInput{ID: uuid.NewString(), Quantity: 1, Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsert_FarmaciaAjena(t *testing.T) {
	f := newFixture(t)
	intruder := f.user(t, "b@x.com")
	_, err := f.uc.Upsert(context.Background(), intruder, inventory.UpsertInput{
		MedicineID: f.medicine, PharmacyID: f.pharmacy, Quantity: 1, Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	created, err := f.add(1, "1.00", "")
	require.NoError(t, err)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), intruder, created.ID), domain.ErrForbidden)
	_, err = f.uc.ListByPharmacy(context.Background(), intruder, f.pharmacy)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.add(1, "1.00", "")
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, f.owner, created.ID))
	assert.ErrorIs(t, f.uc.Delete(ctx, f.owner, created.ID), domain.ErrNotFound)

	med, err := f.repos.Medicines.GetByID(ctx, f.medicine)
	require.NoError(t, err)
	assert.NotNil(t, med, "borrar stock no borra el medicamento")
}

func TestAddWithNewMedicine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out, err := f.uc.AddWithNewMedicine(ctx, f.owner, f.pharmacy,
		dto.MedicineRequest{Name: "Amoxil", GenericName: "Amoxicillin", Form: entity.FormCapsule, Strength: "250 mg"},
		dto.StockRequest{Quantity: 20, Price: decimal.RequireFromString("12.5")},
	)
	require.NoError(t, err)
	assert.Equal(t, "Amoxil", out.Medicine)
	assert.Equal(t, "12.50", out.Price)
	assert.Equal(t, entity.StockStatusIn, out.Status)

	list, err := f.uc.ListByPharmacy(ctx, f.owner, f.pharmacy)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddWithNewMedicine_RevierteSiFallaElStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.add(5, "1.00", "")
	require.NoError(t, err)

	// El medicamento "Panadol 500mg Tablet" ya existe para este dueño: falla el alta del medicamento.
	_, err = f.uc.AddWithNewMedicine(ctx, f.owner, f.pharmacy,
		dto.MedicineRequest{Name: "Panadol", Form: entity.FormTablet, Strength: "500mg"},
		dto.StockRequest{Quantity: 1, Price: decimal.NewFromInt(1)},
	)
	assert.ErrorIs(t, err, domain.ErrDuplicateMedicine)

	// Farmacia ajena: nada se crea.
	other := f.user(t, "b@x.com")
	foreign := f.newPharmacy(t, other, "CR-10002")
	_, err = f.uc.AddWithNewMedicine(ctx, f.owner, foreign,
		dto.MedicineRequest{Name: "Brufen", Form: entity.FormSyrup, Strength: "100ml"},
		dto.StockRequest{Quantity: 1, Price: decimal.NewFromInt(1)},
	)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	meds, err := f.repos.Medicines.Search(ctx, "brufen")
	require.NoError(t, err)
	assert.Empty(t, meds, "la transacción se revirtió")
}

func TestAddWithNewMedicine_ErroresCombinados(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AddWithNewMedicine(context.Background(), f.owner, f.pharmacy,
		dto.MedicineRequest{Name: "", Form: "Powder", Strength: "500mg"},
		dto.StockRequest{Quantity: -3, Price: decimal.NewFromInt(1)},
	)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "form")
	assert.Contains(t, err.Error(), "quantity")
}

func TestStockReportPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.add(4, "2.50", "")
	require.NoError(t, err)

	pdf, name, err := f.uc.StockReportPDF(ctx, f.owner, f.pharmacy)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Regexp(t, `^stock-CR-10001-\d{8}\.pdf$`, name)

	require.NotNil(t, f.reporter.got)
	assert.Equal(t, int64(4), f.reporter.got.TotalUnits)
	assert.True(t, decimal.RequireFromString("10").Equal(f.reporter.got.TotalValue))
}

func TestBuildStockReport(t *testing.T) {
	p := &entity.Pharmacy{Name: "CityMed"}
	items := []*entity.InventoryItem{
		{Inventory: entity.Inventory{Quantity: 3, Price: decimal.RequireFromString("1.10")}},
		{Inventory: entity.Inventory{Quantity: 0, Price: decimal.RequireFromString("99.99")}},
	}
	r := inventory.BuildStockReport(p, items, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, int64(3), r.TotalUnits)
	assert.Equal(t, "3.30", r.TotalValue.StringFixed(2))
	assert.Equal(t, "CityMed", r.Pharmacy.Name)
}
