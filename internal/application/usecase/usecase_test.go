package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/sqlite"
)

func newRepos(t *testing.T) repository.Repositories {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	return sqlite.NewRepositories(db)
}

func newUser(t *testing.T, repos repository.Repositories, email string) string {
	t.Helper()
	now := time.Now()
	id := uuid.NewString()
	require.NoError(t, repos.Users.Create(context.Background(), &entity.User{
		ID: id, FirstName: "Ana", LastName: "Diaz", Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func stockRow(medicineID, pharmacyID string, qty int64, price string) *entity.Inventory {
	now := time.Now()
	return &entity.Inventory{
		ID: uuid.NewString(), MedicineID: medicineID, PharmacyID: pharmacyID, Quantity: qty,
		Price: decimal.RequireFromString(price), Status: entity.StockStatusIn, CreatedAt: now, UpdatedAt: now,
	}
}
