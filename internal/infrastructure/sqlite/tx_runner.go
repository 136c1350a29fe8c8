package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sqlx.DB
}

// NewTxRunner construye el runner con la base.
func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Con una sola conexión abierta, todo acceso dentro de fn debe pasar por los repos recibidos.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories construye los cuatro repos sobre la base o una transacción.
func NewRepositories(q sqlx.ExtContext) repository.Repositories {
	return repository.Repositories{
		Users:      NewUserRepository(q),
		Pharmacies: NewPharmacyRepository(q),
		Medicines:  NewMedicineRepository(q),
		Inventory:  NewInventoryRepository(q),
	}
}
