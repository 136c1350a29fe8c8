// Package store abre el backend de persistencia configurado (PostgreSQL o SQLite)
// y entrega los repositorios y el TxRunner correspondientes.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Farmacias-api/pkg/config"
)

// Store repositorios sobre el pool, runner transaccional y cierre del backend.
type Store struct {
	Driver   string
	Repos    repository.Repositories
	TxRunner inventory.TxRunner
	migrate  func(ctx context.Context) error
	close    func()
}

// Open conecta con el backend de cfg.Driver.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   cfg.Driver,
			Repos:    postgres.NewRepositories(pool),
			TxRunner: postgres.NewTxRunner(pool),
			migrate:  func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
			close:    pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   cfg.Driver,
			Repos:    sqlite.NewRepositories(db),
			TxRunner: sqlite.NewTxRunner(db),
			migrate:  func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
			close:    func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("store: driver %q no soportado", cfg.Driver)
	}
}

// Migrate aplica el esquema embebido del backend.
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Close libera las conexiones.
func (s *Store) Close() {
	s.close()
}
