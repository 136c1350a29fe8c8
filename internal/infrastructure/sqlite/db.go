// Package sqlite implementa los puertos de persistencia sobre SQLite (modernc, sin cgo) con sqlx.
// Se usa en desarrollo local y como almacén real de los tests: aplica los mismos índices únicos
// y borrados en cascada que el esquema PostgreSQL.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registra el driver "sqlite"
)

// MemoryPath abre una base en memoria (una por *sqlx.DB).
const MemoryPath = ":memory:"

// Open abre la base SQLite en path con claves foráneas activas.
// SQLite admite un único escritor: el pool se limita a una conexión, lo que además
// mantiene viva la base en memoria mientras el *sqlx.DB esté abierto.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := path
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "foreign_keys") {
		dsn += sep + "_pragma=foreign_keys(1)"
		sep = "&"
	}
	if !strings.Contains(dsn, "busy_timeout") {
		dsn += sep + "_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("activar foreign_keys: %w", err)
	}
	return db, nil
}
