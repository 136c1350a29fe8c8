package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema en orden de dependencias. Idempotente.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pharmacies (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		city       TEXT NOT NULL,
		address    TEXT NOT NULL,
		phone      TEXT NOT NULL,
		is_active  BOOLEAN NOT NULL DEFAULT 1,
		cr_number  TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE (owner_id, name, city)
	)`,
	`CREATE TABLE IF NOT EXISTS medicines (
		id           TEXT PRIMARY KEY,
		created_by   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		generic_name TEXT,
		form         TEXT NOT NULL CHECK (form IN ('Tablet', 'Capsule', 'Syrup', 'Injection')),
		strength     TEXT NOT NULL,
		description  TEXT,
		created_at   DATETIME NOT NULL,
		updated_at   DATETIME NOT NULL,
		UNIQUE (created_by, name, strength, form)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id          TEXT PRIMARY KEY,
		medicine_id TEXT NOT NULL REFERENCES medicines(id) ON DELETE CASCADE,
		pharmacy_id TEXT NOT NULL REFERENCES pharmacies(id) ON DELETE CASCADE,
		quantity    INTEGER NOT NULL CHECK (quantity >= 0),
		price       TEXT NOT NULL,
		status      TEXT NOT NULL CHECK (status IN ('IN', 'OUT')),
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL,
		UNIQUE (medicine_id, pharmacy_id),
		CHECK ((quantity = 0 AND status = 'OUT') OR (quantity > 0 AND status = 'IN'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_pharmacy ON inventory(pharmacy_id)`,
	`CREATE INDEX IF NOT EXISTS idx_medicines_name ON medicines(name)`,
}

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migración sqlite: %w", err)
		}
	}
	return nil
}
