package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// uniqueViolation indica si err es una violación de UNIQUE/PRIMARY KEY y devuelve el mensaje,
// que en SQLite enumera las columnas ("UNIQUE constraint failed: pharmacies.cr_number").
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var sqErr *msqlite.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return sqErr.Error(), true
		}
	}
	msg := err.Error()
	return msg, strings.Contains(msg, "UNIQUE constraint failed")
}

// nullIfEmpty guarda los opcionales ausentes como NULL.
func nullIfEmpty(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma el patrón LIKE de subcadena, en minúsculas y con comodines escapados.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}
