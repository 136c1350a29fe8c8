package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacias-api/internal/domain"
)

func TestPharmacyWriteError_TraduceConstraints(t *testing.T) {
	cr := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraintPharmacyCR})
	assert.ErrorIs(t, pharmacyWriteError("insert pharmacy", cr), domain.ErrDuplicateCRNumber)

	nameCity := &pgconn.PgError{Code: "23505", ConstraintName: "pharmacies_owner_name_city_key"}
	assert.ErrorIs(t, pharmacyWriteError("insert pharmacy", nameCity), domain.ErrDuplicatePharmacy)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "pharmacies_owner_id_fkey"}
	err := pharmacyWriteError("insert pharmacy", fk)
	assert.False(t, errors.Is(err, domain.ErrDuplicate))
	assert.Contains(t, err.Error(), "insert pharmacy")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%par%", containsPattern("par"))
	assert.Equal(t, `%50\%%`, containsPattern("50%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\x%`, containsPattern(`c:\x`))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("6f1c2a1e-8a5b-4c2d-9e3f-0a1b2c3d4e5f"))
	assert.False(t, isUUID("no-es-uuid"))
	assert.False(t, isUUID(""))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("Paracetamol")
	if assert.NotNil(t, v) {
		assert.Equal(t, "Paracetamol", derefString(v))
	}
	assert.Equal(t, "", derefString(nil))
}
