// Package validation contiene las reglas de formato de los formularios de alta y edición.
// Todas son funciones puras: no hacen I/O ni dependen de estado.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
)

var (
	nameRe         = regexp.MustCompile("^[A-Za-z][A-Za-z\\s\\-'`]+$")
	emailRe        = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	letterRe       = regexp.MustCompile(`[A-Za-z]`)
	digitRe        = regexp.MustCompile(`\p{Nd}`)
	cityRe         = regexp.MustCompile(`^[A-Za-z\s\-']+$`)
	phoneRe        = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	crNumberRe     = regexp.MustCompile(`^[A-Z0-9\-]{5,30}$`)
	medicineNameRe = regexp.MustCompile(`^[A-Za-z0-9\s\-']+$`)
	strengthRe     = regexp.MustCompile(`(?i)^[0-9]+(\.[0-9]+)?\s?(mg|ml|g|mcg|IU)$`)
)

// Longitudes máximas de columna.
const (
	maxPersonName    = 120
	maxEmail         = 254
	maxPharmacyName  = 45
	maxCity          = 45
	maxAddress       = 120
	maxPhone         = 45
	maxMedicineName  = 120
	maxStrength      = 45
	maxDescription   = 500
	minPasswordLen   = 8
	minPharmacyName  = 2
	minAddress       = 5
	maxPriceDigits   = 10
	maxPriceDecimals = 2
)

// Name valida nombre o apellido: empieza con letra, al menos 2 caracteres,
// solo letras, espacios, guion, apóstrofo o acento grave.
func Name(field, v string) error {
	if !nameRe.MatchString(v) {
		return FieldError{field, "nombre inválido: solo letras, espacios, guion o apóstrofo, mínimo 2 caracteres"}
	}
	return maxLen(field, v, maxPersonName)
}

// Email valida la forma local@dominio.tld.
func Email(v string) error {
	if !emailRe.MatchString(v) {
		return FieldError{"email", "formato de email inválido"}
	}
	return maxLen("email", v, maxEmail)
}

// Password exige al menos 8 caracteres con una letra ASCII y un dígito decimal (cualquier sistema de numeración).
func Password(v string) error {
	if utf8.RuneCountInString(v) < minPasswordLen || !letterRe.MatchString(v) || !digitRe.MatchString(v) {
		return FieldError{"password", "la contraseña debe tener al menos 8 caracteres e incluir letras y números"}
	}
	return nil
}

// City admite letras, espacios, guion y apóstrofo.
func City(v string) error {
	if !cityRe.MatchString(v) {
		return FieldError{"city", "nombre de ciudad inválido"}
	}
	return maxLen("city", v, maxCity)
}

// Phone admite un '+' opcional seguido de 8 a 15 dígitos.
func Phone(v string) error {
	if !phoneRe.MatchString(v) {
		return FieldError{"phone", "número de teléfono inválido"}
	}
	return maxLen("phone", v, maxPhone)
}

// CRNumber valida el número de registro comercial: 5-30 caracteres, mayúsculas, dígitos o guion.
func CRNumber(v string) error {
	if !crNumberRe.MatchString(v) {
		return FieldError{"cr_number", "número de registro comercial inválido"}
	}
	return nil
}

// PharmacyName exige al menos 2 caracteres.
func PharmacyName(v string) error {
	if utf8.RuneCountInString(v) < minPharmacyName {
		return FieldError{"name", "el nombre de la farmacia debe tener al menos 2 caracteres"}
	}
	return maxLen("name", v, maxPharmacyName)
}

// Address exige al menos 5 caracteres.
func Address(v string) error {
	if utf8.RuneCountInString(v) < minAddress {
		return FieldError{"address", "la dirección debe tener al menos 5 caracteres"}
	}
	return maxLen("address", v, maxAddress)
}

// MedicineName valida nombre o nombre genérico: letras, dígitos, espacios, guion o apóstrofo.
func MedicineName(field, v string) error {
	if !medicineNameRe.MatchString(v) {
		if field == "generic_name" {
			return FieldError{field, "nombre genérico inválido"}
		}
		return FieldError{field, "nombre de medicamento inválido"}
	}
	return maxLen(field, v, maxMedicineName)
}

// Strength valida "<número>[.<número>][espacio]<unidad>" con unidad mg, ml, g, mcg o IU.
func Strength(v string) error {
	if !strengthRe.MatchString(v) {
		return FieldError{"strength", "formato de concentración inválido (ej. '500mg')"}
	}
	return maxLen("strength", v, maxStrength)
}

// Form valida la forma farmacéutica contra entity.MedicineForms.
func Form(v string) error {
	for _, f := range entity.MedicineForms {
		if v == f {
			return nil
		}
	}
	return FieldError{"form", fmt.Sprintf("forma inválida: %q", v)}
}

// Description admite hasta 500 caracteres.
func Description(v string) error {
	if utf8.RuneCountInString(v) > maxDescription {
		return FieldError{"description", "la descripción no puede superar 500 caracteres"}
	}
	return nil
}

// Quantity exige un entero no negativo.
func Quantity(q int64) error {
	if q < 0 {
		return FieldError{"quantity", "la cantidad no puede ser negativa"}
	}
	return nil
}

// Price exige un importe no negativo con a lo sumo 2 decimales y 10 dígitos en total.
func Price(p decimal.Decimal) error {
	if p.IsNegative() {
		return FieldError{"price", "el precio no puede ser negativo"}
	}
	if !p.Equal(p.Truncate(maxPriceDecimals)) {
		return FieldError{"price", "el precio admite como máximo 2 decimales"}
	}
	limit := decimal.New(1, maxPriceDigits-maxPriceDecimals)
	if p.GreaterThanOrEqual(limit) {
		return FieldError{"price", "el precio admite como máximo 10 dígitos"}
	}
	return nil
}

func maxLen(field, v string, n int) error {
	if utf8.RuneCountInString(v) > n {
		return FieldError{field, fmt.Sprintf("máximo %d caracteres", n)}
	}
	return nil
}
