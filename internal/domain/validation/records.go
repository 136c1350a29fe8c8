package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
)

// NormalizeEmail recorta espacios y pasa a minúsculas; es la forma persistida del email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup aplica las reglas de registro. Devuelve Errors o nil.
func ValidateSignup(firstName, lastName, email, password string) error {
	var errs Errors
	errs.add(Name("first_name", firstName))
	errs.add(Name("last_name", lastName))
	errs.add(Email(email))
	errs.add(Password(password))
	return errs.Err()
}

// ValidatePasswordConfirmation comprueba que la confirmación coincida con la contraseña.
func ValidatePasswordConfirmation(password, confirm string) error {
	if password != confirm {
		return Errors{{"confirm_password", "las contraseñas no coinciden"}}
	}
	return nil
}

// ValidatePharmacy aplica las reglas de campo de una farmacia.
func ValidatePharmacy(p *entity.Pharmacy) error {
	var errs Errors
	errs.add(PharmacyName(p.Name))
	errs.add(City(p.City))
	errs.add(Address(p.Address))
	errs.add(Phone(p.Phone))
	errs.add(CRNumber(p.CRNumber))
	return errs.Err()
}

// ValidateMedicine aplica las reglas de campo de un medicamento.
// GenericName y Description solo se validan si vienen informados.
func ValidateMedicine(m *entity.Medicine) error {
	var errs Errors
	errs.add(MedicineName("name", m.Name))
	if m.GenericName != "" {
		errs.add(MedicineName("generic_name", m.GenericName))
	}
	errs.add(Form(m.Form))
	errs.add(Strength(m.Strength))
	errs.add(Description(m.Description))
	return errs.Err()
}

// ValidateStock aplica las reglas numéricas de una fila de inventario.
// La coherencia cantidad/estado se evalúa aparte (inventory.ResolveStatus).
func ValidateStock(quantity int64, price decimal.Decimal) error {
	var errs Errors
	errs.add(Quantity(quantity))
	errs.add(Price(price))
	return errs.Err()
}
