package validation

import (
	"errors"
	"strings"

	"github.com/jhoicas/Farmacias-api/internal/domain"
)

// FieldError describe un campo que no cumple una regla de formato o rango.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e FieldError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// Errors es la lista de errores de campo de un registro, en el orden en que se evaluaron.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e Errors) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// Fields devuelve campo -> primer mensaje, listo para mostrarse junto a cada input.
func (e Errors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Err devuelve nil si no hay errores (evita el nil tipado dentro de la interfaz error).
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// add agrega err si es un FieldError; cualquier otro valor se ignora.
func (e *Errors) add(err error) {
	if fe, ok := err.(FieldError); ok {
		*e = append(*e, fe)
	}
}

// Join combina los errores de varios validadores de registro en una sola lista.
// Si alguno no es de validación se devuelve ese error tal cual.
func Join(errs ...error) error {
	var out Errors
	for _, err := range errs {
		if err == nil {
			continue
		}
		var ve Errors
		var fe FieldError
		switch {
		case errors.As(err, &ve):
			out = append(out, ve...)
		case errors.As(err, &fe):
			out = append(out, fe)
		default:
			return err
		}
	}
	return out.Err()
}
