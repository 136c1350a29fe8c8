package inventory

import (
	"fmt"

	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/validation"
)

// ResolveStatus aplica el acoplamiento cantidad/estado de una fila de inventario (servicio de dominio).
//
//	quantity == 0  ->  OUT
//	quantity  > 0  ->  IN
//
// Un estado vacío se deriva de la cantidad. Un estado explícito que contradice la cantidad
// devuelve domain.ErrInconsistentState; un estado desconocido es un error de campo.
func ResolveStatus(quantity int64, status string) (string, error) {
	expected := entity.StockStatusIn
	if quantity == 0 {
		expected = entity.StockStatusOut
	}
	switch status {
	case "":
		return expected, nil
	case entity.StockStatusIn, entity.StockStatusOut:
	default:
		return "", validation.Errors{{Field: "status", Message: fmt.Sprintf("estado inválido: %q", status)}}
	}
	if status != expected {
		if quantity == 0 {
			return "", fmt.Errorf("%w: si la cantidad es 0 el estado debe ser OUT", domain.ErrInconsistentState)
		}
		return "", fmt.Errorf("%w: si la cantidad es mayor a 0 el estado debe ser IN", domain.ErrInconsistentState)
	}
	return status, nil
}
