package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/domain"
	"github.com/jhoicas/Farmacias-api/internal/domain/validation"
)

// LocalError guarda el error de dominio de la petición para el access log.
const LocalError = "request_error"

var duplicateCodes = []struct {
	err  error
	code string
}{
	{domain.ErrEmailAlreadyExists, "EMAIL_EXISTS"},
	{domain.ErrDuplicatePharmacy, "DUPLICATE_PHARMACY"},
	{domain.ErrDuplicateCRNumber, "DUPLICATE_CR_NUMBER"},
	{domain.ErrDuplicateMedicine, "DUPLICATE_MEDICINE"},
	{domain.ErrDuplicateInventory, "DUPLICATE_INVENTORY"},
}

// writeError traduce errores de dominio a respuestas HTTP.
// Los recursos ajenos responden 404 igual que los inexistentes.
func writeError(c *fiber.Ctx, err error) error {
	c.Locals(LocalError, err)

	var verrs validation.Errors
	var ferr validation.FieldError
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: verrs.Fields(),
		})
	case errors.As(err, &ferr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: map[string]string{ferr.Field: ferr.Message},
		})
	case errors.Is(err, domain.ErrInconsistentState):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INCONSISTENT_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		code := "DUPLICATE"
		for _, d := range duplicateCodes {
			if errors.Is(err, d.err) {
				code = d.code
				break
			}
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
