package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/application/usecase"
)

// PharmacyHandler maneja las farmacias del usuario y el listado público.
type PharmacyHandler struct {
	uc *usecase.PharmacyUseCase
}

// NewPharmacyHandler construye el handler.
func NewPharmacyHandler(uc *usecase.PharmacyUseCase) *PharmacyHandler {
	return &PharmacyHandler{uc: uc}
}

// ListMine godoc
// @Summary      Farmacias del usuario
// @Tags         pharmacies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.PharmacyResponse]
// @Router       /api/me/pharmacies [get]
func (h *PharmacyHandler) ListMine(c *fiber.Ctx) error {
	items, err := h.uc.ListByOwner(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// Create godoc
// @Summary      Registrar farmacia
// @Tags         pharmacies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PharmacyRequest  true  "name, city, address, phone, cr_number, is_active"
// @Success      201   {object}  dto.PharmacyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies [post]
func (h *PharmacyHandler) Create(c *fiber.Ctx) error {
	var in dto.PharmacyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Detalle de una farmacia del usuario
// @Tags         pharmacies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la farmacia"
// @Success      200  {object}  dto.PharmacyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies/{id} [get]
func (h *PharmacyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetForOwner(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar farmacia
// @Tags         pharmacies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la farmacia"
// @Param        body  body  dto.PharmacyRequest  true  "datos completos de la farmacia"
// @Success      200   {object}  dto.PharmacyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies/{id} [put]
func (h *PharmacyHandler) Update(c *fiber.Ctx) error {
	var in dto.PharmacyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar farmacia (y su inventario)
// @Tags         pharmacies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la farmacia"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies/{id} [delete]
func (h *PharmacyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListActive godoc
// @Summary      Farmacias activas (público)
// @Tags         pharmacies
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.PublicPharmacyResponse]
// @Router       /api/pharmacies [get]
func (h *PharmacyHandler) ListActive(c *fiber.Ctx) error {
	items, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(items))
}
