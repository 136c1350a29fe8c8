package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/application/usecase"
)

// MedicineHandler maneja la búsqueda pública y el alta de medicamentos.
type MedicineHandler struct {
	uc *usecase.MedicineUseCase
}

// NewMedicineHandler construye el handler.
func NewMedicineHandler(uc *usecase.MedicineUseCase) *MedicineHandler {
	return &MedicineHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar medicamentos
// @Description  Subcadena sin distinguir mayúsculas sobre nombre o nombre genérico. Sin keyword lista todo.
// @Tags         medicines
// @Produce      json
// @Param        keyword  query  string  false  "texto a buscar"
// @Success      200  {object}  dto.ListResponse[dto.MedicineResponse]
// @Router       /api/medicines [get]
func (h *MedicineHandler) Search(c *fiber.Ctx) error {
	items, err := h.uc.Search(c.UserContext(), c.Query("keyword"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// Detail godoc
// @Summary      Detalle de medicamento con disponibilidad por farmacia
// @Tags         medicines
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.MedicineDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [get]
func (h *MedicineHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar medicamento
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MedicineRequest  true  "name, generic_name, form, strength, description"
// @Success      201   {object}  dto.MedicineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/medicines [post]
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.MedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
