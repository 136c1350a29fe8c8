package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacias-api/internal/application/dto"
	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/metrics"
)

// InventoryHandler maneja el stock de las farmacias del usuario (protegido).
type InventoryHandler struct {
	uc      *inventory.UseCase
	metrics *metrics.Metrics
}

// NewInventoryHandler construye el handler. m puede ser nil.
func NewInventoryHandler(uc *inventory.UseCase, m *metrics.Metrics) *InventoryHandler {
	return &InventoryHandler{uc: uc, metrics: m}
}

// List godoc
// @Summary      Inventario de una farmacia
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la farmacia"
// @Success      200  {object}  dto.ListResponse[dto.InventoryResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies/{id}/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListByPharmacy(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// Add godoc
// @Summary      Agregar un medicamento existente al inventario
// @Description  status vacío se deriva de quantity (0 = OUT, >0 = IN).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la farmacia"
// @Param        body  body  dto.AddInventoryRequest  true  "medicine_id, quantity, price, status"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies/{id}/inventory [post]
func (h *InventoryHandler) Add(c *fiber.Ctx) error {
	var in dto.AddInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Upsert(c.UserContext(), GetUserID(c), inventory.UpsertInput{
		MedicineID: in.MedicineID,
		PharmacyID: c.Params("id"),
		Quantity:   in.Quantity,
		Price:      in.Price,
		Status:     in.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddWithNewMedicine godoc
// @Summary      Crear medicamento y agregarlo al inventario en una sola operación
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la farmacia"
// @Param        body  body  dto.AddWithNewMedicineRequest  true  "medicine y stock"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies/{id}/inventory/new-medicine [post]
func (h *InventoryHandler) AddWithNewMedicine(c *fiber.Ctx) error {
	var in dto.AddWithNewMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddWithNewMedicine(c.UserContext(), GetUserID(c), c.Params("id"), in.Medicine, in.Stock)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar una fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la fila de inventario"
// @Param        body  body  dto.UpdateInventoryRequest  true  "medicine_id (opcional), quantity, price, status"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Upsert(c.UserContext(), GetUserID(c), inventory.UpsertInput{
		ID:         c.Params("id"),
		MedicineID: in.MedicineID,
		Quantity:   in.Quantity,
		Price:      in.Price,
		Status:     in.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID de la fila de inventario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Hoja de stock en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la farmacia"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me/pharmacies/{id}/inventory/report.pdf [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StockReportPDF(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if h.metrics != nil {
		h.metrics.Event(metrics.EventStockReport)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
