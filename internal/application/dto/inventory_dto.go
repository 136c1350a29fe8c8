package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRequest cantidad, precio y estado de una fila de inventario. Status vacío se deriva de la cantidad.
type StockRequest struct {
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
}

// AddInventoryRequest alta de un medicamento existente en una farmacia.
type AddInventoryRequest struct {
	MedicineID string `json:"medicine_id"`
	StockRequest
}

// UpdateInventoryRequest edición de una fila. MedicineID vacío conserva el medicamento actual.
type UpdateInventoryRequest struct {
	MedicineID string `json:"medicine_id"`
	StockRequest
}

// AddWithNewMedicineRequest alta conjunta de medicamento nuevo y su stock.
type AddWithNewMedicineRequest struct {
	Medicine MedicineRequest `json:"medicine"`
	Stock    StockRequest    `json:"stock"`
}

// InventoryResponse salida de una fila de inventario.
type InventoryResponse struct {
	ID         string    `json:"id"`
	PharmacyID string    `json:"pharmacy_id"`
	MedicineID string    `json:"medicine_id"`
	Medicine   string    `json:"medicine,omitempty"`
	Strength   string    `json:"strength,omitempty"`
	Form       string    `json:"form,omitempty"`
	Quantity   int64     `json:"quantity"`
	Price      string    `json:"price"` // 2 decimales fijos
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
