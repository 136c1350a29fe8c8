package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock de Inventory.
const (
	StockStatusIn  = "IN"
	StockStatusOut = "OUT"
)

// Inventory vincula un Medicine con una Pharmacy (par único) con cantidad, precio y estado.
// Invariante: Quantity == 0 <=> Status == OUT; Quantity > 0 <=> Status == IN.
type Inventory struct {
	ID         string
	MedicineID string
	PharmacyID string
	Quantity   int64
	Price      decimal.Decimal // moneda con 2 decimales
	Status     string          // IN, OUT
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InventoryItem es una fila de inventario junto con su medicamento y farmacia (vistas de lectura).
type InventoryItem struct {
	Inventory
	Medicine Medicine
	Pharmacy Pharmacy
}
