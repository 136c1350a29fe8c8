package dto

import "time"

// MedicineRequest entrada para crear un medicamento.
type MedicineRequest struct {
	Name        string `json:"name"`
	GenericName string `json:"generic_name"`
	Form        string `json:"form"`
	Strength    string `json:"strength"`
	Description string `json:"description"`
}

// MedicineResponse salida de un medicamento. Los opcionales ausentes se omiten.
type MedicineResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	GenericName string    `json:"generic_name,omitempty"`
	Form        string    `json:"form"`
	Strength    string    `json:"strength"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// MedicineDetailResponse medicamento con su disponibilidad por farmacia.
type MedicineDetailResponse struct {
	Medicine     MedicineResponse       `json:"medicine"`
	Availability []AvailabilityResponse `json:"availability"`
}

// AvailabilityResponse stock de un medicamento en una farmacia.
type AvailabilityResponse struct {
	InventoryID string                 `json:"inventory_id"`
	Pharmacy    PublicPharmacyResponse `json:"pharmacy"`
	Quantity    int64                  `json:"quantity"`
	Price       string                 `json:"price"`
	Status      string                 `json:"status"`
}
