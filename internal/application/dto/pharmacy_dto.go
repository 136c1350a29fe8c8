package dto

import "time"

// PharmacyRequest entrada para crear o editar una farmacia. IsActive nil = true al crear, sin cambio al editar.
type PharmacyRequest struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
	CRNumber string `json:"cr_number"`
}

// PharmacyResponse salida de una farmacia.
type PharmacyResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CRNumber  string    `json:"cr_number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicPharmacyResponse vista pública de una farmacia (sin dueño ni registro comercial).
type PublicPharmacyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
