package entity

import "time"

// Formas farmacéuticas válidas para Medicine.
const (
	FormTablet    = "Tablet"
	FormCapsule   = "Capsule"
	FormSyrup     = "Syrup"
	FormInjection = "Injection"
)

// MedicineForms lista las formas en el orden en que se presentan al usuario.
var MedicineForms = []string{FormTablet, FormCapsule, FormSyrup, FormInjection}

// Medicine representa un medicamento del catálogo, compartido entre farmacias vía Inventory.
// (CreatedBy, Name, Strength, Form) es único. GenericName y Description vacíos = ausentes (NULL en BD).
type Medicine struct {
	ID          string
	CreatedBy   string
	Name        string
	GenericName string
	Form        string
	Strength    string // ej. "500mg", "2.5 ml"
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
