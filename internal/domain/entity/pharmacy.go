package entity

import "time"

// Pharmacy representa una sede de farmacia perteneciente a un usuario (multi-tenant por dueño).
// (OwnerID, Name, City) es único; CRNumber es único en todo el sistema.
type Pharmacy struct {
	ID        string
	OwnerID   string
	Name      string
	City      string
	Address   string
	Phone     string
	IsActive  bool
	CRNumber  string // número de registro comercial
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy indica si la farmacia pertenece al usuario dado.
func (p *Pharmacy) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.OwnerID == userID
}
