package entity

import "time"

// User representa al dueño de una o más farmacias. La identidad es el email (en minúsculas).
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve nombre y apellido separados por espacio.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
