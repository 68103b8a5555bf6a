package entity

import "time"

// User representa un usuario del sistema. CompanyID vacío = sin empresa.
// Invariante: IsOwner=true implica CompanyID no vacío (un dueño siempre
// pertenece a la empresa que posee).
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsOwner      bool
	CompanyID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
