package entity

import "time"

// Supplier representa un proveedor de una empresa (tenant-scoped: visible
// solo por miembros de su empresa).
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
