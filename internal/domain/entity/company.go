package entity

import "time"

// Company representa una organización/tenant del sistema. Todo lo que posee
// (almacén, proveedores, productos, suministros) cuelga de ella.
type Company struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria, única en el sistema
	CreatedAt time.Time
	UpdatedAt time.Time
}
