package entity

import "time"

// Storage representa el almacén de una empresa. Relación uno a uno: una
// empresa tiene como máximo un almacén (UNIQUE company_id en la tabla).
type Storage struct {
	ID        string
	CompanyID string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
