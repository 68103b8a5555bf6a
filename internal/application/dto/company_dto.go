package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	TaxID string `json:"tax_id" validate:"required,min=1,max=12"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	TaxID *string `json:"tax_id" validate:"omitempty,min=1,max=12"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCompanyResponse salida de la creación: la empresa y un token fresco
// con los claims actualizados (el caller pasó a ser dueño).
type CreateCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Token   string          `json:"token"`
}
