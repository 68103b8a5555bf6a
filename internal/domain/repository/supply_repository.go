package repository

import "github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"

// SupplyRepository define el puerto de persistencia para Supply y sus líneas.
// Create y CreateLine solo se invocan dentro de la transacción del motor de
// intake; no existe Update ni Delete: un suministro confirmado es inmutable.
type SupplyRepository interface {
	Create(supply *entity.Supply) error
	CreateLine(line *entity.SupplyLine) error
	// GetByIDAndCompany devuelve el suministro con líneas y productos
	// resueltos, o (nil, nil) si no existe o es de otra empresa.
	GetByIDAndCompany(id, companyID string) (*entity.Supply, error)
	// ListByCompany devuelve los suministros de la empresa, más recientes
	// primero, con líneas cargadas.
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supply, error)
}
