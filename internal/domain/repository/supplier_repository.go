package repository

import "github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
// Todas las consultas van acotadas por empresa: un proveedor de otra empresa
// se comporta igual que uno inexistente (nil, nil).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByIDAndCompany(id, companyID string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
	Delete(id, companyID string) error
}
