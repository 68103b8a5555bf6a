package repository

import "github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// La pertenencia se resuelve vía el almacén del producto: un producto es de
// la empresa cuyo storage lo contiene. Consultas acotadas devuelven
// (nil, nil) tanto si el producto no existe como si es de otra empresa.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByIDAndCompany(id, companyID string) (*entity.Product, error)
	// GetForUpdateInCompany bloquea la fila del producto (SELECT FOR UPDATE)
	// para serializar incrementos de stock concurrentes.
	GetForUpdateInCompany(id, companyID string) (*entity.Product, error)
	// AddQuantity incrementa el stock del producto en delta unidades.
	AddQuantity(id string, delta int64) error
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(id, companyID string) error
}
