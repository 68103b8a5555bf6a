package repository

import "github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"

// StorageRepository define el puerto de persistencia para Storage (DIP).
// GetByCompany es el contrato tipado "almacén de la empresa X, o ninguno":
// devuelve (nil, nil) cuando la empresa no tiene almacén.
type StorageRepository interface {
	Create(storage *entity.Storage) error
	GetByCompany(companyID string) (*entity.Storage, error)
	Update(storage *entity.Storage) error
	Delete(id string) error
}
