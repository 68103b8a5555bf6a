package repository

import "github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// AttachToCompany vincula al usuario con la empresa y fija su flag de dueño.
	AttachToCompany(userID, companyID string, isOwner bool) error
	// DetachByCompany desvincula a todos los usuarios de la empresa
	// (company_id = NULL, is_owner = false). Usado al eliminar la empresa.
	DetachByCompany(companyID string) error
}
