package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

// StorageUseCase aplica reglas de negocio para el almacén de la empresa:
// como máximo uno por empresa, ciclo de vida solo para el dueño, lectura
// para cualquier miembro.
type StorageUseCase struct {
	repo  repository.StorageRepository
	guard *access.Guard
}

// NewStorageUseCase construye el caso de uso.
func NewStorageUseCase(repo repository.StorageRepository, guard *access.Guard) *StorageUseCase {
	return &StorageUseCase{repo: repo, guard: guard}
}

// Create crea el almacén de la empresa del caller. Solo el dueño; devuelve
// ErrStorageExists si la empresa ya tiene uno.
func (uc *StorageUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateStorageRequest) (*dto.StorageResponse, error) {
	if err := uc.guard.CanManageStorage(p); err != nil {
		return nil, err
	}
	if in.Address == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompany(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrStorageExists
	}
	now := time.Now()
	storage := &entity.Storage{
		ID:        uuid.New().String(),
		CompanyID: p.CompanyID,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(storage); err != nil {
		return nil, err
	}
	return entityToStorageResponse(storage), nil
}

// Get devuelve el almacén de la empresa del caller, o nil si no tiene.
func (uc *StorageUseCase) Get(ctx context.Context, p access.Principal) (*dto.StorageResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	storage, err := uc.repo.GetByCompany(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, nil
	}
	return entityToStorageResponse(storage), nil
}

// Update modifica el almacén. Solo el dueño.
func (uc *StorageUseCase) Update(ctx context.Context, p access.Principal, in dto.UpdateStorageRequest) (*dto.StorageResponse, error) {
	if err := uc.guard.CanManageStorage(p); err != nil {
		return nil, err
	}
	storage, err := uc.repo.GetByCompany(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNoStorage
	}
	if in.Address != nil {
		storage.Address = *in.Address
	}
	storage.UpdatedAt = time.Now()
	if err := uc.repo.Update(storage); err != nil {
		return nil, err
	}
	return entityToStorageResponse(storage), nil
}

// Delete elimina el almacén. Solo el dueño. Los productos del almacén caen
// por FK ON DELETE CASCADE.
func (uc *StorageUseCase) Delete(ctx context.Context, p access.Principal) error {
	if err := uc.guard.CanManageStorage(p); err != nil {
		return err
	}
	storage, err := uc.repo.GetByCompany(p.CompanyID)
	if err != nil {
		return err
	}
	if storage == nil {
		return domain.ErrNoStorage
	}
	return uc.repo.Delete(storage.ID)
}

func entityToStorageResponse(s *entity.Storage) *dto.StorageResponse {
	if s == nil {
		return nil
	}
	return &dto.StorageResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
