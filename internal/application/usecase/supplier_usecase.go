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

// SupplierUseCase aplica reglas de negocio para proveedores. Cualquier
// miembro de la empresa puede leer y escribir; todas las consultas van
// acotadas a la empresa del caller.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	guard *access.Guard
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, guard *access.Guard) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, guard: guard}
}

// Create crea un proveedor en la empresa del caller.
func (uc *SupplierUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		Name:        in.Name,
		ContactInfo: in.ContactInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return entityToSupplierResponse(supplier), nil
}

// GetByID devuelve un proveedor de la empresa del caller, o nil si no
// existe o es de otra empresa (misma respuesta para ambos casos).
func (uc *SupplierUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.SupplierResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByIDAndCompany(id, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return entityToSupplierResponse(supplier), nil
}

// Update modifica un proveedor de la empresa del caller.
func (uc *SupplierUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByIDAndCompany(id, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.ContactInfo != nil {
		supplier.ContactInfo = *in.ContactInfo
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return entityToSupplierResponse(supplier), nil
}

// List lista los proveedores de la empresa del caller con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, p access.Principal, limit, offset int) (*dto.SupplierListResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(p.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *entityToSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un proveedor de la empresa del caller.
func (uc *SupplierUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := uc.guard.RequireMember(p); err != nil {
		return err
	}
	supplier, err := uc.repo.GetByIDAndCompany(id, p.CompanyID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrSupplierNotFound
	}
	return uc.repo.Delete(id, p.CompanyID)
}

func entityToSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
