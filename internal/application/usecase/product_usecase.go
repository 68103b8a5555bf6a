package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

// ProductUseCase aplica reglas de negocio para productos. Un producto vive
// en el almacén de la empresa; Quantity no es editable por clientes (nace en
// 0 y solo lo mueve el motor de suministros).
type ProductUseCase struct {
	repo        repository.ProductRepository
	storageRepo repository.StorageRepository
	guard       *access.Guard
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, storageRepo repository.StorageRepository, guard *access.Guard) *ProductUseCase {
	return &ProductUseCase{repo: repo, storageRepo: storageRepo, guard: guard}
}

// Create crea un producto en el almacén de la empresa del caller, con stock 0.
// Devuelve ErrNoStorage si la empresa aún no tiene almacén.
func (uc *ProductUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	storage, err := uc.storageRepo.GetByCompany(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNoStorage
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		StorageID:     storage.ID,
		Title:         in.Title,
		Quantity:      0, // siempre 0 al crear, el cliente no lo controla
		PurchasePrice: in.PurchasePrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return entityToProductResponse(product), nil
}

// GetByID devuelve un producto de la empresa del caller, o nil si no existe
// o es de otra empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ProductResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByIDAndCompany(id, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return entityToProductResponse(product), nil
}

// Update modifica título y/o precio de compra. Nunca el stock.
func (uc *ProductUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByIDAndCompany(id, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return entityToProductResponse(product), nil
}

// List lista los productos de la empresa del caller con paginación.
func (uc *ProductUseCase) List(ctx context.Context, p access.Principal, limit, offset int) (*dto.ProductListResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(p.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, prod := range list {
		items = append(items, *entityToProductResponse(prod))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto de la empresa del caller.
func (uc *ProductUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := uc.guard.RequireMember(p); err != nil {
		return err
	}
	product, err := uc.repo.GetByIDAndCompany(id, p.CompanyID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(id, p.CompanyID)
}

func entityToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		StorageID:     p.StorageID,
		Title:         p.Title,
		Quantity:      p.Quantity,
		PurchasePrice: p.PurchasePrice,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
