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

// CompanyTxRunner ejecuta una función dentro de una transacción con los
// repositorios de empresa y usuario atados a esa tx. Crear empresa (insert +
// vincular dueño) y eliminarla (desvincular usuarios + delete) son pasos
// múltiples que deben ser atómicos.
type CompanyTxRunner interface {
	RunCompany(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// TokenIssuer firma un JWT para el usuario con sus claims actuales.
type TokenIssuer interface {
	TokenFor(user *entity.User) (string, error)
}

// CompanyUseCase aplica reglas de negocio para empresas.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	guard    *access.Guard
	txRunner CompanyTxRunner
	issuer   TokenIssuer
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, guard *access.Guard, txRunner CompanyTxRunner, issuer TokenIssuer) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, guard: guard, txRunner: txRunner, issuer: issuer}
}

// Create crea una empresa y vincula al caller como dueño, en una sola
// transacción. Devuelve ErrAlreadyOwner si el caller ya posee una empresa y
// ErrDuplicate si el tax_id ya existe. Incluye un token fresco: el anterior
// no refleja los claims nuevos.
func (uc *CompanyUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateCompanyRequest) (*dto.CreateCompanyResponse, error) {
	if err := uc.guard.CanCreateCompany(p); err != nil {
		return nil, err
	}
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByTaxID(in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.RunCompany(ctx, func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error {
		if err := companyRepo.Create(company); err != nil {
			return err
		}
		return userRepo.AttachToCompany(p.UserID, company.ID, true)
	})
	if err != nil {
		return nil, err
	}
	token, err := uc.issuer.TokenFor(&entity.User{ID: p.UserID, CompanyID: company.ID, IsOwner: true})
	if err != nil {
		return nil, err
	}
	return &dto.CreateCompanyResponse{
		Company: *entityToCompanyResponse(company),
		Token:   token,
	}, nil
}

// Get devuelve la empresa del caller. Cualquier miembro puede leerla.
func (uc *CompanyUseCase) Get(ctx context.Context, p access.Principal) (*dto.CompanyResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// Update modifica la empresa del caller. Solo el dueño.
func (uc *CompanyUseCase) Update(ctx context.Context, p access.Principal, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := uc.guard.CanManageCompany(p); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.TaxID != nil && *in.TaxID != company.TaxID {
		existing, _ := uc.repo.GetByTaxID(*in.TaxID)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		company.TaxID = *in.TaxID
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina la empresa del caller. Solo el dueño. Primero desvincula a
// todos los usuarios (company_id NULL, is_owner false) y luego borra la
// empresa; el resto del tenant cae por FK ON DELETE CASCADE.
func (uc *CompanyUseCase) Delete(ctx context.Context, p access.Principal) error {
	if err := uc.guard.CanManageCompany(p); err != nil {
		return err
	}
	return uc.txRunner.RunCompany(ctx, func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error {
		if err := userRepo.DetachByCompany(p.CompanyID); err != nil {
			return err
		}
		return companyRepo.Delete(p.CompanyID)
	})
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
