package supply

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

// CreateSupplyUseCase registra un suministro y sus líneas de forma
// transaccional, incrementando el stock de cada producto con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback.
type CreateSupplyUseCase struct {
	txRunner   TxRunner
	guard      *access.Guard
	supplyRepo repository.SupplyRepository // lecturas fuera de transacción
}

// NewCreateSupplyUseCase construye el caso de uso.
func NewCreateSupplyUseCase(txRunner TxRunner, guard *access.Guard, supplyRepo repository.SupplyRepository) *CreateSupplyUseCase {
	return &CreateSupplyUseCase{txRunner: txRunner, guard: guard, supplyRepo: supplyRepo}
}

// LineError identifica la línea que invalidó el intake (1-based para el
// cliente). Envuelve el error de dominio, así errors.Is sigue funcionando.
type LineError struct {
	Index int
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d: %v", e.Index+1, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// CreateSupply valida y confirma un suministro completo como unidad atómica:
//  1. El proveedor debe ser de la empresa del principal (ErrSupplierNotFound
//     cubre ajeno e inexistente por igual).
//  2. Cada línea: cantidad > 0 y producto del almacén de la misma empresa.
//  3. Cada producto se bloquea (FOR UPDATE) y su stock se incrementa.
//
// Cualquier fallo descarta todos los efectos y reporta el primer error en
// orden de entrada. El orden solo afecta qué error se reporta: el estado
// final confirmado es independiente del orden porque los incrementos son
// aditivos.
func (uc *CreateSupplyUseCase) CreateSupply(ctx context.Context, p access.Principal, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	if in.Supplier == "" {
		return nil, domain.ErrSupplierNotFound
	}
	if len(in.SupplyLines) == 0 {
		return nil, domain.ErrEmptySupply
	}

	now := time.Now()
	sup := &entity.Supply{
		ID:         uuid.New().String(),
		CompanyID:  p.CompanyID,
		SupplierID: in.Supplier,
		CreatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(
		supplyRepo repository.SupplyRepository,
		productRepo repository.ProductRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		supplier, err := supplierRepo.GetByIDAndCompany(in.Supplier, p.CompanyID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrSupplierNotFound
		}
		if err := supplyRepo.Create(sup); err != nil {
			return err
		}
		for i, lineIn := range in.SupplyLines {
			if lineIn.Quantity <= 0 {
				return &LineError{Index: i, Err: domain.ErrInvalidQuantity}
			}
			// Bloquea la fila del producto: serializa intakes concurrentes
			// sobre el mismo producto (sin lost updates).
			product, err := productRepo.GetForUpdateInCompany(lineIn.ProductID, p.CompanyID)
			if err != nil {
				return err
			}
			if product == nil {
				return &LineError{Index: i, Err: domain.ErrProductNotFound}
			}
			line := &entity.SupplyLine{
				ID:        uuid.New().String(),
				SupplyID:  sup.ID,
				ProductID: product.ID,
				Quantity:  lineIn.Quantity,
				Position:  i,
			}
			if err := supplyRepo.CreateLine(line); err != nil {
				return err
			}
			if err := productRepo.AddQuantity(product.ID, lineIn.Quantity); err != nil {
				return err
			}
			product.Quantity += lineIn.Quantity
			product.UpdatedAt = now
			line.Product = product
			sup.Lines = append(sup.Lines, *line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSupplyResponse(sup), nil
}

// GetSupply devuelve un suministro de la empresa del principal, o nil si no
// existe (incluye el caso "de otra empresa": misma respuesta).
func (uc *CreateSupplyUseCase) GetSupply(ctx context.Context, p access.Principal, id string) (*dto.SupplyResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	sup, err := uc.supplyRepo.GetByIDAndCompany(id, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, nil
	}
	return toSupplyResponse(sup), nil
}

// ListSupplies lista los suministros de la empresa, más recientes primero.
func (uc *CreateSupplyUseCase) ListSupplies(ctx context.Context, p access.Principal, limit, offset int) (*dto.SupplyListResponse, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	list, err := uc.supplyRepo.ListByCompany(p.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplyResponse(s))
	}
	return &dto.SupplyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSupplyResponse(s *entity.Supply) *dto.SupplyResponse {
	if s == nil {
		return nil
	}
	lines := make([]dto.SupplyLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lr := dto.SupplyLineResponse{
			ID:       l.ID,
			Quantity: l.Quantity,
		}
		if l.Product != nil {
			lr.Product = &dto.ProductResponse{
				ID:            l.Product.ID,
				StorageID:     l.Product.StorageID,
				Title:         l.Product.Title,
				Quantity:      l.Product.Quantity,
				PurchasePrice: l.Product.PurchasePrice,
				CreatedAt:     l.Product.CreatedAt,
				UpdatedAt:     l.Product.UpdatedAt,
			}
		}
		lines = append(lines, lr)
	}
	return &dto.SupplyResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		SupplierID:  s.SupplierID,
		CreatedAt:   s.CreatedAt,
		SupplyLines: lines,
	}
}
