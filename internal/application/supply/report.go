package supply

import (
	"context"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

// ReportUseCase genera el recibo PDF de un suministro y la exportación
// Excel del historial de suministros de la empresa.
type ReportUseCase struct {
	guard        *access.Guard
	supplyRepo   repository.SupplyRepository
	companyRepo  repository.CompanyRepository
	supplierRepo repository.SupplierRepository
	receiptGen   ReceiptGenerator
	exportGen    ExportGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	guard *access.Guard,
	supplyRepo repository.SupplyRepository,
	companyRepo repository.CompanyRepository,
	supplierRepo repository.SupplierRepository,
	receiptGen ReceiptGenerator,
	exportGen ExportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		guard:        guard,
		supplyRepo:   supplyRepo,
		companyRepo:  companyRepo,
		supplierRepo: supplierRepo,
		receiptGen:   receiptGen,
		exportGen:    exportGen,
	}
}

// GenerateReceipt genera el PDF de recibo del suministro indicado.
// Devuelve (nil, nil) si el suministro no existe o es de otra empresa.
func (uc *ReportUseCase) GenerateReceipt(ctx context.Context, p access.Principal, supplyID string) ([]byte, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	sup, err := uc.supplyRepo.GetByIDAndCompany(supplyID, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, nil
	}
	company, err := uc.companyRepo.GetByID(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByIDAndCompany(sup.SupplierID, p.CompanyID)
	if err != nil {
		return nil, err
	}
	return uc.receiptGen.GenerateSupplyReceipt(ctx, sup, company, supplier)
}

// exportPageSize páginas de carga al exportar (el export recorre todo el
// historial por lotes).
const exportPageSize = 200

// ExportSupplies genera el .xlsx con todos los suministros de la empresa.
func (uc *ReportUseCase) ExportSupplies(ctx context.Context, p access.Principal) ([]byte, error) {
	if err := uc.guard.RequireMember(p); err != nil {
		return nil, err
	}
	var all []*entity.Supply
	for offset := 0; ; offset += exportPageSize {
		page, err := uc.supplyRepo.ListByCompany(p.CompanyID, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
	}

	suppliers := make(map[string]*entity.Supplier)
	for _, s := range all {
		if _, ok := suppliers[s.SupplierID]; ok {
			continue
		}
		supplier, err := uc.supplierRepo.GetByIDAndCompany(s.SupplierID, p.CompanyID)
		if err != nil {
			return nil, err
		}
		if supplier != nil {
			suppliers[s.SupplierID] = supplier
		}
	}
	return uc.exportGen.GenerateSuppliesExport(all, suppliers)
}
