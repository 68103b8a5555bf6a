package supply

import (
	"context"

	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// intake: o se confirman el suministro, sus líneas y todos los incrementos
// de stock, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		supplyRepo repository.SupplyRepository,
		productRepo repository.ProductRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}

// ReceiptGenerator genera el PDF de recibo de un suministro confirmado.
type ReceiptGenerator interface {
	GenerateSupplyReceipt(ctx context.Context, supply *entity.Supply, company *entity.Company, supplier *entity.Supplier) ([]byte, error)
}

// ExportGenerator genera el archivo .xlsx con los suministros de la empresa.
type ExportGenerator interface {
	GenerateSuppliesExport(supplies []*entity.Supply, suppliers map[string]*entity.Supplier) ([]byte, error)
}
