// Package excel genera la exportación .xlsx del historial de suministros
// de una empresa: una fila por línea de suministro.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appsupply "github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
)

var _ appsupply.ExportGenerator = (*SupplyExportGenerator)(nil)

// SupplyExportGenerator implementa supply.ExportGenerator usando excelize.
type SupplyExportGenerator struct{}

// NewSupplyExportGenerator construye el generador.
func NewSupplyExportGenerator() *SupplyExportGenerator { return &SupplyExportGenerator{} }

// GenerateSuppliesExport escribe el libro y devuelve sus bytes.
func (g *SupplyExportGenerator) GenerateSuppliesExport(
	supplies []*entity.Supply,
	suppliers map[string]*entity.Supplier,
) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"supply_id",
		"fecha",
		"proveedor",
		"producto",
		"cantidad",
		"precio_compra",
		"costo_linea",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	rowIdx := 2
	for _, s := range supplies {
		supplierName := s.SupplierID
		if sup, ok := suppliers[s.SupplierID]; ok {
			supplierName = sup.Name
		}
		for _, l := range s.Lines {
			title := l.ProductID
			price := ""
			lineCost := ""
			if l.Product != nil {
				title = l.Product.Title
				price = l.Product.PurchasePrice.StringFixed(2)
				lineCost = l.Product.PurchasePrice.Mul(decimal.NewFromInt(l.Quantity)).StringFixed(2)
			}
			excelRow := []interface{}{
				s.ID,
				s.CreatedAt.Format("2006-01-02 15:04:05"),
				supplierName,
				title,
				l.Quantity,
				price,
				lineCost,
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return nil, fmt.Errorf("excel: celda: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
				return nil, fmt.Errorf("excel: fila: %w", err)
			}
			rowIdx++
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
