// Package pdf implementa la generación del recibo PDF de un suministro
// confirmado: cabecera con empresa y proveedor, tabla de líneas con el
// producto resuelto y totales de unidades y costo estimado.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appsupply "github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appsupply.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa supply.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateSupplyReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateSupplyReceipt(
	_ context.Context,
	supply *entity.Supply,
	company *entity.Company,
	supplier *entity.Supplier,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de suministro", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(supply, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(supply.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(supply.Lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa + tax_id (izq) y N° de suministro + fecha (der).
func headerRow(supply *entity.Supply, company *entity.Company) core.Row {
	fecha := supply.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID tributario: "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE SUMINISTRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(supply.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New(fecha, props.Text{
				Size: 9, Align: align.Right, Top: 12,
			}),
		),
	)
}

// supplierRow: datos del proveedor del suministro.
func supplierRow(supplier *entity.Supplier) core.Row {
	name := "(proveedor eliminado)"
	contact := ""
	if supplier != nil {
		name = supplier.Name
		contact = supplier.ContactInfo
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROVEEDOR: "+name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(contact, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	hr := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(1).Add(text.New("#", h)),
		col.New(6).Add(text.New("Producto", h)),
		col.New(2).Add(text.New("Cantidad", hr)),
		col.New(3).Add(text.New("Costo estimado", hr)),
	)
}

func tableLineRows(lines []entity.SupplyLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		title := l.ProductID
		cost := ""
		if l.Product != nil {
			title = l.Product.Title
			cost = l.Product.PurchasePrice.Mul(decimal.NewFromInt(l.Quantity)).StringFixed(2)
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), props.Text{Size: 8})),
			col.New(6).Add(text.New(title, props.Text{Size: 8})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(cost, props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func totalsRow(lines []entity.SupplyLine) core.Row {
	var units int64
	total := decimal.Zero
	for _, l := range lines {
		units += l.Quantity
		if l.Product != nil {
			total = total.Add(l.Product.PurchasePrice.Mul(decimal.NewFromInt(l.Quantity)))
		}
	}
	return row.New(10).Add(
		col.New(7),
		col.New(2).Add(
			text.New(fmt.Sprintf("%d uds.", units), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New(total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}
