package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
)

const maxPageLimit = 100

// parsePage lee limit/offset de la query y los acota a valores sanos.
func parsePage(c *fiber.Ctx) (limit, offset int) {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	p.DefaultPage()
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p.Limit, p.Offset
}

// SupplyHandler maneja el registro de suministros y sus reportes.
type SupplyHandler struct {
	uc       *supply.CreateSupplyUseCase
	reportUC *supply.ReportUseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *supply.CreateSupplyUseCase, reportUC *supply.ReportUseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc, reportUC: reportUC}
}

// Create registra un suministro completo de forma atómica. 201 con el
// suministro y los productos actualizados; 400 con la línea culpable si
// alguna validación falla (todo el suministro se descarta).
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSupply(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un suministro con sus líneas. 404 si no existe o es de
// otra empresa.
func (h *SupplyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSupply(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "suministro no encontrado"})
	}
	return c.JSON(out)
}

// List lista los suministros de la empresa, más recientes primero.
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.ListSupplies(c.Context(), GetPrincipal(c), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Receipt devuelve el recibo del suministro en PDF.
func (h *SupplyHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.reportUC.GenerateReceipt(c.Context(), GetPrincipal(c), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if pdfBytes == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "suministro no encontrado"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recibo_%s.pdf"`, id))
	return c.Send(pdfBytes)
}

// Export descarga el historial de suministros de la empresa en .xlsx.
func (h *SupplyHandler) Export(c *fiber.Ctx) error {
	data, err := h.reportUC.ExportSupplies(c.Context(), GetPrincipal(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="suministros.xlsx"`)
	return c.Send(data)
}
