package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
)

// mapDomainError traduce errores de dominio a respuestas HTTP. Todas las
// validaciones del intake responden 400; el detalle de la línea viaja en el
// mensaje (LineError) para feedback del cliente.
func mapDomainError(c *fiber.Ctx, err error) error {
	var lineErr *supply.LineError
	if errors.As(err, &lineErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: lineErr.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrNotAttachedToCompany):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_COMPANY", Message: err.Error()})
	case errors.Is(err, domain.ErrSupplierNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptySupply),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNoStorage):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyOwner):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_OWNER", Message: err.Error()})
	case errors.Is(err, domain.ErrPermissionDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrStorageExists), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	// Fallos inesperados de la BD: mensaje genérico, nada de detalles internos.
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
