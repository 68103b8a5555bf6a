package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/pkg/jwt"
)

// Locals keys para el principal en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalIsOwner   = "is_owner"
)

// AuthMiddleware valida el Bearer Token JWT y extrae el principal a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, companyID, isOwner, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalIsOwner, isOwner)
		return c.Next()
	}
}

// GetPrincipal arma el principal desde el contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) access.Principal {
	p := access.Principal{}
	if v, ok := c.Locals(LocalUserID).(string); ok {
		p.UserID = v
	}
	if v, ok := c.Locals(LocalCompanyID).(string); ok {
		p.CompanyID = v
	}
	if v, ok := c.Locals(LocalIsOwner).(bool); ok {
		p.IsOwner = v
	}
	return p
}
