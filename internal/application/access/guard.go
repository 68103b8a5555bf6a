package access

import "github.com/Aglamorousfortuneteller/crm-api/internal/domain"

// Principal es la identidad autenticada que viaja explícitamente por todos
// los casos de uso (nunca estado global). La construye el middleware JWT a
// partir de los claims del token.
type Principal struct {
	UserID    string
	CompanyID string // vacío = usuario sin empresa
	IsOwner   bool
}

// Attached indica si el principal está vinculado a una empresa.
func (p Principal) Attached() bool { return p.CompanyID != "" }

// Guard decide ALLOW/DENY para acciones sobre recursos del tenant.
// Es puro: nunca consulta ni muta estado; todo lo que necesita viaja en el
// Principal. El aislamiento de lecturas entre tenants no pasa por aquí:
// lo garantizan los repositorios acotando cada consulta por company_id
// (un recurso ajeno se comporta como inexistente, no como prohibido).
type Guard struct{}

// NewGuard construye el guard.
func NewGuard() *Guard { return &Guard{} }

// CanCreateCompany permite crear empresa solo a quien aún no es dueño de una.
func (g *Guard) CanCreateCompany(p Principal) error {
	if p.IsOwner && p.Attached() {
		return domain.ErrAlreadyOwner
	}
	return nil
}

// CanManageCompany permite editar/eliminar la empresa solo a su dueño.
func (g *Guard) CanManageCompany(p Principal) error {
	if !p.Attached() {
		return domain.ErrNotAttachedToCompany
	}
	if !p.IsOwner {
		return domain.ErrPermissionDenied
	}
	return nil
}

// CanManageStorage permite el ciclo de vida del almacén solo al dueño.
func (g *Guard) CanManageStorage(p Principal) error {
	return g.CanManageCompany(p)
}

// RequireMember exige pertenencia a una empresa: cualquier miembro puede
// leer y escribir proveedores, productos y suministros de su empresa.
func (g *Guard) RequireMember(p Principal) error {
	if !p.Attached() {
		return domain.ErrNotAttachedToCompany
	}
	return nil
}
