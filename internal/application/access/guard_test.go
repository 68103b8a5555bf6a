package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
)

var (
	sinEmpresa = access.Principal{UserID: "u1"}
	miembro    = access.Principal{UserID: "u1", CompanyID: "c1"}
	dueno      = access.Principal{UserID: "u1", CompanyID: "c1", IsOwner: true}
)

func TestGuard_CanCreateCompany(t *testing.T) {
	g := access.NewGuard()

	assert.NoError(t, g.CanCreateCompany(sinEmpresa),
		"un usuario sin empresa puede crear una")
	assert.NoError(t, g.CanCreateCompany(miembro),
		"un miembro no-dueño puede crear su propia empresa")
	assert.ErrorIs(t, g.CanCreateCompany(dueno), domain.ErrAlreadyOwner,
		"quien ya es dueño de una empresa no puede crear otra")
}

func TestGuard_CanManageCompany(t *testing.T) {
	g := access.NewGuard()

	assert.ErrorIs(t, g.CanManageCompany(sinEmpresa), domain.ErrNotAttachedToCompany)
	assert.ErrorIs(t, g.CanManageCompany(miembro), domain.ErrPermissionDenied,
		"un miembro sin flag de dueño no administra la empresa")
	assert.NoError(t, g.CanManageCompany(dueno))
}

func TestGuard_CanManageStorage_SoloDueno(t *testing.T) {
	g := access.NewGuard()

	assert.ErrorIs(t, g.CanManageStorage(miembro), domain.ErrPermissionDenied)
	assert.NoError(t, g.CanManageStorage(dueno))
}

func TestGuard_RequireMember(t *testing.T) {
	g := access.NewGuard()

	assert.ErrorIs(t, g.RequireMember(sinEmpresa), domain.ErrNotAttachedToCompany)
	assert.NoError(t, g.RequireMember(miembro),
		"cualquier miembro opera proveedores, productos y suministros")
	assert.NoError(t, g.RequireMember(dueno))
}
