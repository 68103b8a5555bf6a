package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
)

// respondWith monta una ruta que devuelve el error mapeado y ejecuta la petición.
func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return mapDomainError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestMapDomainError_ValidacionesDelIntake_400(t *testing.T) {
	for _, err := range []error{
		domain.ErrSupplierNotFound,
		domain.ErrProductNotFound,
		domain.ErrInvalidQuantity,
		domain.ErrEmptySupply,
		domain.ErrNoStorage,
	} {
		status, body := respondWith(t, err)
		assert.Equal(t, http.StatusBadRequest, status, "error %v", err)
		assert.Equal(t, "VALIDATION", body.Code)
	}
}

// El error de línea identifica la línea culpable (1-based) en el mensaje y
// conserva el 400 de la validación subyacente.
func TestMapDomainError_LineError_IncluyeLinea(t *testing.T) {
	status, body := respondWith(t, &supply.LineError{Index: 2, Err: domain.ErrProductNotFound})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "línea 3")
}

func TestMapDomainError_Permisos(t *testing.T) {
	status, body := respondWith(t, domain.ErrPermissionDenied)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Code)

	status, body = respondWith(t, domain.ErrNotAttachedToCompany)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NO_COMPANY", body.Code)

	status, body = respondWith(t, domain.ErrAlreadyOwner)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_OWNER", body.Code)
}

func TestMapDomainError_Duplicados_409(t *testing.T) {
	for _, err := range []error{domain.ErrDuplicate, domain.ErrStorageExists, domain.ErrEmailAlreadyExists} {
		status, body := respondWith(t, err)
		assert.Equal(t, http.StatusConflict, status, "error %v", err)
		assert.Equal(t, "DUPLICATE", body.Code)
	}
}

func TestMapDomainError_Desconocido_500SinDetalles(t *testing.T) {
	status, body := respondWith(t, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, assert.AnError.Error(),
		"los detalles internos no viajan al cliente")
}
