package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrProductNotFound cubre a propósito tanto "no existe" como "pertenece a otra
// empresa": el mensaje no debe revelar la existencia de recursos ajenos.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrPermissionDenied      = errors.New("solo el dueño de la empresa puede realizar esta acción")
	ErrNotAttachedToCompany  = errors.New("el usuario no está vinculado a una empresa")
	ErrAlreadyOwner          = errors.New("el usuario ya es dueño de una empresa")
	ErrStorageExists         = errors.New("la empresa ya tiene un almacén")
	ErrNoStorage             = errors.New("la empresa no tiene almacén")
	ErrSupplierNotFound      = errors.New("proveedor no encontrado")
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrInvalidQuantity       = errors.New("la cantidad debe ser mayor que cero")
	ErrEmptySupply           = errors.New("el suministro debe tener al menos una línea")
)
