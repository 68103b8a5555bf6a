package entity

import "time"

// Supply representa un suministro (reabastecimiento) recibido de un proveedor.
// Se crea junto con sus líneas de forma atómica y después es inmutable: las
// correcciones se registran como un nuevo suministro inverso, preservando el
// historial de movimientos de stock.
type Supply struct {
	ID         string
	CompanyID  string
	SupplierID string
	CreatedAt  time.Time // fijado por el servidor, inmutable
	Lines      []SupplyLine
}

// SupplyLine es una línea de suministro: producto y cantidad recibida.
// Invariante: Quantity > 0 y el producto pertenece al almacén de la misma
// empresa que el suministro.
type SupplyLine struct {
	ID        string
	SupplyID  string
	ProductID string
	Quantity  int64
	Position  int // orden de entrada del cliente
	Product   *Product
}
