package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto almacenado en el almacén de una empresa.
// Quantity la controla el servidor: inicia en 0 y solo la muta el motor de
// intake de suministros (nunca el cliente).
type Product struct {
	ID            string
	StorageID     string
	Title         string
	Quantity      int64           // unidades en stock, >= 0
	PurchasePrice decimal.Decimal // precio de compra, >= 0
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
