package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. No admite quantity:
// el stock inicia en 0 y solo lo mueve el motor de suministros.
type CreateProductRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=255"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// UpdateProductRequest entrada para actualizar un producto (sin quantity).
type UpdateProductRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=255"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	StorageID     string          `json:"storage_id"`
	Title         string          `json:"title"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
