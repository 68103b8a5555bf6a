package dto

import "time"

// CreateSupplyRequest body para POST /api/supplies.
type CreateSupplyRequest struct {
	Supplier    string                    `json:"supplier" validate:"required"`
	SupplyLines []CreateSupplyLineRequest `json:"supply_lines" validate:"required,min=1"`
}

// CreateSupplyLineRequest línea de suministro: producto y cantidad.
type CreateSupplyLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// SupplyLineResponse línea con el producto resuelto.
type SupplyLineResponse struct {
	ID       string           `json:"id"`
	Quantity int64            `json:"quantity"`
	Product  *ProductResponse `json:"product,omitempty"`
}

// SupplyResponse salida de un suministro con sus líneas.
type SupplyResponse struct {
	ID          string               `json:"id"`
	CompanyID   string               `json:"company_id"`
	SupplierID  string               `json:"supplier"`
	CreatedAt   time.Time            `json:"created_at"`
	SupplyLines []SupplyLineResponse `json:"supply_lines"`
}

// SupplyListResponse lista paginada de suministros (más recientes primero).
type SupplyListResponse struct {
	Items []SupplyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
