package dto

import "time"

// CreateInventoryRecordRequest body para POST /api/inventory.
type CreateInventoryRecordRequest struct {
	Code          string `json:"code" validate:"required"`
	Year          int    `json:"year" validate:"required"`
	ProductCode   string `json:"product_code" validate:"required"`
	WarehouseCode string `json:"warehouse_code" validate:"required"`
	BalanceBefore int64  `json:"balance_before" validate:"omitempty,min=0"`
	TotalIn       int64  `json:"total_in" validate:"omitempty,min=0"`
	TotalOut      int64  `json:"total_out" validate:"omitempty,min=0"`
	MinThreshold  int64  `json:"min_threshold" validate:"omitempty,min=0"`
}

// UpdateInventoryRecordRequest body para PUT /api/inventory/:code (patch parcial).
type UpdateInventoryRecordRequest struct {
	Year          *int    `json:"year,omitempty"`
	ProductCode   *string `json:"product_code,omitempty"`
	WarehouseCode *string `json:"warehouse_code,omitempty"`
	BalanceBefore *int64  `json:"balance_before,omitempty" validate:"omitempty,min=0"`
	TotalIn       *int64  `json:"total_in,omitempty" validate:"omitempty,min=0"`
	TotalOut      *int64  `json:"total_out,omitempty" validate:"omitempty,min=0"`
	MinThreshold  *int64  `json:"min_threshold,omitempty" validate:"omitempty,min=0"`
}

// InventoryRecordResponse representación de un registro de inventario.
type InventoryRecordResponse struct {
	Code           string    `json:"code"`
	Year           int       `json:"year"`
	ProductCode    string    `json:"product_code"`
	WarehouseCode  string    `json:"warehouse_code"`
	BalanceBefore  int64     `json:"balance_before"`
	TotalIn        int64     `json:"total_in"`
	TotalOut       int64     `json:"total_out"`
	CurrentBalance int64     `json:"current_balance"`
	MinThreshold   int64     `json:"min_threshold"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InventoryRecordListResponse listado paginado de registros.
type InventoryRecordListResponse struct {
	Items []InventoryRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
