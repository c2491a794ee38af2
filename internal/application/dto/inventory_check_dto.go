package dto

import "time"

// CreateInventoryCheckRequest body para POST /api/inventory-checks.
type CreateInventoryCheckRequest struct {
	Code           string    `json:"code" validate:"required"`
	Year           int       `json:"year" validate:"required"`
	ActualQuantity int64     `json:"actual_quantity" validate:"min=0"`
	Date           time.Time `json:"date" validate:"required"`
	ProductCode    string    `json:"product_code,omitempty"`
	WarehouseCode  string    `json:"warehouse_code,omitempty"`
	RecordCode     string    `json:"record_code,omitempty"`
	ResponsibleID  string    `json:"responsible_id,omitempty"`
}

// UpdateInventoryCheckRequest body para PUT /api/inventory-checks/:code.
type UpdateInventoryCheckRequest struct {
	Year           *int       `json:"year,omitempty"`
	ActualQuantity *int64     `json:"actual_quantity,omitempty" validate:"omitempty,min=0"`
	Date           *time.Time `json:"date,omitempty"`
	ProductCode    *string    `json:"product_code,omitempty"`
	WarehouseCode  *string    `json:"warehouse_code,omitempty"`
	RecordCode     *string    `json:"record_code,omitempty"`
	ResponsibleID  *string    `json:"responsible_id,omitempty"`
}

// InventoryCheckResponse representación de un conteo físico.
type InventoryCheckResponse struct {
	Code           string    `json:"code"`
	Year           int       `json:"year"`
	ProductCode    string    `json:"product_code,omitempty"`
	WarehouseCode  string    `json:"warehouse_code,omitempty"`
	RecordCode     string    `json:"record_code,omitempty"`
	ActualQuantity int64     `json:"actual_quantity"`
	SystemQuantity int64     `json:"system_quantity"`
	Variance       int64     `json:"variance"`
	Date           time.Time `json:"date"`
	ResponsibleID  string    `json:"responsible_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InventoryCheckListResponse listado paginado de conteos.
type InventoryCheckListResponse struct {
	Items []InventoryCheckResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
