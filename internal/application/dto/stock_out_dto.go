package dto

import "time"

// CreateStockOutRequest body para POST /api/stock-out.
type CreateStockOutRequest struct {
	Code          string    `json:"code" validate:"required"`
	ProductCode   string    `json:"product_code" validate:"required"`
	Quantity      int64     `json:"quantity" validate:"required,gt=0"`
	Date          time.Time `json:"date" validate:"required"`
	WarehouseCode string    `json:"warehouse_code,omitempty"`
	CustomerCode  string    `json:"customer_code,omitempty"`
	ResponsibleID string    `json:"responsible_id,omitempty"`
}

// UpdateStockOutRequest body para PUT /api/stock-out/:code. Campos nil no cambian.
type UpdateStockOutRequest struct {
	ProductCode   *string    `json:"product_code,omitempty"`
	Quantity      *int64     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Date          *time.Time `json:"date,omitempty"`
	WarehouseCode *string    `json:"warehouse_code,omitempty"`
	CustomerCode  *string    `json:"customer_code,omitempty"`
	ResponsibleID *string    `json:"responsible_id,omitempty"`
}

// AllocationDTO desglose de una salida: cuánto se descontó de cada registro.
type AllocationDTO struct {
	RecordCode string `json:"record_code"`
	Quantity   int64  `json:"quantity"`
}

// StockOutResponse representación de una salida en respuestas.
type StockOutResponse struct {
	Code          string          `json:"code"`
	Seq           int64           `json:"seq"`
	ProductCode   string          `json:"product_code"`
	Quantity      int64           `json:"quantity"`
	Date          time.Time       `json:"date"`
	WarehouseCode string          `json:"warehouse_code,omitempty"`
	CustomerCode  string          `json:"customer_code,omitempty"`
	ResponsibleID string          `json:"responsible_id,omitempty"`
	Allocations   []AllocationDTO `json:"allocations,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockOutListResponse listado paginado de salidas.
type StockOutListResponse struct {
	Items []StockOutResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
