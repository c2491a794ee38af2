package dto

import "time"

// CreateStockInRequest body para POST /api/stock-in.
type CreateStockInRequest struct {
	Code          string    `json:"code" validate:"required"`
	ProductCode   string    `json:"product_code" validate:"required"`
	Quantity      int64     `json:"quantity" validate:"required,gt=0"`
	Date          time.Time `json:"date" validate:"required"`
	WarehouseCode string    `json:"warehouse_code,omitempty"`
	SupplierCode  string    `json:"supplier_code,omitempty"`
	BillCode      string    `json:"bill_code,omitempty"`
	ContractCode  string    `json:"contract_code,omitempty"`
}

// UpdateStockInRequest body para PUT /api/stock-in/:code. Campos nil no cambian.
type UpdateStockInRequest struct {
	ProductCode   *string    `json:"product_code,omitempty"`
	Quantity      *int64     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Date          *time.Time `json:"date,omitempty"`
	WarehouseCode *string    `json:"warehouse_code,omitempty"`
	SupplierCode  *string    `json:"supplier_code,omitempty"`
	BillCode      *string    `json:"bill_code,omitempty"`
	ContractCode  *string    `json:"contract_code,omitempty"`
}

// StockInResponse representación de una entrada en respuestas.
type StockInResponse struct {
	Code          string    `json:"code"`
	Seq           int64     `json:"seq"`
	ProductCode   string    `json:"product_code"`
	Quantity      int64     `json:"quantity"`
	Date          time.Time `json:"date"`
	WarehouseCode string    `json:"warehouse_code,omitempty"`
	SupplierCode  string    `json:"supplier_code,omitempty"`
	BillCode      string    `json:"bill_code,omitempty"`
	ContractCode  string    `json:"contract_code,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockInListResponse listado paginado de entradas.
type StockInListResponse struct {
	Items []StockInResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
