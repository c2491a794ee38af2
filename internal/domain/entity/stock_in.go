package entity

import "time"

// StockInMovement representa una entrada de mercancía a bodega.
// Las referencias a proveedor, factura y contrato son opcionales.
type StockInMovement struct {
	ID            string
	Code          string // código de negocio, único
	Seq           int64  // secuencia de presentación, asignada por la BD
	ProductCode   string
	Quantity      int64 // siempre positivo
	Date          time.Time
	WarehouseCode string
	SupplierCode  string
	BillCode      string
	ContractCode  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
