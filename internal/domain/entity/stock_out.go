package entity

import "time"

// StockOutMovement representa una salida de mercancía de bodega.
// Quantity es la cantidad solicitada; lo efectivamente descontado queda en las
// asignaciones (StockOutAllocation) para poder revertir con exactitud.
type StockOutMovement struct {
	ID            string
	Code          string
	Seq           int64
	ProductCode   string
	Quantity      int64 // cantidad solicitada, siempre positiva
	Date          time.Time
	WarehouseCode string
	CustomerCode  string
	ResponsibleID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockOutAllocation registra cuánto de una salida se descontó de cada registro
// de inventario. Permite que update/delete reviertan exactamente lo aplicado.
type StockOutAllocation struct {
	MovementCode string
	RecordCode   string
	Quantity     int64
}
