package entity

import "time"

// InventoryCheck representa un conteo físico contra un registro de inventario.
// Variance es una foto al momento del conteo: actual - saldo del sistema.
// Nunca modifica el saldo del registro referenciado.
type InventoryCheck struct {
	ID             string
	Code           string
	Year           int
	ProductCode    string
	WarehouseCode  string
	RecordCode     string // registro de inventario referenciado (opcional)
	ActualQuantity int64
	SystemQuantity int64 // saldo del sistema al momento del conteo
	Variance       int64 // ActualQuantity - SystemQuantity
	Date           time.Time
	ResponsibleID  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
