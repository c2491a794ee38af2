package entity

import "time"

// InventoryRecord representa la fila de saldo corriente por (producto, bodega, año).
// Es la fuente de verdad de existencias; los movimientos solo aplican deltas sobre ella.
type InventoryRecord struct {
	Code           string // clave estable; única también por (producto, bodega, año)
	Year           int
	ProductCode    string
	WarehouseCode  string
	BalanceBefore  int64 // saldo inicial del año
	TotalIn        int64 // entradas acumuladas
	TotalOut       int64 // salidas acumuladas
	CurrentBalance int64
	MinThreshold   int64 // umbral de reposición
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reconciled verifica la identidad de saldos: saldo actual = inicial + entradas - salidas.
func (r *InventoryRecord) Reconciled() bool {
	return r.CurrentBalance == r.BalanceBefore+r.TotalIn-r.TotalOut
}

// BelowThreshold indica si el saldo actual está por debajo del umbral mínimo.
func (r *InventoryRecord) BelowThreshold() bool {
	return r.CurrentBalance < r.MinThreshold
}
