package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa una bodega con sus totales monetarios acumulados.
// Los totales son rollups derivados (caché), no autoritativos: se ajustan en la
// misma transacción que el movimiento que los origina.
type Warehouse struct {
	Code          string
	Name          string
	Address       string
	ValueIn       decimal.Decimal // valor acumulado de entradas
	ValueOut      decimal.Decimal // valor acumulado de salidas
	ValueOnHand   decimal.Decimal // valor del inventario en existencia
	LastCheckedAt *time.Time      // fecha del último conteo físico
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
