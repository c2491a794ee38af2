package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas y sus
// totales monetarios acumulados.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByCode(code string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	Delete(code string) error
	// AdjustValues suma los deltas a los totales de la bodega en una sola
	// sentencia (valor entradas, valor salidas, valor en existencia).
	AdjustValues(code string, deltaIn, deltaOut, deltaOnHand decimal.Decimal) error
	// SetLastChecked actualiza la fecha del último conteo físico.
	SetLastChecked(code string, date time.Time) error
}
