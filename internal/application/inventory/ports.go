package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Records    repository.InventoryRecordRepository
	StockIns   repository.StockInRepository
	StockOuts  repository.StockOutRepository
	Checks     repository.InventoryCheckRepository
	Warehouses repository.WarehouseRepository
	Products   repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: movimiento + saldo + rollup de bodega se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
