package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// InventoryRecordRepository define el puerto de persistencia para los registros
// de inventario por (producto, bodega, año).
type InventoryRecordRepository interface {
	Create(rec *entity.InventoryRecord) error
	GetByCode(code string) (*entity.InventoryRecord, error)
	// GetByCodeForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetByCodeForUpdate(code string) (*entity.InventoryRecord, error)
	// GetByKeyForUpdate busca por la clave compuesta (producto, bodega, año) con bloqueo de fila.
	GetByKeyForUpdate(productCode, warehouseCode string, year int) (*entity.InventoryRecord, error)
	// ListByPairForUpdate devuelve todos los registros de (producto, bodega) sin
	// discriminar año, ordenados por año descendente y con bloqueo de fila.
	ListByPairForUpdate(productCode, warehouseCode string) ([]*entity.InventoryRecord, error)
	ListByProduct(productCode string, limit, offset int) ([]*entity.InventoryRecord, error)
	ListByWarehouse(warehouseCode string, limit, offset int) ([]*entity.InventoryRecord, error)
	// ListBelowThreshold lista registros con saldo actual por debajo del umbral mínimo.
	ListBelowThreshold(limit, offset int) ([]*entity.InventoryRecord, error)
	Update(rec *entity.InventoryRecord) error
	Delete(code string) error
	ExistsCode(code string) (bool, error)
}
