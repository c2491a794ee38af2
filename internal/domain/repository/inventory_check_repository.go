package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// InventoryCheckRepository define el puerto de persistencia para conteos físicos.
type InventoryCheckRepository interface {
	Create(check *entity.InventoryCheck) error
	GetByCode(code string) (*entity.InventoryCheck, error)
	List(limit, offset int) ([]*entity.InventoryCheck, error)
	Update(check *entity.InventoryCheck) error
	Delete(code string) error
	ExistsCode(code string) (bool, error)
	// CountByRecord cuenta los conteos que referencian un registro de inventario
	// (bloquea el borrado del registro mientras sea > 0).
	CountByRecord(recordCode string) (int64, error)
}
