package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// StockOutRepository define el puerto de persistencia para salidas de mercancía
// y su desglose de asignaciones por registro de inventario.
type StockOutRepository interface {
	Create(m *entity.StockOutMovement) error
	GetByCode(code string) (*entity.StockOutMovement, error)
	List(limit, offset int) ([]*entity.StockOutMovement, error)
	Update(m *entity.StockOutMovement) error
	Delete(code string) error
	ExistsCode(code string) (bool, error)
	NextSeq() (int64, error)

	CreateAllocations(allocs []entity.StockOutAllocation) error
	ListAllocations(movementCode string) ([]entity.StockOutAllocation, error)
	DeleteAllocations(movementCode string) error
}
