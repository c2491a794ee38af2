package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// StockInRepository define el puerto de persistencia para entradas de mercancía.
type StockInRepository interface {
	Create(m *entity.StockInMovement) error
	GetByCode(code string) (*entity.StockInMovement, error)
	List(limit, offset int) ([]*entity.StockInMovement, error)
	Update(m *entity.StockInMovement) error
	Delete(code string) error
	ExistsCode(code string) (bool, error)
	// NextSeq obtiene el siguiente número de secuencia desde la BD (atómico).
	NextSeq() (int64, error)
}
