package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// ProductRepository define el puerto de consulta de productos.
// Devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	GetByCode(code string) (*entity.Product, error)
}
