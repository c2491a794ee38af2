package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto almacenable. Price se usa para los rollups
// monetarios de bodega (valor = precio × cantidad).
type Product struct {
	Code      string
	Name      string
	Price     decimal.Decimal
	Unit      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
