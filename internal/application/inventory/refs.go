package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// refValidator valida la existencia de entidades referenciadas antes de iniciar
// cualquier mutación. Toda validación ocurre antes de abrir la transacción.
type refValidator struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	refs       repository.ReferenceRepository
}

// product exige que el producto exista y lo devuelve (se necesita el precio).
func (v *refValidator) product(code string) (*entity.Product, error) {
	if code == "" {
		return nil, fmt.Errorf("product_code es requerido: %w", domain.ErrInvalidInput)
	}
	p, err := v.products.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", code, domain.ErrRefNotFound)
	}
	return p, nil
}

// warehouse valida la bodega solo si viene informada.
func (v *refValidator) warehouse(code string) error {
	if code == "" {
		return nil
	}
	w, err := v.warehouses.GetByCode(code)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("bodega %s: %w", code, domain.ErrRefNotFound)
	}
	return nil
}

func (v *refValidator) supplier(code string) error {
	return v.exists(code, "proveedor", v.refs.SupplierExists)
}

func (v *refValidator) customer(code string) error {
	return v.exists(code, "cliente", v.refs.CustomerExists)
}

func (v *refValidator) contract(code string) error {
	return v.exists(code, "contrato", v.refs.ContractExists)
}

func (v *refValidator) bill(code string) error {
	return v.exists(code, "factura", v.refs.BillExists)
}

func (v *refValidator) user(id string) error {
	return v.exists(id, "usuario", v.refs.UserExists)
}

func (v *refValidator) exists(code, name string, check func(string) (bool, error)) error {
	if code == "" {
		return nil
	}
	ok, err := check(code)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", name, code, domain.ErrRefNotFound)
	}
	return nil
}

// valueOf calcula el valor monetario de una cantidad al precio del producto.
func valueOf(price decimal.Decimal, quantity int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity))
}
