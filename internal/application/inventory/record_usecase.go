package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// RecordUseCase administra los registros de inventario de forma explícita
// (alta manual, patch parcial, borrado) manteniendo el rollup de valor en
// existencia de la bodega dueña.
type RecordUseCase struct {
	txRunner TxRunner
	validate refValidator
}

// NewRecordUseCase construye el caso de uso.
func NewRecordUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	refRepo repository.ReferenceRepository,
) *RecordUseCase {
	return &RecordUseCase{
		txRunner: txRunner,
		validate: refValidator{products: productRepo, warehouses: warehouseRepo, refs: refRepo},
	}
}

// Create da de alta un registro. Ante colisión de código reintenta con sufijos
// _1, _2, … El saldo actual se deriva de la identidad saldo inicial + entradas
// - salidas. La bodega suma precio × saldo a su valor en existencia.
func (uc *RecordUseCase) Create(ctx context.Context, in dto.CreateInventoryRecordRequest) (*dto.InventoryRecordResponse, error) {
	product, err := uc.validate.product(in.ProductCode)
	if err != nil {
		return nil, err
	}
	if in.WarehouseCode == "" {
		return nil, fmt.Errorf("warehouse_code es requerido: %w", domain.ErrInvalidInput)
	}
	if err := uc.validate.warehouse(in.WarehouseCode); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &entity.InventoryRecord{
		Code:           in.Code,
		Year:           in.Year,
		ProductCode:    in.ProductCode,
		WarehouseCode:  in.WarehouseCode,
		BalanceBefore:  in.BalanceBefore,
		TotalIn:        in.TotalIn,
		TotalOut:       in.TotalOut,
		CurrentBalance: in.BalanceBefore + in.TotalIn - in.TotalOut,
		MinThreshold:   in.MinThreshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		code := in.Code
		for suffix := 1; ; suffix++ {
			exists, err := r.Records.ExistsCode(code)
			if err != nil {
				return err
			}
			if !exists {
				break
			}
			code = fmt.Sprintf("%s_%d", in.Code, suffix)
		}
		rec.Code = code
		if err := r.Records.Create(rec); err != nil {
			return err
		}
		value := valueOf(product.Price, rec.CurrentBalance)
		return r.Warehouses.AdjustValues(in.WarehouseCode, decimal.Zero, decimal.Zero, value)
	})
	if err != nil {
		return nil, err
	}
	return toRecordResponse(rec), nil
}

// Update aplica un patch parcial. Si cambia producto o bodega, el valor viejo
// (precio viejo × saldo viejo) se descuenta de la bodega anterior y el nuevo se
// suma a la bodega destino; si solo cambian saldos, se ajusta la misma bodega
// por el delta.
func (uc *RecordUseCase) Update(ctx context.Context, code string, in dto.UpdateInventoryRecordRequest) (*dto.InventoryRecordResponse, error) {
	var out *dto.InventoryRecordResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		old, err := r.Records.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("registro %s: %w", code, domain.ErrNotFound)
		}

		next := *old
		if in.Year != nil {
			next.Year = *in.Year
		}
		if in.ProductCode != nil {
			next.ProductCode = *in.ProductCode
		}
		if in.WarehouseCode != nil {
			next.WarehouseCode = *in.WarehouseCode
		}
		if in.BalanceBefore != nil {
			next.BalanceBefore = *in.BalanceBefore
		}
		if in.TotalIn != nil {
			next.TotalIn = *in.TotalIn
		}
		if in.TotalOut != nil {
			next.TotalOut = *in.TotalOut
		}
		if in.MinThreshold != nil {
			next.MinThreshold = *in.MinThreshold
		}
		next.CurrentBalance = next.BalanceBefore + next.TotalIn - next.TotalOut
		next.UpdatedAt = time.Now()

		newProduct, err := uc.validate.product(next.ProductCode)
		if err != nil {
			return err
		}
		if err := uc.validate.warehouse(next.WarehouseCode); err != nil {
			return err
		}

		moved := next.ProductCode != old.ProductCode || next.WarehouseCode != old.WarehouseCode
		if moved {
			oldProduct, err := r.Products.GetByCode(old.ProductCode)
			if err != nil {
				return err
			}
			if oldProduct != nil {
				oldValue := valueOf(oldProduct.Price, old.CurrentBalance)
				if err := r.Warehouses.AdjustValues(old.WarehouseCode, decimal.Zero, decimal.Zero, oldValue.Neg()); err != nil {
					return err
				}
			}
			newValue := valueOf(newProduct.Price, next.CurrentBalance)
			if err := r.Warehouses.AdjustValues(next.WarehouseCode, decimal.Zero, decimal.Zero, newValue); err != nil {
				return err
			}
		} else if next.CurrentBalance != old.CurrentBalance {
			delta := valueOf(newProduct.Price, next.CurrentBalance-old.CurrentBalance)
			if err := r.Warehouses.AdjustValues(next.WarehouseCode, decimal.Zero, decimal.Zero, delta); err != nil {
				return err
			}
		}

		if err := r.Records.Update(&next); err != nil {
			return err
		}
		out = toRecordResponse(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un registro. Se bloquea mientras algún conteo lo referencie;
// la bodega descuenta precio × saldo de su valor en existencia.
func (uc *RecordUseCase) Delete(ctx context.Context, code string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		rec, err := r.Records.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("registro %s: %w", code, domain.ErrNotFound)
		}
		refs, err := r.Checks.CountByRecord(code)
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("registro %s referenciado por %d conteo(s): %w", code, refs, domain.ErrConflict)
		}
		product, err := r.Products.GetByCode(rec.ProductCode)
		if err != nil {
			return err
		}
		if product != nil {
			value := valueOf(product.Price, rec.CurrentBalance)
			if err := r.Warehouses.AdjustValues(rec.WarehouseCode, decimal.Zero, decimal.Zero, value.Neg()); err != nil {
				return err
			}
		}
		return r.Records.Delete(code)
	})
}

// GetByCode obtiene un registro por su código.
func (uc *RecordUseCase) GetByCode(ctx context.Context, code string) (*dto.InventoryRecordResponse, error) {
	var out *dto.InventoryRecordResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		rec, err := r.Records.GetByCode(code)
		if err != nil {
			return err
		}
		if rec != nil {
			out = toRecordResponse(rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByProduct lista registros de un producto.
func (uc *RecordUseCase) ListByProduct(ctx context.Context, productCode string, limit, offset int) (*dto.InventoryRecordListResponse, error) {
	return uc.list(ctx, limit, offset, func(r TxRepos) ([]*entity.InventoryRecord, error) {
		return r.Records.ListByProduct(productCode, limit, offset)
	})
}

// ListByWarehouse lista registros de una bodega.
func (uc *RecordUseCase) ListByWarehouse(ctx context.Context, warehouseCode string, limit, offset int) (*dto.InventoryRecordListResponse, error) {
	return uc.list(ctx, limit, offset, func(r TxRepos) ([]*entity.InventoryRecord, error) {
		return r.Records.ListByWarehouse(warehouseCode, limit, offset)
	})
}

// ListLowStock lista registros con saldo por debajo de su umbral mínimo.
func (uc *RecordUseCase) ListLowStock(ctx context.Context, limit, offset int) (*dto.InventoryRecordListResponse, error) {
	return uc.list(ctx, limit, offset, func(r TxRepos) ([]*entity.InventoryRecord, error) {
		return r.Records.ListBelowThreshold(limit, offset)
	})
}

func (uc *RecordUseCase) list(ctx context.Context, limit, offset int, fetch func(TxRepos) ([]*entity.InventoryRecord, error)) (*dto.InventoryRecordListResponse, error) {
	var list []*entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		list, err = fetch(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toRecordResponse(rec))
	}
	return &dto.InventoryRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toRecordResponse(rec *entity.InventoryRecord) *dto.InventoryRecordResponse {
	return &dto.InventoryRecordResponse{
		Code:           rec.Code,
		Year:           rec.Year,
		ProductCode:    rec.ProductCode,
		WarehouseCode:  rec.WarehouseCode,
		BalanceBefore:  rec.BalanceBefore,
		TotalIn:        rec.TotalIn,
		TotalOut:       rec.TotalOut,
		CurrentBalance: rec.CurrentBalance,
		MinThreshold:   rec.MinThreshold,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
