package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// StockInUseCase registra entradas de mercancía de forma transaccional:
// movimiento + incremento del registro de inventario + rollup de bodega en una
// sola transacción con bloqueo de fila.
type StockInUseCase struct {
	txRunner TxRunner
	validate refValidator
	log      *logger.Logger
}

// NewStockInUseCase construye el caso de uso.
func NewStockInUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	refRepo repository.ReferenceRepository,
	log *logger.Logger,
) *StockInUseCase {
	return &StockInUseCase{
		txRunner: txRunner,
		validate: refValidator{products: productRepo, warehouses: warehouseRepo, refs: refRepo},
		log:      log,
	}
}

// Create registra una entrada. Si producto y bodega vienen informados, busca el
// registro de inventario del año de la fecha del movimiento (lo crea si no
// existe) e incrementa total_in y current_balance.
func (uc *StockInUseCase) Create(ctx context.Context, in dto.CreateStockInRequest) (*dto.StockInResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("quantity debe ser positiva: %w", domain.ErrInvalidInput)
	}
	product, err := uc.validate.product(in.ProductCode)
	if err != nil {
		return nil, err
	}
	if err := uc.validate.warehouse(in.WarehouseCode); err != nil {
		return nil, err
	}
	if err := uc.validate.supplier(in.SupplierCode); err != nil {
		return nil, err
	}
	if err := uc.validate.bill(in.BillCode); err != nil {
		return nil, err
	}
	if err := uc.validate.contract(in.ContractCode); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockInMovement{
		ID:            uuid.New().String(),
		Code:          in.Code,
		ProductCode:   in.ProductCode,
		Quantity:      in.Quantity,
		Date:          in.Date,
		WarehouseCode: in.WarehouseCode,
		SupplierCode:  in.SupplierCode,
		BillCode:      in.BillCode,
		ContractCode:  in.ContractCode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		exists, err := r.StockIns.ExistsCode(in.Code)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("entrada %s: %w", in.Code, domain.ErrDuplicate)
		}
		seq, err := r.StockIns.NextSeq()
		if err != nil {
			return err
		}
		mov.Seq = seq
		if err := r.StockIns.Create(mov); err != nil {
			return err
		}
		if in.WarehouseCode == "" {
			return nil
		}
		if err := uc.applyIn(r, in.ProductCode, in.WarehouseCode, in.Date.Year(), in.Quantity, now); err != nil {
			return err
		}
		value := valueOf(product.Price, in.Quantity)
		return r.Warehouses.AdjustValues(in.WarehouseCode, value, decimal.Zero, value)
	})
	if err != nil {
		return nil, err
	}
	return toStockInResponse(mov), nil
}

// Update recalcula el delta entre la cantidad anterior y la nueva. Si cambió el
// producto, la bodega o el año, revierte la cantidad completa contra el registro
// anterior y aplica la nueva contra el registro destino (creándolo si falta).
func (uc *StockInUseCase) Update(ctx context.Context, code string, in dto.UpdateStockInRequest) (*dto.StockInResponse, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, fmt.Errorf("quantity debe ser positiva: %w", domain.ErrInvalidInput)
	}

	var out *dto.StockInResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		old, err := r.StockIns.GetByCode(code)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("entrada %s: %w", code, domain.ErrNotFound)
		}

		next := *old
		if in.ProductCode != nil {
			next.ProductCode = *in.ProductCode
		}
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		if in.Date != nil {
			next.Date = *in.Date
		}
		if in.WarehouseCode != nil {
			next.WarehouseCode = *in.WarehouseCode
		}
		if in.SupplierCode != nil {
			next.SupplierCode = *in.SupplierCode
		}
		if in.BillCode != nil {
			next.BillCode = *in.BillCode
		}
		if in.ContractCode != nil {
			next.ContractCode = *in.ContractCode
		}

		newProduct, err := uc.validate.product(next.ProductCode)
		if err != nil {
			return err
		}
		if err := uc.validate.warehouse(next.WarehouseCode); err != nil {
			return err
		}
		if err := uc.validate.supplier(next.SupplierCode); err != nil {
			return err
		}
		if err := uc.validate.bill(next.BillCode); err != nil {
			return err
		}
		if err := uc.validate.contract(next.ContractCode); err != nil {
			return err
		}

		now := time.Now()
		next.UpdatedAt = now

		moved := next.ProductCode != old.ProductCode ||
			next.WarehouseCode != old.WarehouseCode ||
			next.Date.Year() != old.Date.Year()

		if moved {
			// Revertir la cantidad completa en el registro anterior y aplicar la
			// nueva en el destino.
			if old.WarehouseCode != "" {
				if err := uc.reverseIn(r, old, now); err != nil {
					return err
				}
			}
			if next.WarehouseCode != "" {
				if err := uc.applyIn(r, next.ProductCode, next.WarehouseCode, next.Date.Year(), next.Quantity, now); err != nil {
					return err
				}
				value := valueOf(newProduct.Price, next.Quantity)
				if err := r.Warehouses.AdjustValues(next.WarehouseCode, value, decimal.Zero, value); err != nil {
					return err
				}
			}
		} else if next.WarehouseCode != "" {
			delta := next.Quantity - old.Quantity
			if delta != 0 {
				rec, err := r.Records.GetByKeyForUpdate(next.ProductCode, next.WarehouseCode, next.Date.Year())
				if err != nil {
					return err
				}
				if rec == nil {
					uc.log.Warn().
						Str("movement", code).
						Str("product", next.ProductCode).
						Str("warehouse", next.WarehouseCode).
						Msg("registro de inventario no encontrado al ajustar entrada")
				} else {
					rec.TotalIn += delta
					rec.CurrentBalance += delta
					rec.UpdatedAt = now
					if err := r.Records.Update(rec); err != nil {
						return err
					}
				}
				value := valueOf(newProduct.Price, delta)
				if err := r.Warehouses.AdjustValues(next.WarehouseCode, value, decimal.Zero, value); err != nil {
					return err
				}
			}
		}

		if err := r.StockIns.Update(&next); err != nil {
			return err
		}
		out = toStockInResponse(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete revierte el delta original (total_in y current_balance bajan en la
// cantidad del movimiento) y elimina el movimiento.
func (uc *StockInUseCase) Delete(ctx context.Context, code string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		mov, err := r.StockIns.GetByCode(code)
		if err != nil {
			return err
		}
		if mov == nil {
			return fmt.Errorf("entrada %s: %w", code, domain.ErrNotFound)
		}
		if mov.WarehouseCode != "" {
			if err := uc.reverseIn(r, mov, time.Now()); err != nil {
				return err
			}
		}
		return r.StockIns.Delete(code)
	})
}

// GetByCode obtiene una entrada por su código.
func (uc *StockInUseCase) GetByCode(ctx context.Context, code string) (*dto.StockInResponse, error) {
	var out *dto.StockInResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		mov, err := r.StockIns.GetByCode(code)
		if err != nil {
			return err
		}
		if mov != nil {
			out = toStockInResponse(mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista entradas paginadas por secuencia.
func (uc *StockInUseCase) List(ctx context.Context, limit, offset int) (*dto.StockInListResponse, error) {
	var list []*entity.StockInMovement
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		list, err = r.StockIns.List(limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockInResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toStockInResponse(m))
	}
	return &dto.StockInListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// applyIn incrementa total_in y current_balance del registro (producto, bodega, año);
// lo crea con código INV-{producto}-{bodega}-{año} si aún no existe.
func (uc *StockInUseCase) applyIn(r TxRepos, productCode, warehouseCode string, year int, quantity int64, now time.Time) error {
	rec, err := r.Records.GetByKeyForUpdate(productCode, warehouseCode, year)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &entity.InventoryRecord{
			Code:           fmt.Sprintf("INV-%s-%s-%d", productCode, warehouseCode, year),
			Year:           year,
			ProductCode:    productCode,
			WarehouseCode:  warehouseCode,
			BalanceBefore:  0,
			TotalIn:        quantity,
			TotalOut:       0,
			CurrentBalance: quantity,
			MinThreshold:   0,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return r.Records.Create(rec)
	}
	rec.TotalIn += quantity
	rec.CurrentBalance += quantity
	rec.UpdatedAt = now
	return r.Records.Update(rec)
}

// reverseIn deshace el efecto completo de un movimiento de entrada sobre su
// registro de inventario y los totales de bodega. Si el registro ya no existe,
// deja constancia en el log y continúa (no hay nada que revertir).
func (uc *StockInUseCase) reverseIn(r TxRepos, mov *entity.StockInMovement, now time.Time) error {
	rec, err := r.Records.GetByKeyForUpdate(mov.ProductCode, mov.WarehouseCode, mov.Date.Year())
	if err != nil {
		return err
	}
	if rec == nil {
		uc.log.Warn().
			Str("movement", mov.Code).
			Str("product", mov.ProductCode).
			Str("warehouse", mov.WarehouseCode).
			Msg("registro de inventario no encontrado al revertir entrada")
	} else {
		rec.TotalIn -= mov.Quantity
		rec.CurrentBalance -= mov.Quantity
		rec.UpdatedAt = now
		if err := r.Records.Update(rec); err != nil {
			return err
		}
	}
	product, err := r.Products.GetByCode(mov.ProductCode)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", mov.ProductCode, domain.ErrRefNotFound)
	}
	value := valueOf(product.Price, mov.Quantity)
	return r.Warehouses.AdjustValues(mov.WarehouseCode, value.Neg(), decimal.Zero, value.Neg())
}

func toStockInResponse(m *entity.StockInMovement) *dto.StockInResponse {
	return &dto.StockInResponse{
		Code:          m.Code,
		Seq:           m.Seq,
		ProductCode:   m.ProductCode,
		Quantity:      m.Quantity,
		Date:          m.Date,
		WarehouseCode: m.WarehouseCode,
		SupplierCode:  m.SupplierCode,
		BillCode:      m.BillCode,
		ContractCode:  m.ContractCode,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
