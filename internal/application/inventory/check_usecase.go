package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// InventoryCheckUseCase registra conteos físicos. El diferencial (variance) es
// una foto al momento del conteo: actual - saldo del sistema. Un conteo nunca
// modifica el saldo del registro de inventario.
type InventoryCheckUseCase struct {
	txRunner TxRunner
	validate refValidator
}

// NewInventoryCheckUseCase construye el caso de uso.
func NewInventoryCheckUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	refRepo repository.ReferenceRepository,
) *InventoryCheckUseCase {
	return &InventoryCheckUseCase{
		txRunner: txRunner,
		validate: refValidator{products: productRepo, warehouses: warehouseRepo, refs: refRepo},
	}
}

// Create registra un conteo. El saldo del sistema se toma del registro
// referenciado (0 si no se referencia ninguno). Si hay bodega, actualiza su
// fecha de último conteo.
func (uc *InventoryCheckUseCase) Create(ctx context.Context, in dto.CreateInventoryCheckRequest) (*dto.InventoryCheckResponse, error) {
	if in.ActualQuantity < 0 {
		return nil, fmt.Errorf("actual_quantity no puede ser negativa: %w", domain.ErrInvalidInput)
	}
	if in.ProductCode != "" {
		if _, err := uc.validate.product(in.ProductCode); err != nil {
			return nil, err
		}
	}
	if err := uc.validate.warehouse(in.WarehouseCode); err != nil {
		return nil, err
	}
	if err := uc.validate.user(in.ResponsibleID); err != nil {
		return nil, err
	}

	now := time.Now()
	check := &entity.InventoryCheck{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Year:           in.Year,
		ProductCode:    in.ProductCode,
		WarehouseCode:  in.WarehouseCode,
		RecordCode:     in.RecordCode,
		ActualQuantity: in.ActualQuantity,
		Date:           in.Date,
		ResponsibleID:  in.ResponsibleID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		exists, err := r.Checks.ExistsCode(in.Code)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("conteo %s: %w", in.Code, domain.ErrDuplicate)
		}
		system, err := resolveSystemQuantity(r, in.RecordCode)
		if err != nil {
			return err
		}
		check.SystemQuantity = system
		check.Variance = check.ActualQuantity - system
		if err := r.Checks.Create(check); err != nil {
			return err
		}
		if in.WarehouseCode != "" {
			return r.Warehouses.SetLastChecked(in.WarehouseCode, in.Date)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCheckResponse(check), nil
}

// Update revalida las referencias cambiadas, vuelve a resolver el saldo del
// sistema desde el registro (posiblemente nuevo) y recalcula el diferencial.
func (uc *InventoryCheckUseCase) Update(ctx context.Context, code string, in dto.UpdateInventoryCheckRequest) (*dto.InventoryCheckResponse, error) {
	if in.ActualQuantity != nil && *in.ActualQuantity < 0 {
		return nil, fmt.Errorf("actual_quantity no puede ser negativa: %w", domain.ErrInvalidInput)
	}

	var out *dto.InventoryCheckResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		old, err := r.Checks.GetByCode(code)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("conteo %s: %w", code, domain.ErrNotFound)
		}

		next := *old
		if in.Year != nil {
			next.Year = *in.Year
		}
		if in.ActualQuantity != nil {
			next.ActualQuantity = *in.ActualQuantity
		}
		if in.Date != nil {
			next.Date = *in.Date
		}
		if in.ProductCode != nil {
			next.ProductCode = *in.ProductCode
		}
		if in.WarehouseCode != nil {
			next.WarehouseCode = *in.WarehouseCode
		}
		if in.RecordCode != nil {
			next.RecordCode = *in.RecordCode
		}
		if in.ResponsibleID != nil {
			next.ResponsibleID = *in.ResponsibleID
		}

		if next.ProductCode != "" {
			if _, err := uc.validate.product(next.ProductCode); err != nil {
				return err
			}
		}
		if err := uc.validate.warehouse(next.WarehouseCode); err != nil {
			return err
		}
		if err := uc.validate.user(next.ResponsibleID); err != nil {
			return err
		}

		recalc := in.ActualQuantity != nil || in.RecordCode != nil
		if recalc {
			system, err := resolveSystemQuantity(r, next.RecordCode)
			if err != nil {
				return err
			}
			next.SystemQuantity = system
			next.Variance = next.ActualQuantity - system
		}
		next.UpdatedAt = time.Now()
		if err := r.Checks.Update(&next); err != nil {
			return err
		}
		if next.WarehouseCode != "" {
			if err := r.Warehouses.SetLastChecked(next.WarehouseCode, next.Date); err != nil {
				return err
			}
		}
		out = toCheckResponse(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina el conteo. No tiene efectos sobre saldos ni bodegas.
func (uc *InventoryCheckUseCase) Delete(ctx context.Context, code string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		check, err := r.Checks.GetByCode(code)
		if err != nil {
			return err
		}
		if check == nil {
			return fmt.Errorf("conteo %s: %w", code, domain.ErrNotFound)
		}
		return r.Checks.Delete(code)
	})
}

// GetByCode obtiene un conteo por su código.
func (uc *InventoryCheckUseCase) GetByCode(ctx context.Context, code string) (*dto.InventoryCheckResponse, error) {
	var out *dto.InventoryCheckResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		check, err := r.Checks.GetByCode(code)
		if err != nil {
			return err
		}
		if check != nil {
			out = toCheckResponse(check)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista conteos paginados.
func (uc *InventoryCheckUseCase) List(ctx context.Context, limit, offset int) (*dto.InventoryCheckListResponse, error) {
	var list []*entity.InventoryCheck
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		list, err = r.Checks.List(limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryCheckResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCheckResponse(c))
	}
	return &dto.InventoryCheckListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// resolveSystemQuantity lee el saldo actual del registro referenciado.
// Sin referencia el saldo del sistema es 0. Con referencia, el registro debe
// existir: un record_code colgante es un error del cliente (ErrRefNotFound),
// no un conteo contra saldo 0, igual que el resto de referencias que se
// validan antes de mutar.
func resolveSystemQuantity(r TxRepos, recordCode string) (int64, error) {
	if recordCode == "" {
		return 0, nil
	}
	rec, err := r.Records.GetByCode(recordCode)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, fmt.Errorf("registro de inventario %s: %w", recordCode, domain.ErrRefNotFound)
	}
	return rec.CurrentBalance, nil
}

func toCheckResponse(c *entity.InventoryCheck) *dto.InventoryCheckResponse {
	return &dto.InventoryCheckResponse{
		Code:           c.Code,
		Year:           c.Year,
		ProductCode:    c.ProductCode,
		WarehouseCode:  c.WarehouseCode,
		RecordCode:     c.RecordCode,
		ActualQuantity: c.ActualQuantity,
		SystemQuantity: c.SystemQuantity,
		Variance:       c.Variance,
		Date:           c.Date,
		ResponsibleID:  c.ResponsibleID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
