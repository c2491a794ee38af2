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
	invdomain "github.com/jhoicas/bodega-api/internal/domain/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// StockOutUseCase registra salidas de mercancía repartiendo la cantidad entre
// los registros de inventario del par (producto, bodega), año más reciente
// primero. El desglose del reparto se persiste junto al movimiento para que
// update y delete reviertan exactamente lo aplicado.
type StockOutUseCase struct {
	txRunner TxRunner
	validate refValidator
	// strictStock: con true, stock insuficiente rechaza la salida; con false
	// (comportamiento histórico) solo se registra una advertencia y el reparto
	// drena lo disponible.
	strictStock bool
	log         *logger.Logger
}

// NewStockOutUseCase construye el caso de uso.
func NewStockOutUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	refRepo repository.ReferenceRepository,
	strictStock bool,
	log *logger.Logger,
) *StockOutUseCase {
	return &StockOutUseCase{
		txRunner:    txRunner,
		validate:    refValidator{products: productRepo, warehouses: warehouseRepo, refs: refRepo},
		strictStock: strictStock,
		log:         log,
	}
}

// Create registra una salida. Con producto y bodega informados carga todos los
// registros del par (cualquier año) con bloqueo de fila, reparte la cantidad
// año descendente y persiste el movimiento por la cantidad completa solicitada,
// se haya cubierto o no (el faltante se descarta y queda en el log).
func (uc *StockOutUseCase) Create(ctx context.Context, in dto.CreateStockOutRequest) (*dto.StockOutResponse, error) {
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
	if err := uc.validate.customer(in.CustomerCode); err != nil {
		return nil, err
	}
	if err := uc.validate.user(in.ResponsibleID); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockOutMovement{
		ID:            uuid.New().String(),
		Code:          in.Code,
		ProductCode:   in.ProductCode,
		Quantity:      in.Quantity,
		Date:          in.Date,
		WarehouseCode: in.WarehouseCode,
		CustomerCode:  in.CustomerCode,
		ResponsibleID: in.ResponsibleID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var allocs []invdomain.Allocation
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		exists, err := r.StockOuts.ExistsCode(in.Code)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("salida %s: %w", in.Code, domain.ErrDuplicate)
		}
		seq, err := r.StockOuts.NextSeq()
		if err != nil {
			return err
		}
		mov.Seq = seq
		if err := r.StockOuts.Create(mov); err != nil {
			return err
		}
		if in.WarehouseCode == "" {
			// Sin bodega no hay efecto de inventario: solo queda el movimiento.
			return nil
		}
		allocs, err = uc.allocate(r, mov, product.Price, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toStockOutResponse(mov, toAllocationDTOs(allocs)), nil
}

// Update revierte las asignaciones persistidas del movimiento y vuelve a
// ejecutar el reparto con los valores nuevos, todo en una transacción.
func (uc *StockOutUseCase) Update(ctx context.Context, code string, in dto.UpdateStockOutRequest) (*dto.StockOutResponse, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, fmt.Errorf("quantity debe ser positiva: %w", domain.ErrInvalidInput)
	}

	var out *dto.StockOutResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		old, err := r.StockOuts.GetByCode(code)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("salida %s: %w", code, domain.ErrNotFound)
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
		if in.CustomerCode != nil {
			next.CustomerCode = *in.CustomerCode
		}
		if in.ResponsibleID != nil {
			next.ResponsibleID = *in.ResponsibleID
		}

		newProduct, err := uc.validate.product(next.ProductCode)
		if err != nil {
			return err
		}
		if err := uc.validate.warehouse(next.WarehouseCode); err != nil {
			return err
		}
		if err := uc.validate.customer(next.CustomerCode); err != nil {
			return err
		}
		if err := uc.validate.user(next.ResponsibleID); err != nil {
			return err
		}

		now := time.Now()
		next.UpdatedAt = now

		if old.WarehouseCode != "" {
			if err := uc.reverseOut(r, old, now); err != nil {
				return err
			}
		}

		var allocs []invdomain.Allocation
		if next.WarehouseCode != "" {
			allocs, err = uc.allocate(r, &next, newProduct.Price, now)
			if err != nil {
				return err
			}
		}

		if err := r.StockOuts.Update(&next); err != nil {
			return err
		}
		out = toStockOutResponse(&next, toAllocationDTOs(allocs))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete revierte las asignaciones persistidas y elimina el movimiento.
func (uc *StockOutUseCase) Delete(ctx context.Context, code string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		mov, err := r.StockOuts.GetByCode(code)
		if err != nil {
			return err
		}
		if mov == nil {
			return fmt.Errorf("salida %s: %w", code, domain.ErrNotFound)
		}
		if mov.WarehouseCode != "" {
			if err := uc.reverseOut(r, mov, time.Now()); err != nil {
				return err
			}
		}
		return r.StockOuts.Delete(code)
	})
}

// GetByCode obtiene una salida con su desglose de asignaciones.
func (uc *StockOutUseCase) GetByCode(ctx context.Context, code string) (*dto.StockOutResponse, error) {
	var out *dto.StockOutResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		mov, err := r.StockOuts.GetByCode(code)
		if err != nil {
			return err
		}
		if mov == nil {
			return nil
		}
		stored, err := r.StockOuts.ListAllocations(code)
		if err != nil {
			return err
		}
		items := make([]dto.AllocationDTO, 0, len(stored))
		for _, a := range stored {
			items = append(items, dto.AllocationDTO{RecordCode: a.RecordCode, Quantity: a.Quantity})
		}
		out = toStockOutResponse(mov, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista salidas paginadas por secuencia.
func (uc *StockOutUseCase) List(ctx context.Context, limit, offset int) (*dto.StockOutListResponse, error) {
	var list []*entity.StockOutMovement
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		list, err = r.StockOuts.List(limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockOutResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toStockOutResponse(m, nil))
	}
	return &dto.StockOutListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// allocate ejecuta el reparto contra los registros bloqueados del par
// (producto, bodega), aplica los descuentos, persiste el desglose y ajusta los
// totales de bodega. El movimiento conserva la cantidad completa solicitada.
func (uc *StockOutUseCase) allocate(r TxRepos, mov *entity.StockOutMovement, price decimal.Decimal, now time.Time) ([]invdomain.Allocation, error) {
	records, err := r.Records.ListByPairForUpdate(mov.ProductCode, mov.WarehouseCode)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("inventario de %s en bodega %s: %w", mov.ProductCode, mov.WarehouseCode, domain.ErrRefNotFound)
	}

	available := invdomain.TotalAvailable(records)
	if available < mov.Quantity {
		if uc.strictStock {
			return nil, fmt.Errorf("disponible %d, solicitado %d: %w", available, mov.Quantity, domain.ErrInsufficientStock)
		}
		uc.log.Warn().
			Str("movement", mov.Code).
			Str("product", mov.ProductCode).
			Str("warehouse", mov.WarehouseCode).
			Int64("available", available).
			Int64("requested", mov.Quantity).
			Msg("stock insuficiente: la salida se registra de todas formas")
	}

	allocs, _ := invdomain.Allocate(records, mov.Quantity)

	byCode := make(map[string]*entity.InventoryRecord, len(records))
	for _, rec := range records {
		byCode[rec.Code] = rec
	}
	var allocated int64
	rows := make([]entity.StockOutAllocation, 0, len(allocs))
	for _, a := range allocs {
		rec := byCode[a.RecordCode]
		rec.CurrentBalance -= a.Quantity
		rec.TotalOut += a.Quantity
		rec.UpdatedAt = now
		if err := r.Records.Update(rec); err != nil {
			return nil, err
		}
		allocated += a.Quantity
		rows = append(rows, entity.StockOutAllocation{
			MovementCode: mov.Code,
			RecordCode:   a.RecordCode,
			Quantity:     a.Quantity,
		})
	}
	if len(rows) > 0 {
		if err := r.StockOuts.CreateAllocations(rows); err != nil {
			return nil, err
		}
	}

	// El valor de salida refleja la cantidad solicitada; la existencia baja solo
	// por lo efectivamente descontado.
	outValue := valueOf(price, mov.Quantity)
	onHandDelta := valueOf(price, allocated).Neg()
	if err := r.Warehouses.AdjustValues(mov.WarehouseCode, decimal.Zero, outValue, onHandDelta); err != nil {
		return nil, err
	}
	return allocs, nil
}

// reverseOut devuelve a cada registro lo que el desglose persistido le descontó
// y ajusta los totales de bodega en sentido inverso. Un registro desaparecido
// se reporta en el log y se omite.
func (uc *StockOutUseCase) reverseOut(r TxRepos, mov *entity.StockOutMovement, now time.Time) error {
	stored, err := r.StockOuts.ListAllocations(mov.Code)
	if err != nil {
		return err
	}
	var restored int64
	for _, a := range stored {
		rec, err := r.Records.GetByCodeForUpdate(a.RecordCode)
		if err != nil {
			return err
		}
		if rec == nil {
			uc.log.Warn().
				Str("movement", mov.Code).
				Str("record", a.RecordCode).
				Msg("registro de inventario no encontrado al revertir salida")
			continue
		}
		rec.CurrentBalance += a.Quantity
		rec.TotalOut -= a.Quantity
		rec.UpdatedAt = now
		if err := r.Records.Update(rec); err != nil {
			return err
		}
		restored += a.Quantity
	}
	if err := r.StockOuts.DeleteAllocations(mov.Code); err != nil {
		return err
	}

	product, err := r.Products.GetByCode(mov.ProductCode)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", mov.ProductCode, domain.ErrRefNotFound)
	}
	outValue := valueOf(product.Price, mov.Quantity).Neg()
	onHandDelta := valueOf(product.Price, restored)
	return r.Warehouses.AdjustValues(mov.WarehouseCode, decimal.Zero, outValue, onHandDelta)
}

func toAllocationDTOs(allocs []invdomain.Allocation) []dto.AllocationDTO {
	if len(allocs) == 0 {
		return nil
	}
	items := make([]dto.AllocationDTO, 0, len(allocs))
	for _, a := range allocs {
		items = append(items, dto.AllocationDTO{RecordCode: a.RecordCode, Quantity: a.Quantity})
	}
	return items
}

func toStockOutResponse(m *entity.StockOutMovement, allocs []dto.AllocationDTO) *dto.StockOutResponse {
	return &dto.StockOutResponse{
		Code:          m.Code,
		Seq:           m.Seq,
		ProductCode:   m.ProductCode,
		Quantity:      m.Quantity,
		Date:          m.Date,
		WarehouseCode: m.WarehouseCode,
		CustomerCode:  m.CustomerCode,
		ResponsibleID: m.ResponsibleID,
		Allocations:   allocs,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
