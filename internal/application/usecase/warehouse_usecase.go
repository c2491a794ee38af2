package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. Los totales monetarios los
// mantienen los procesadores de inventario; aquí solo se leen.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una nueva bodega con totales en cero.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("bodega %s: %w", in.Code, domain.ErrDuplicate)
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		Code:        in.Code,
		Name:        in.Name,
		Address:     in.Address,
		ValueIn:     decimal.Zero,
		ValueOut:    decimal.Zero,
		ValueOnHand: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByCode obtiene una bodega por código.
func (uc *WarehouseUseCase) GetByCode(code string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza nombre y dirección.
func (uc *WarehouseUseCase) Update(code string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega por código.
func (uc *WarehouseUseCase) Delete(code string) error {
	warehouse, err := uc.repo.GetByCode(code)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return fmt.Errorf("bodega %s: %w", code, domain.ErrNotFound)
	}
	return uc.repo.Delete(code)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		Code:          w.Code,
		Name:          w.Name,
		Address:       w.Address,
		ValueIn:       w.ValueIn,
		ValueOut:      w.ValueOut,
		ValueOnHand:   w.ValueOnHand,
		LastCheckedAt: w.LastCheckedAt,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
