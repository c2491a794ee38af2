package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

const recordColumns = `code, year, product_code, warehouse_code, balance_before, total_in, total_out, current_balance, min_threshold, created_at, updated_at`

// InventoryRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

// Create persiste un registro de inventario.
func (r *InventoryRecordRepo) Create(rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		rec.Code, rec.Year, rec.ProductCode, rec.WarehouseCode,
		rec.BalanceBefore, rec.TotalIn, rec.TotalOut, rec.CurrentBalance,
		rec.MinThreshold, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("registro %s: %w", rec.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create inventory record: %w", err)
	}
	return nil
}

// GetByCode obtiene un registro por código. Devuelve (nil, nil) si no existe.
func (r *InventoryRecordRepo) GetByCode(code string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// GetByCodeForUpdate obtiene un registro por código con bloqueo de fila.
func (r *InventoryRecordRepo) GetByCodeForUpdate(code string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE code = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// GetByKeyForUpdate busca por (producto, bodega, año) con bloqueo de fila.
func (r *InventoryRecordRepo) GetByKeyForUpdate(productCode, warehouseCode string, year int) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM inventory_records
		WHERE product_code = $1 AND warehouse_code = $2 AND year = $3
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productCode, warehouseCode, year))
}

// ListByPairForUpdate devuelve todos los registros del par (producto, bodega)
// ordenados por año descendente (desempate por código) con bloqueo de fila.
// El orden es el que usa el reparto de salidas.
func (r *InventoryRecordRepo) ListByPairForUpdate(productCode, warehouseCode string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM inventory_records
		WHERE product_code = $1 AND warehouse_code = $2
		ORDER BY year DESC, code ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productCode, warehouseCode)
	if err != nil {
		return nil, fmt.Errorf("list records for update: %w", err)
	}
	return r.scanAll(rows)
}

// ListByProduct lista registros de un producto, año descendente.
func (r *InventoryRecordRepo) ListByProduct(productCode string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM inventory_records
		WHERE product_code = $1
		ORDER BY year DESC, code ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records by product: %w", err)
	}
	return r.scanAll(rows)
}

// ListByWarehouse lista registros de una bodega.
func (r *InventoryRecordRepo) ListByWarehouse(warehouseCode string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM inventory_records
		WHERE warehouse_code = $1
		ORDER BY year DESC, code ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records by warehouse: %w", err)
	}
	return r.scanAll(rows)
}

// ListBelowThreshold lista registros con saldo por debajo de su umbral mínimo.
func (r *InventoryRecordRepo) ListBelowThreshold(limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM inventory_records
		WHERE current_balance < min_threshold
		ORDER BY code ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records below threshold: %w", err)
	}
	return r.scanAll(rows)
}

// Update actualiza todos los campos mutables del registro.
func (r *InventoryRecordRepo) Update(rec *entity.InventoryRecord) error {
	query := `
		UPDATE inventory_records
		SET year = $2, product_code = $3, warehouse_code = $4, balance_before = $5,
		    total_in = $6, total_out = $7, current_balance = $8, min_threshold = $9,
		    updated_at = $10
		WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query,
		rec.Code, rec.Year, rec.ProductCode, rec.WarehouseCode, rec.BalanceBefore,
		rec.TotalIn, rec.TotalOut, rec.CurrentBalance, rec.MinThreshold, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory record: %w", err)
	}
	return nil
}

// Delete elimina un registro por código.
func (r *InventoryRecordRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_records WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	return nil
}

// ExistsCode verifica si un código ya está en uso.
func (r *InventoryRecordRepo) ExistsCode(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM inventory_records WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists inventory record: %w", err)
	}
	return exists, nil
}

func (r *InventoryRecordRepo) scanOne(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.Code, &rec.Year, &rec.ProductCode, &rec.WarehouseCode,
		&rec.BalanceBefore, &rec.TotalIn, &rec.TotalOut, &rec.CurrentBalance,
		&rec.MinThreshold, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

func (r *InventoryRecordRepo) scanAll(rows pgx.Rows) ([]*entity.InventoryRecord, error) {
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.Code, &rec.Year, &rec.ProductCode, &rec.WarehouseCode,
			&rec.BalanceBefore, &rec.TotalIn, &rec.TotalOut, &rec.CurrentBalance,
			&rec.MinThreshold, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
