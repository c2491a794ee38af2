package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `code, name, address, value_in, value_out, value_on_hand, last_checked_at, created_at, updated_at`

// WarehouseRepo implementación sobre PostgreSQL (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		w.Code, w.Name, nullable(w.Address),
		w.ValueIn, w.ValueOut, w.ValueOnHand,
		w.LastCheckedAt, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bodega %s: %w", w.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

// GetByCode obtiene una bodega por código. Devuelve (nil, nil) si no existe.
func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE code = $1`
	var w entity.Warehouse
	var address *string
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&w.Code, &w.Name, &address, &w.ValueIn, &w.ValueOut, &w.ValueOnHand,
		&w.LastCheckedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	w.Address = deref(address)
	return &w, nil
}

// List lista bodegas ordenadas por código.
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses ORDER BY code ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		var address *string
		if err := rows.Scan(
			&w.Code, &w.Name, &address, &w.ValueIn, &w.ValueOut, &w.ValueOnHand,
			&w.LastCheckedAt, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		w.Address = deref(address)
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Update actualiza nombre y dirección (los totales se ajustan vía AdjustValues).
func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	query := `UPDATE warehouses SET name = $2, address = $3, updated_at = $4 WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query, w.Code, w.Name, nullable(w.Address), w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// Delete elimina una bodega por código.
func (r *WarehouseRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

// AdjustValues suma los deltas a los tres totales en una sola sentencia, de modo
// que el ajuste sea atómico junto al movimiento que lo origina.
func (r *WarehouseRepo) AdjustValues(code string, deltaIn, deltaOut, deltaOnHand decimal.Decimal) error {
	query := `
		UPDATE warehouses
		SET value_in = value_in + $2,
		    value_out = value_out + $3,
		    value_on_hand = value_on_hand + $4,
		    updated_at = NOW()
		WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query, code, deltaIn, deltaOut, deltaOnHand)
	if err != nil {
		return fmt.Errorf("adjust warehouse values: %w", err)
	}
	return nil
}

// SetLastChecked actualiza la fecha del último conteo físico.
func (r *WarehouseRepo) SetLastChecked(code string, date time.Time) error {
	query := `UPDATE warehouses SET last_checked_at = $2, updated_at = NOW() WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query, code, date)
	if err != nil {
		return fmt.Errorf("set warehouse last checked: %w", err)
	}
	return nil
}
