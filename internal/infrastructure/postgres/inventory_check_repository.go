package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.InventoryCheckRepository = (*InventoryCheckRepo)(nil)

const checkColumns = `id, code, year, product_code, warehouse_code, record_code, actual_quantity, system_quantity, variance, date, responsible_id, created_at, updated_at`

// InventoryCheckRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryCheckRepo struct {
	q Querier
}

// NewInventoryCheckRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryCheckRepository(q Querier) *InventoryCheckRepo {
	return &InventoryCheckRepo{q: q}
}

// Create persiste un conteo físico.
func (r *InventoryCheckRepo) Create(check *entity.InventoryCheck) error {
	if check.ID == "" {
		check.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		check.ID, check.Code, check.Year,
		nullable(check.ProductCode), nullable(check.WarehouseCode), nullable(check.RecordCode),
		check.ActualQuantity, check.SystemQuantity, check.Variance,
		check.Date, nullable(check.ResponsibleID), check.CreatedAt, check.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("conteo %s: %w", check.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create inventory check: %w", err)
	}
	return nil
}

// GetByCode obtiene un conteo por código. Devuelve (nil, nil) si no existe.
func (r *InventoryCheckRepo) GetByCode(code string) (*entity.InventoryCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM inventory_checks WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// List lista conteos paginados, más recientes primero.
func (r *InventoryCheckRepo) List(limit, offset int) ([]*entity.InventoryCheck, error) {
	query := `
		SELECT ` + checkColumns + ` FROM inventory_checks
		ORDER BY date DESC, code ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory checks: %w", err)
	}
	return r.scanAll(rows)
}

// Update actualiza los campos mutables de un conteo.
func (r *InventoryCheckRepo) Update(check *entity.InventoryCheck) error {
	query := `
		UPDATE inventory_checks
		SET year = $2, product_code = $3, warehouse_code = $4, record_code = $5,
		    actual_quantity = $6, system_quantity = $7, variance = $8, date = $9,
		    responsible_id = $10, updated_at = $11
		WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query,
		check.Code, check.Year,
		nullable(check.ProductCode), nullable(check.WarehouseCode), nullable(check.RecordCode),
		check.ActualQuantity, check.SystemQuantity, check.Variance, check.Date,
		nullable(check.ResponsibleID), check.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory check: %w", err)
	}
	return nil
}

// Delete elimina un conteo por código.
func (r *InventoryCheckRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_checks WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete inventory check: %w", err)
	}
	return nil
}

// ExistsCode verifica si un código ya está en uso.
func (r *InventoryCheckRepo) ExistsCode(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM inventory_checks WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists inventory check: %w", err)
	}
	return exists, nil
}

// CountByRecord cuenta los conteos que referencian un registro de inventario.
func (r *InventoryCheckRepo) CountByRecord(recordCode string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_checks WHERE record_code = $1`, recordCode).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count checks by record: %w", err)
	}
	return n, nil
}

func (r *InventoryCheckRepo) scanOne(row pgx.Row) (*entity.InventoryCheck, error) {
	var c entity.InventoryCheck
	var product, warehouse, record, responsible *string
	err := row.Scan(
		&c.ID, &c.Code, &c.Year, &product, &warehouse, &record,
		&c.ActualQuantity, &c.SystemQuantity, &c.Variance,
		&c.Date, &responsible, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory check: %w", err)
	}
	c.ProductCode = deref(product)
	c.WarehouseCode = deref(warehouse)
	c.RecordCode = deref(record)
	c.ResponsibleID = deref(responsible)
	return &c, nil
}

func (r *InventoryCheckRepo) scanAll(rows pgx.Rows) ([]*entity.InventoryCheck, error) {
	defer rows.Close()
	var list []*entity.InventoryCheck
	for rows.Next() {
		var c entity.InventoryCheck
		var product, warehouse, record, responsible *string
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Year, &product, &warehouse, &record,
			&c.ActualQuantity, &c.SystemQuantity, &c.Variance,
			&c.Date, &responsible, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory check: %w", err)
		}
		c.ProductCode = deref(product)
		c.WarehouseCode = deref(warehouse)
		c.RecordCode = deref(record)
		c.ResponsibleID = deref(responsible)
		list = append(list, &c)
	}
	return list, rows.Err()
}
