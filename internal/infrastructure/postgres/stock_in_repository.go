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

var _ repository.StockInRepository = (*StockInRepo)(nil)

const stockInColumns = `id, code, seq, product_code, quantity, date, warehouse_code, supplier_code, bill_code, contract_code, created_at, updated_at`

// StockInRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create persiste una entrada. Las referencias opcionales vacías se guardan como NULL.
func (r *StockInRepo) Create(m *entity.StockInMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_in_movements (` + stockInColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Code, m.Seq, m.ProductCode, m.Quantity, m.Date,
		nullable(m.WarehouseCode), nullable(m.SupplierCode),
		nullable(m.BillCode), nullable(m.ContractCode),
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("entrada %s: %w", m.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create stock in: %w", err)
	}
	return nil
}

// GetByCode obtiene una entrada por código. Devuelve (nil, nil) si no existe.
func (r *StockInRepo) GetByCode(code string) (*entity.StockInMovement, error) {
	query := `SELECT ` + stockInColumns + ` FROM stock_in_movements WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// List lista entradas paginadas por secuencia descendente.
func (r *StockInRepo) List(limit, offset int) ([]*entity.StockInMovement, error) {
	query := `
		SELECT ` + stockInColumns + ` FROM stock_in_movements
		ORDER BY seq DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock in: %w", err)
	}
	return r.scanAll(rows)
}

// Update actualiza los campos mutables de una entrada.
func (r *StockInRepo) Update(m *entity.StockInMovement) error {
	query := `
		UPDATE stock_in_movements
		SET product_code = $2, quantity = $3, date = $4, warehouse_code = $5,
		    supplier_code = $6, bill_code = $7, contract_code = $8, updated_at = $9
		WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.Code, m.ProductCode, m.Quantity, m.Date,
		nullable(m.WarehouseCode), nullable(m.SupplierCode),
		nullable(m.BillCode), nullable(m.ContractCode), m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock in: %w", err)
	}
	return nil
}

// Delete elimina una entrada por código.
func (r *StockInRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_in_movements WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete stock in: %w", err)
	}
	return nil
}

// ExistsCode verifica si un código ya está en uso.
func (r *StockInRepo) ExistsCode(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_in_movements WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock in: %w", err)
	}
	return exists, nil
}

// NextSeq obtiene el siguiente valor de la secuencia de entradas (atómico en BD).
func (r *StockInRepo) NextSeq() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('stock_in_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next stock in seq: %w", err)
	}
	return seq, nil
}

func (r *StockInRepo) scanOne(row pgx.Row) (*entity.StockInMovement, error) {
	var m entity.StockInMovement
	var warehouse, supplier, bill, contract *string
	err := row.Scan(
		&m.ID, &m.Code, &m.Seq, &m.ProductCode, &m.Quantity, &m.Date,
		&warehouse, &supplier, &bill, &contract, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock in: %w", err)
	}
	m.WarehouseCode = deref(warehouse)
	m.SupplierCode = deref(supplier)
	m.BillCode = deref(bill)
	m.ContractCode = deref(contract)
	return &m, nil
}

func (r *StockInRepo) scanAll(rows pgx.Rows) ([]*entity.StockInMovement, error) {
	defer rows.Close()
	var list []*entity.StockInMovement
	for rows.Next() {
		var m entity.StockInMovement
		var warehouse, supplier, bill, contract *string
		if err := rows.Scan(
			&m.ID, &m.Code, &m.Seq, &m.ProductCode, &m.Quantity, &m.Date,
			&warehouse, &supplier, &bill, &contract, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock in: %w", err)
		}
		m.WarehouseCode = deref(warehouse)
		m.SupplierCode = deref(supplier)
		m.BillCode = deref(bill)
		m.ContractCode = deref(contract)
		list = append(list, &m)
	}
	return list, rows.Err()
}
