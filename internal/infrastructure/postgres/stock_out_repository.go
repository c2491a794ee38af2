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

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

const stockOutColumns = `id, code, seq, product_code, quantity, date, warehouse_code, customer_code, responsible_id, created_at, updated_at`

// StockOutRepo implementación sobre PostgreSQL (usable con pool o tx).
// Persiste también el desglose de asignaciones por registro de inventario.
type StockOutRepo struct {
	q Querier
}

// NewStockOutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOutRepository(q Querier) *StockOutRepo {
	return &StockOutRepo{q: q}
}

// Create persiste una salida. Las referencias opcionales vacías se guardan como NULL.
func (r *StockOutRepo) Create(m *entity.StockOutMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_out_movements (` + stockOutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Code, m.Seq, m.ProductCode, m.Quantity, m.Date,
		nullable(m.WarehouseCode), nullable(m.CustomerCode), nullable(m.ResponsibleID),
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("salida %s: %w", m.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create stock out: %w", err)
	}
	return nil
}

// GetByCode obtiene una salida por código. Devuelve (nil, nil) si no existe.
func (r *StockOutRepo) GetByCode(code string) (*entity.StockOutMovement, error) {
	query := `SELECT ` + stockOutColumns + ` FROM stock_out_movements WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// List lista salidas paginadas por secuencia descendente.
func (r *StockOutRepo) List(limit, offset int) ([]*entity.StockOutMovement, error) {
	query := `
		SELECT ` + stockOutColumns + ` FROM stock_out_movements
		ORDER BY seq DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock out: %w", err)
	}
	return r.scanAll(rows)
}

// Update actualiza los campos mutables de una salida.
func (r *StockOutRepo) Update(m *entity.StockOutMovement) error {
	query := `
		UPDATE stock_out_movements
		SET product_code = $2, quantity = $3, date = $4, warehouse_code = $5,
		    customer_code = $6, responsible_id = $7, updated_at = $8
		WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.Code, m.ProductCode, m.Quantity, m.Date,
		nullable(m.WarehouseCode), nullable(m.CustomerCode), nullable(m.ResponsibleID),
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock out: %w", err)
	}
	return nil
}

// Delete elimina una salida por código. Las asignaciones caen por ON DELETE CASCADE.
func (r *StockOutRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_out_movements WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete stock out: %w", err)
	}
	return nil
}

// ExistsCode verifica si un código ya está en uso.
func (r *StockOutRepo) ExistsCode(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_out_movements WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock out: %w", err)
	}
	return exists, nil
}

// NextSeq obtiene el siguiente valor de la secuencia de salidas (atómico en BD).
func (r *StockOutRepo) NextSeq() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('stock_out_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next stock out seq: %w", err)
	}
	return seq, nil
}

// CreateAllocations persiste el desglose de una salida.
func (r *StockOutRepo) CreateAllocations(allocs []entity.StockOutAllocation) error {
	query := `
		INSERT INTO stock_out_allocations (movement_code, record_code, quantity)
		VALUES ($1, $2, $3)`
	for _, a := range allocs {
		if _, err := r.q.Exec(context.Background(), query, a.MovementCode, a.RecordCode, a.Quantity); err != nil {
			return fmt.Errorf("create allocation: %w", err)
		}
	}
	return nil
}

// ListAllocations devuelve el desglose persistido de una salida.
func (r *StockOutRepo) ListAllocations(movementCode string) ([]entity.StockOutAllocation, error) {
	query := `
		SELECT movement_code, record_code, quantity
		FROM stock_out_allocations WHERE movement_code = $1
		ORDER BY record_code ASC`
	rows, err := r.q.Query(context.Background(), query, movementCode)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []entity.StockOutAllocation
	for rows.Next() {
		var a entity.StockOutAllocation
		if err := rows.Scan(&a.MovementCode, &a.RecordCode, &a.Quantity); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// DeleteAllocations elimina el desglose de una salida (antes de reasignar).
func (r *StockOutRepo) DeleteAllocations(movementCode string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_out_allocations WHERE movement_code = $1`, movementCode)
	if err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}
	return nil
}

func (r *StockOutRepo) scanOne(row pgx.Row) (*entity.StockOutMovement, error) {
	var m entity.StockOutMovement
	var warehouse, customer, responsible *string
	err := row.Scan(
		&m.ID, &m.Code, &m.Seq, &m.ProductCode, &m.Quantity, &m.Date,
		&warehouse, &customer, &responsible, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock out: %w", err)
	}
	m.WarehouseCode = deref(warehouse)
	m.CustomerCode = deref(customer)
	m.ResponsibleID = deref(responsible)
	return &m, nil
}

func (r *StockOutRepo) scanAll(rows pgx.Rows) ([]*entity.StockOutMovement, error) {
	defer rows.Close()
	var list []*entity.StockOutMovement
	for rows.Next() {
		var m entity.StockOutMovement
		var warehouse, customer, responsible *string
		if err := rows.Scan(
			&m.ID, &m.Code, &m.Seq, &m.ProductCode, &m.Quantity, &m.Date,
			&warehouse, &customer, &responsible, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock out: %w", err)
		}
		m.WarehouseCode = deref(warehouse)
		m.CustomerCode = deref(customer)
		m.ResponsibleID = deref(responsible)
		list = append(list, &m)
	}
	return list, rows.Err()
}
