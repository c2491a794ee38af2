package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo verificaciones de existencia de entidades de referencia.
// Los movimientos solo necesitan saber si el código existe.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

func (r *ReferenceRepo) SupplierExists(code string) (bool, error) {
	return r.exists("suppliers", "code", code)
}

func (r *ReferenceRepo) CustomerExists(code string) (bool, error) {
	return r.exists("customers", "code", code)
}

func (r *ReferenceRepo) ContractExists(code string) (bool, error) {
	return r.exists("contracts", "code", code)
}

func (r *ReferenceRepo) BillExists(code string) (bool, error) {
	return r.exists("bills", "code", code)
}

func (r *ReferenceRepo) UserExists(id string) (bool, error) {
	return r.exists("users", "id", id)
}

func (r *ReferenceRepo) exists(table, column, value string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`, table, column)
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return exists, nil
}
