package inventory

import (
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Allocation indica cuánto se descuenta de un registro de inventario.
type Allocation struct {
	RecordCode string
	Quantity   int64
}

// TotalAvailable suma el saldo actual de todos los registros.
func TotalAvailable(records []*entity.InventoryRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.CurrentBalance
	}
	return total
}

// Allocate reparte una cantidad solicitada entre los registros de inventario de
// un mismo (producto, bodega), agotando primero el año más reciente.
// De cada registro se toma min(restante, saldo actual); se detiene al cubrir la
// cantidad o agotar los registros. Devuelve las asignaciones y el restante sin
// cubrir (0 si alcanzó el stock). Registros con saldo <= 0 no reciben asignación.
// No modifica los registros: el caller aplica los deltas.
func Allocate(records []*entity.InventoryRecord, quantity int64) ([]Allocation, int64) {
	sorted := make([]*entity.InventoryRecord, len(records))
	copy(sorted, records)
	// Año descendente; a igual año, por código para que el reparto sea determinista.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].Code < sorted[j].Code
	})

	remaining := quantity
	var allocs []Allocation
	for _, rec := range sorted {
		if remaining <= 0 {
			break
		}
		if rec.CurrentBalance <= 0 {
			continue
		}
		take := remaining
		if rec.CurrentBalance < take {
			take = rec.CurrentBalance
		}
		allocs = append(allocs, Allocation{RecordCode: rec.Code, Quantity: take})
		remaining -= take
	}
	return allocs, remaining
}
