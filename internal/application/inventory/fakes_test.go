package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Fakes en memoria para los tests de casos de uso. Guardan copias para imitar
// el comportamiento de una BD: lo leído no se comparte con lo almacenado.

type fakeTxRunner struct {
	repos TxRepos
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(TxRepos) error) error {
	return fn(f.repos)
}

// ---- registros de inventario ----

type memRecords struct {
	rows map[string]entity.InventoryRecord
}

func newMemRecords() *memRecords {
	return &memRecords{rows: make(map[string]entity.InventoryRecord)}
}

func (m *memRecords) Create(rec *entity.InventoryRecord) error {
	m.rows[rec.Code] = *rec
	return nil
}

func (m *memRecords) GetByCode(code string) (*entity.InventoryRecord, error) {
	if rec, ok := m.rows[code]; ok {
		cp := rec
		return &cp, nil
	}
	return nil, nil
}

func (m *memRecords) GetByCodeForUpdate(code string) (*entity.InventoryRecord, error) {
	return m.GetByCode(code)
}

func (m *memRecords) GetByKeyForUpdate(productCode, warehouseCode string, year int) (*entity.InventoryRecord, error) {
	for _, rec := range m.rows {
		if rec.ProductCode == productCode && rec.WarehouseCode == warehouseCode && rec.Year == year {
			cp := rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRecords) ListByPairForUpdate(productCode, warehouseCode string) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for _, rec := range m.rows {
		if rec.ProductCode == productCode && rec.WarehouseCode == warehouseCode {
			cp := rec
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Year != list[j].Year {
			return list[i].Year > list[j].Year
		}
		return list[i].Code < list[j].Code
	})
	return list, nil
}

func (m *memRecords) ListByProduct(productCode string, limit, offset int) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for _, rec := range m.rows {
		if rec.ProductCode == productCode {
			cp := rec
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (m *memRecords) ListByWarehouse(warehouseCode string, limit, offset int) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for _, rec := range m.rows {
		if rec.WarehouseCode == warehouseCode {
			cp := rec
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (m *memRecords) ListBelowThreshold(limit, offset int) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for _, rec := range m.rows {
		if rec.CurrentBalance < rec.MinThreshold {
			cp := rec
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (m *memRecords) Update(rec *entity.InventoryRecord) error {
	m.rows[rec.Code] = *rec
	return nil
}

func (m *memRecords) Delete(code string) error {
	delete(m.rows, code)
	return nil
}

func (m *memRecords) ExistsCode(code string) (bool, error) {
	_, ok := m.rows[code]
	return ok, nil
}

// ---- entradas ----

type memStockIns struct {
	rows map[string]entity.StockInMovement
	seq  int64
}

func newMemStockIns() *memStockIns {
	return &memStockIns{rows: make(map[string]entity.StockInMovement)}
}

func (m *memStockIns) Create(mov *entity.StockInMovement) error {
	m.rows[mov.Code] = *mov
	return nil
}

func (m *memStockIns) GetByCode(code string) (*entity.StockInMovement, error) {
	if mov, ok := m.rows[code]; ok {
		cp := mov
		return &cp, nil
	}
	return nil, nil
}

func (m *memStockIns) List(limit, offset int) ([]*entity.StockInMovement, error) {
	var list []*entity.StockInMovement
	for _, mov := range m.rows {
		cp := mov
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list, nil
}

func (m *memStockIns) Update(mov *entity.StockInMovement) error {
	m.rows[mov.Code] = *mov
	return nil
}

func (m *memStockIns) Delete(code string) error {
	delete(m.rows, code)
	return nil
}

func (m *memStockIns) ExistsCode(code string) (bool, error) {
	_, ok := m.rows[code]
	return ok, nil
}

func (m *memStockIns) NextSeq() (int64, error) {
	m.seq++
	return m.seq, nil
}

// ---- salidas ----

type memStockOuts struct {
	rows   map[string]entity.StockOutMovement
	allocs []entity.StockOutAllocation
	seq    int64
}

func newMemStockOuts() *memStockOuts {
	return &memStockOuts{rows: make(map[string]entity.StockOutMovement)}
}

func (m *memStockOuts) Create(mov *entity.StockOutMovement) error {
	m.rows[mov.Code] = *mov
	return nil
}

func (m *memStockOuts) GetByCode(code string) (*entity.StockOutMovement, error) {
	if mov, ok := m.rows[code]; ok {
		cp := mov
		return &cp, nil
	}
	return nil, nil
}

func (m *memStockOuts) List(limit, offset int) ([]*entity.StockOutMovement, error) {
	var list []*entity.StockOutMovement
	for _, mov := range m.rows {
		cp := mov
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list, nil
}

func (m *memStockOuts) Update(mov *entity.StockOutMovement) error {
	m.rows[mov.Code] = *mov
	return nil
}

func (m *memStockOuts) Delete(code string) error {
	delete(m.rows, code)
	return nil
}

func (m *memStockOuts) ExistsCode(code string) (bool, error) {
	_, ok := m.rows[code]
	return ok, nil
}

func (m *memStockOuts) NextSeq() (int64, error) {
	m.seq++
	return m.seq, nil
}

func (m *memStockOuts) CreateAllocations(allocs []entity.StockOutAllocation) error {
	m.allocs = append(m.allocs, allocs...)
	return nil
}

func (m *memStockOuts) ListAllocations(movementCode string) ([]entity.StockOutAllocation, error) {
	var list []entity.StockOutAllocation
	for _, a := range m.allocs {
		if a.MovementCode == movementCode {
			list = append(list, a)
		}
	}
	return list, nil
}

func (m *memStockOuts) DeleteAllocations(movementCode string) error {
	kept := m.allocs[:0]
	for _, a := range m.allocs {
		if a.MovementCode != movementCode {
			kept = append(kept, a)
		}
	}
	m.allocs = kept
	return nil
}

// ---- conteos ----

type memChecks struct {
	rows map[string]entity.InventoryCheck
}

func newMemChecks() *memChecks {
	return &memChecks{rows: make(map[string]entity.InventoryCheck)}
}

func (m *memChecks) Create(check *entity.InventoryCheck) error {
	m.rows[check.Code] = *check
	return nil
}

func (m *memChecks) GetByCode(code string) (*entity.InventoryCheck, error) {
	if check, ok := m.rows[code]; ok {
		cp := check
		return &cp, nil
	}
	return nil, nil
}

func (m *memChecks) List(limit, offset int) ([]*entity.InventoryCheck, error) {
	var list []*entity.InventoryCheck
	for _, check := range m.rows {
		cp := check
		list = append(list, &cp)
	}
	return list, nil
}

func (m *memChecks) Update(check *entity.InventoryCheck) error {
	m.rows[check.Code] = *check
	return nil
}

func (m *memChecks) Delete(code string) error {
	delete(m.rows, code)
	return nil
}

func (m *memChecks) ExistsCode(code string) (bool, error) {
	_, ok := m.rows[code]
	return ok, nil
}

func (m *memChecks) CountByRecord(recordCode string) (int64, error) {
	var n int64
	for _, check := range m.rows {
		if check.RecordCode == recordCode {
			n++
		}
	}
	return n, nil
}

// ---- bodegas ----

type memWarehouses struct {
	rows map[string]entity.Warehouse
}

func newMemWarehouses() *memWarehouses {
	return &memWarehouses{rows: make(map[string]entity.Warehouse)}
}

func (m *memWarehouses) Create(w *entity.Warehouse) error {
	m.rows[w.Code] = *w
	return nil
}

func (m *memWarehouses) GetByCode(code string) (*entity.Warehouse, error) {
	if w, ok := m.rows[code]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (m *memWarehouses) List(limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range m.rows {
		cp := w
		list = append(list, &cp)
	}
	return list, nil
}

func (m *memWarehouses) Update(w *entity.Warehouse) error {
	m.rows[w.Code] = *w
	return nil
}

func (m *memWarehouses) Delete(code string) error {
	delete(m.rows, code)
	return nil
}

func (m *memWarehouses) AdjustValues(code string, deltaIn, deltaOut, deltaOnHand decimal.Decimal) error {
	w := m.rows[code]
	w.ValueIn = w.ValueIn.Add(deltaIn)
	w.ValueOut = w.ValueOut.Add(deltaOut)
	w.ValueOnHand = w.ValueOnHand.Add(deltaOnHand)
	m.rows[code] = w
	return nil
}

func (m *memWarehouses) SetLastChecked(code string, date time.Time) error {
	w := m.rows[code]
	w.LastCheckedAt = &date
	m.rows[code] = w
	return nil
}

// ---- productos y referencias ----

type memProducts struct {
	rows map[string]entity.Product
}

func newMemProducts() *memProducts {
	return &memProducts{rows: make(map[string]entity.Product)}
}

func (m *memProducts) GetByCode(code string) (*entity.Product, error) {
	if p, ok := m.rows[code]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

type memRefs struct {
	suppliers map[string]bool
	customers map[string]bool
	contracts map[string]bool
	bills     map[string]bool
	users     map[string]bool
}

func newMemRefs() *memRefs {
	return &memRefs{
		suppliers: make(map[string]bool),
		customers: make(map[string]bool),
		contracts: make(map[string]bool),
		bills:     make(map[string]bool),
		users:     make(map[string]bool),
	}
}

func (m *memRefs) SupplierExists(code string) (bool, error) { return m.suppliers[code], nil }
func (m *memRefs) CustomerExists(code string) (bool, error) { return m.customers[code], nil }
func (m *memRefs) ContractExists(code string) (bool, error) { return m.contracts[code], nil }
func (m *memRefs) BillExists(code string) (bool, error)     { return m.bills[code], nil }
func (m *memRefs) UserExists(id string) (bool, error)       { return m.users[id], nil }

// ---- fixture ----

type fixture struct {
	records    *memRecords
	stockIns   *memStockIns
	stockOuts  *memStockOuts
	checks     *memChecks
	warehouses *memWarehouses
	products   *memProducts
	refs       *memRefs
	txRunner   *fakeTxRunner
}

func newFixture() *fixture {
	f := &fixture{
		records:    newMemRecords(),
		stockIns:   newMemStockIns(),
		stockOuts:  newMemStockOuts(),
		checks:     newMemChecks(),
		warehouses: newMemWarehouses(),
		products:   newMemProducts(),
		refs:       newMemRefs(),
	}
	f.txRunner = &fakeTxRunner{repos: TxRepos{
		Records:    f.records,
		StockIns:   f.stockIns,
		StockOuts:  f.stockOuts,
		Checks:     f.checks,
		Warehouses: f.warehouses,
		Products:   f.products,
	}}
	return f
}

func (f *fixture) addProduct(code string, price int64) {
	f.products.rows[code] = entity.Product{Code: code, Name: code, Price: decimal.NewFromInt(price)}
}

func (f *fixture) addWarehouse(code string) {
	f.warehouses.rows[code] = entity.Warehouse{
		Code:        code,
		Name:        code,
		ValueIn:     decimal.Zero,
		ValueOut:    decimal.Zero,
		ValueOnHand: decimal.Zero,
	}
}

func checkReferencing(code, recordCode string) entity.InventoryCheck {
	return entity.InventoryCheck{Code: code, RecordCode: recordCode}
}

func (f *fixture) addRecord(code string, year int, product, warehouse string, balance int64) {
	f.records.rows[code] = entity.InventoryRecord{
		Code:           code,
		Year:           year,
		ProductCode:    product,
		WarehouseCode:  warehouse,
		TotalIn:        balance,
		CurrentBalance: balance,
	}
}
