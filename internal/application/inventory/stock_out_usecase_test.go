package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

func (f *fixture) stockOutUC(strict bool) *StockOutUseCase {
	return NewStockOutUseCase(f.txRunner, f.products, f.warehouses, f.refs, strict, logger.Nop())
}

func TestStockOutCreate_AnioMasRecientePrimero(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R-2022", 2022, "P1", "W1", 5)
	f.addRecord("R-2024", 2024, "P1", "W1", 20)
	uc := f.stockOutUC(false)

	out, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 10, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)

	// Todo sale del año 2024; 2022 queda intacto.
	require.Len(t, out.Allocations, 1)
	assert.Equal(t, "R-2024", out.Allocations[0].RecordCode)
	assert.Equal(t, int64(10), out.Allocations[0].Quantity)

	rec2024, _ := f.records.GetByCode("R-2024")
	assert.Equal(t, int64(10), rec2024.CurrentBalance)
	assert.Equal(t, int64(10), rec2024.TotalOut)
	rec2022, _ := f.records.GetByCode("R-2022")
	assert.Equal(t, int64(5), rec2022.CurrentBalance)

	w := f.warehouses.rows["W1"]
	assertDec(t, 100, w.ValueOut, "valor de salidas")
	assertDec(t, -100, w.ValueOnHand, "valor en existencia")
}

func TestStockOutCreate_RepartoEntreVariosAnios(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R-2022", 2022, "P1", "W1", 5)
	f.addRecord("R-2024", 2024, "P1", "W1", 8)
	uc := f.stockOutUC(false)

	out, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 10, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)

	require.Len(t, out.Allocations, 2)
	assert.Equal(t, "R-2024", out.Allocations[0].RecordCode)
	assert.Equal(t, int64(8), out.Allocations[0].Quantity)
	assert.Equal(t, "R-2022", out.Allocations[1].RecordCode)
	assert.Equal(t, int64(2), out.Allocations[1].Quantity)

	rec2024, _ := f.records.GetByCode("R-2024")
	assert.Equal(t, int64(0), rec2024.CurrentBalance)
	rec2022, _ := f.records.GetByCode("R-2022")
	assert.Equal(t, int64(3), rec2022.CurrentBalance)
}

func TestStockOutCreate_StockInsuficienteNoEsFatal(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R-2022", 2022, "P1", "W1", 5)
	f.addRecord("R-2024", 2024, "P1", "W1", 20)
	uc := f.stockOutUC(false)

	out, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 30, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)

	// El movimiento conserva la cantidad completa aunque solo se cubrieron 25.
	assert.Equal(t, int64(30), out.Quantity)
	rec2024, _ := f.records.GetByCode("R-2024")
	assert.Equal(t, int64(0), rec2024.CurrentBalance)
	rec2022, _ := f.records.GetByCode("R-2022")
	assert.Equal(t, int64(0), rec2022.CurrentBalance)

	// Salida valorada por lo solicitado, existencia solo por lo descontado.
	w := f.warehouses.rows["W1"]
	assertDec(t, 300, w.ValueOut, "valor de salidas")
	assertDec(t, -250, w.ValueOnHand, "valor en existencia")
}

func TestStockOutCreate_ModoEstrictoRechaza(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R-2024", 2024, "P1", "W1", 20)
	uc := f.stockOutUC(true)

	_, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 30, Date: dateIn(2024), WarehouseCode: "W1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se descontó.
	rec, _ := f.records.GetByCode("R-2024")
	assert.Equal(t, int64(20), rec.CurrentBalance)
}

func TestStockOutCreate_SinRegistrosDelPar(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	uc := f.stockOutUC(false)

	_, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 5, Date: dateIn(2024), WarehouseCode: "W1",
	})
	assert.ErrorIs(t, err, domain.ErrRefNotFound)
}

func TestStockOutCreate_CodigoDuplicado(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	uc := f.stockOutUC(false)

	req := dto.CreateStockOutRequest{Code: "OUT-001", ProductCode: "P1", Quantity: 5, Date: dateIn(2024)}
	_, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStockOutDelete_RestauraExactamenteLoAsignado(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R-2022", 2022, "P1", "W1", 5)
	f.addRecord("R-2024", 2024, "P1", "W1", 8)
	uc := f.stockOutUC(false)

	_, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 10, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "OUT-001"))

	// Cada registro vuelve a su saldo original según el desglose persistido.
	rec2024, _ := f.records.GetByCode("R-2024")
	assert.Equal(t, int64(8), rec2024.CurrentBalance)
	assert.Equal(t, int64(0), rec2024.TotalOut)
	rec2022, _ := f.records.GetByCode("R-2022")
	assert.Equal(t, int64(5), rec2022.CurrentBalance)
	assert.Equal(t, int64(0), rec2022.TotalOut)

	w := f.warehouses.rows["W1"]
	assertDec(t, 0, w.ValueOut, "valor de salidas")
	assertDec(t, 0, w.ValueOnHand, "valor en existencia")

	assert.Empty(t, f.stockOuts.allocs)
	assert.Empty(t, f.stockOuts.rows)
}

func TestStockOutUpdate_ReasignaConLaNuevaCantidad(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R-2024", 2024, "P1", "W1", 20)
	uc := f.stockOutUC(false)

	_, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 10, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)

	qty := int64(4)
	out, err := uc.Update(context.Background(), "OUT-001", dto.UpdateStockOutRequest{Quantity: &qty})
	require.NoError(t, err)
	require.Len(t, out.Allocations, 1)
	assert.Equal(t, int64(4), out.Allocations[0].Quantity)

	rec, _ := f.records.GetByCode("R-2024")
	assert.Equal(t, int64(16), rec.CurrentBalance)
	assert.Equal(t, int64(4), rec.TotalOut)

	w := f.warehouses.rows["W1"]
	assertDec(t, 40, w.ValueOut, "valor de salidas")
	assertDec(t, -40, w.ValueOnHand, "valor en existencia")
}

func TestStockOutGetByCode_IncluyeDesglose(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R-2024", 2024, "P1", "W1", 20)
	uc := f.stockOutUC(false)

	_, err := uc.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 7, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)

	out, err := uc.GetByCode(context.Background(), "OUT-001")
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Allocations, 1)
	assert.Equal(t, "R-2024", out.Allocations[0].RecordCode)
	assert.Equal(t, int64(7), out.Allocations[0].Quantity)
}

// La identidad saldo = saldo inicial + entradas - salidas se conserva tras una
// secuencia mixta de operaciones.
func TestFlujoMixto_IdentidadDeSaldo(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	inUC := f.stockInUC()
	outUC := f.stockOutUC(false)

	_, err := inUC.Create(context.Background(), dto.CreateStockInRequest{
		Code: "IN-001", ProductCode: "P1", Quantity: 100, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)
	_, err = outUC.Create(context.Background(), dto.CreateStockOutRequest{
		Code: "OUT-001", ProductCode: "P1", Quantity: 30, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)
	_, err = inUC.Create(context.Background(), dto.CreateStockInRequest{
		Code: "IN-002", ProductCode: "P1", Quantity: 20, Date: dateIn(2024), WarehouseCode: "W1",
	})
	require.NoError(t, err)

	rec, _ := f.records.GetByCode("INV-P1-W1-2024")
	require.NotNil(t, rec)
	assert.Equal(t, int64(120), rec.TotalIn)
	assert.Equal(t, int64(30), rec.TotalOut)
	assert.Equal(t, rec.BalanceBefore+rec.TotalIn-rec.TotalOut, rec.CurrentBalance)
	assert.True(t, rec.Reconciled())
}
