package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
)

func (f *fixture) recordUC() *RecordUseCase {
	return NewRecordUseCase(f.txRunner, f.products, f.warehouses, f.refs)
}

func TestRecordCreate_DerivaSaldoActual(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	uc := f.recordUC()

	out, err := uc.Create(context.Background(), dto.CreateInventoryRecordRequest{
		Code:          "R1",
		Year:          2024,
		ProductCode:   "P1",
		WarehouseCode: "W1",
		BalanceBefore: 10,
		TotalIn:       5,
		TotalOut:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.CurrentBalance)

	w := f.warehouses.rows["W1"]
	assertDec(t, 120, w.ValueOnHand, "valor en existencia")
}

func TestRecordUpdate_PatchVacioNoCambiaNada(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	uc := f.recordUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryRecordRequest{
		Code:          "R1",
		Year:          2024,
		ProductCode:   "P1",
		WarehouseCode: "W1",
		BalanceBefore: 10,
		TotalIn:       5,
		TotalOut:      3,
	})
	require.NoError(t, err)

	before, err := uc.GetByCode(context.Background(), "R1")
	require.NoError(t, err)
	require.NotNil(t, before)

	_, err = uc.Update(context.Background(), "R1", dto.UpdateInventoryRecordRequest{})
	require.NoError(t, err)

	after, err := uc.GetByCode(context.Background(), "R1")
	require.NoError(t, err)
	require.NotNil(t, after)

	// Un patch sin campos conserva el registro tal cual.
	assert.Equal(t, before.Code, after.Code)
	assert.Equal(t, before.Year, after.Year)
	assert.Equal(t, before.ProductCode, after.ProductCode)
	assert.Equal(t, before.WarehouseCode, after.WarehouseCode)
	assert.Equal(t, before.BalanceBefore, after.BalanceBefore)
	assert.Equal(t, before.TotalIn, after.TotalIn)
	assert.Equal(t, before.TotalOut, after.TotalOut)
	assert.Equal(t, before.CurrentBalance, after.CurrentBalance)
	assert.Equal(t, before.MinThreshold, after.MinThreshold)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	// Y no mueve el valor en existencia de la bodega.
	w := f.warehouses.rows["W1"]
	assertDec(t, 120, w.ValueOnHand, "valor en existencia")
}

func TestRecordCreate_ColisionDeCodigoReintentaConSufijo(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R1", 2023, "P1", "W1", 1)
	uc := f.recordUC()

	out, err := uc.Create(context.Background(), dto.CreateInventoryRecordRequest{
		Code:          "R1",
		Year:          2024,
		ProductCode:   "P1",
		WarehouseCode: "W1",
	})
	require.NoError(t, err)
	assert.Equal(t, "R1_1", out.Code)

	rec, _ := f.records.GetByCode("R1_1")
	require.NotNil(t, rec)
	assert.Equal(t, 2024, rec.Year)
}

func TestRecordCreate_ProductoInexistente(t *testing.T) {
	f := newFixture()
	f.addWarehouse("W1")
	uc := f.recordUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryRecordRequest{
		Code: "R1", Year: 2024, ProductCode: "NOPE", WarehouseCode: "W1",
	})
	assert.ErrorIs(t, err, domain.ErrRefNotFound)
}

func TestRecordUpdate_AjustaValorPorDelta(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	uc := f.recordUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryRecordRequest{
		Code: "R1", Year: 2024, ProductCode: "P1", WarehouseCode: "W1", TotalIn: 10,
	})
	require.NoError(t, err)

	totalIn := int64(25)
	out, err := uc.Update(context.Background(), "R1", dto.UpdateInventoryRecordRequest{TotalIn: &totalIn})
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.CurrentBalance)

	w := f.warehouses.rows["W1"]
	assertDec(t, 250, w.ValueOnHand, "valor en existencia")
}

func TestRecordUpdate_MoverDeBodegaTrasladaElValor(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addWarehouse("W2")
	uc := f.recordUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryRecordRequest{
		Code: "R1", Year: 2024, ProductCode: "P1", WarehouseCode: "W1", TotalIn: 10,
	})
	require.NoError(t, err)

	dest := "W2"
	_, err = uc.Update(context.Background(), "R1", dto.UpdateInventoryRecordRequest{WarehouseCode: &dest})
	require.NoError(t, err)

	w1 := f.warehouses.rows["W1"]
	assertDec(t, 0, w1.ValueOnHand, "valor en existencia origen")
	w2 := f.warehouses.rows["W2"]
	assertDec(t, 100, w2.ValueOnHand, "valor en existencia destino")
}

func TestRecordDelete_BloqueadoPorConteos(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R1", 2024, "P1", "W1", 20)
	f.checks.rows["CHK-001"] = checkReferencing("CHK-001", "R1")
	uc := f.recordUC()

	err := uc.Delete(context.Background(), "R1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	rec, _ := f.records.GetByCode("R1")
	assert.NotNil(t, rec)
}

func TestRecordDelete_DescuentaValorDeBodega(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	uc := f.recordUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryRecordRequest{
		Code: "R1", Year: 2024, ProductCode: "P1", WarehouseCode: "W1", TotalIn: 10,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "R1"))

	w := f.warehouses.rows["W1"]
	assertDec(t, 0, w.ValueOnHand, "valor en existencia")
	assert.Empty(t, f.records.rows)
}

func TestRecordListLowStock(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R1", 2024, "P1", "W1", 20)
	f.addRecord("R2", 2024, "P2", "W1", 2)
	low := f.records.rows["R2"]
	low.MinThreshold = 5
	f.records.rows["R2"] = low
	uc := f.recordUC()

	out, err := uc.ListLowStock(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "R2", out.Items[0].Code)
}
