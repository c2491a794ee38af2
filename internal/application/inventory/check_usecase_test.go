package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
)

func (f *fixture) checkUC() *InventoryCheckUseCase {
	return NewInventoryCheckUseCase(f.txRunner, f.products, f.warehouses, f.refs)
}

func TestCheckCreate_CalculaDiferencial(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R1", 2024, "P1", "W1", 20)
	uc := f.checkUC()

	out, err := uc.Create(context.Background(), dto.CreateInventoryCheckRequest{
		Code:           "CHK-001",
		Year:           2024,
		ActualQuantity: 15,
		Date:           dateIn(2024),
		WarehouseCode:  "W1",
		RecordCode:     "R1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), out.SystemQuantity)
	assert.Equal(t, int64(-5), out.Variance)

	// Un conteo nunca corrige el saldo del registro.
	rec, _ := f.records.GetByCode("R1")
	assert.Equal(t, int64(20), rec.CurrentBalance)

	w := f.warehouses.rows["W1"]
	require.NotNil(t, w.LastCheckedAt)
	assert.Equal(t, dateIn(2024), *w.LastCheckedAt)
}

func TestCheckCreate_SinRegistroSistemaEsCero(t *testing.T) {
	f := newFixture()
	uc := f.checkUC()

	out, err := uc.Create(context.Background(), dto.CreateInventoryCheckRequest{
		Code:           "CHK-001",
		Year:           2024,
		ActualQuantity: 7,
		Date:           dateIn(2024),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.SystemQuantity)
	assert.Equal(t, int64(7), out.Variance)
}

func TestCheckCreate_RegistroInexistente(t *testing.T) {
	f := newFixture()
	uc := f.checkUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryCheckRequest{
		Code:           "CHK-001",
		Year:           2024,
		ActualQuantity: 7,
		Date:           dateIn(2024),
		RecordCode:     "NOPE",
	})
	assert.ErrorIs(t, err, domain.ErrRefNotFound)
}

func TestCheckCreate_CodigoDuplicado(t *testing.T) {
	f := newFixture()
	uc := f.checkUC()

	req := dto.CreateInventoryCheckRequest{Code: "CHK-001", Year: 2024, ActualQuantity: 1, Date: dateIn(2024)}
	_, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCheckUpdate_RecalculaDiferencial(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R1", 2024, "P1", "W1", 20)
	uc := f.checkUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryCheckRequest{
		Code:           "CHK-001",
		Year:           2024,
		ActualQuantity: 15,
		Date:           dateIn(2024),
		WarehouseCode:  "W1",
		RecordCode:     "R1",
	})
	require.NoError(t, err)

	actual := int64(25)
	out, err := uc.Update(context.Background(), "CHK-001", dto.UpdateInventoryCheckRequest{
		ActualQuantity: &actual,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), out.SystemQuantity)
	assert.Equal(t, int64(5), out.Variance)
}

func TestCheckUpdate_SinCamposDeCantidadNoRecalcula(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R1", 2024, "P1", "W1", 20)
	uc := f.checkUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryCheckRequest{
		Code:           "CHK-001",
		Year:           2024,
		ActualQuantity: 15,
		Date:           dateIn(2024),
		RecordCode:     "R1",
	})
	require.NoError(t, err)

	// El saldo del registro cambia después del conteo.
	rec, _ := f.records.GetByCode("R1")
	rec.CurrentBalance = 99
	require.NoError(t, f.records.Update(rec))

	year := 2025
	out, err := uc.Update(context.Background(), "CHK-001", dto.UpdateInventoryCheckRequest{Year: &year})
	require.NoError(t, err)

	// El diferencial sigue siendo la foto del momento del conteo.
	assert.Equal(t, int64(20), out.SystemQuantity)
	assert.Equal(t, int64(-5), out.Variance)
}

func TestCheckDelete_SinEfectosSecundarios(t *testing.T) {
	f := newFixture()
	f.addProduct("P1", 10)
	f.addWarehouse("W1")
	f.addRecord("R1", 2024, "P1", "W1", 20)
	uc := f.checkUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryCheckRequest{
		Code:           "CHK-001",
		Year:           2024,
		ActualQuantity: 15,
		Date:           dateIn(2024),
		RecordCode:     "R1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "CHK-001"))

	rec, _ := f.records.GetByCode("R1")
	assert.Equal(t, int64(20), rec.CurrentBalance)
	assert.Empty(t, f.checks.rows)
}

func TestCheckCreate_CantidadNegativa(t *testing.T) {
	f := newFixture()
	uc := f.checkUC()

	_, err := uc.Create(context.Background(), dto.CreateInventoryCheckRequest{
		Code: "CHK-001", Year: 2024, ActualQuantity: -1, Date: dateIn(2024),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
