package importer

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

type fakeCreator struct {
	created []dto.CreateStockInRequest
	failOn  string // código que provoca error
}

func (c *fakeCreator) Create(_ context.Context, in dto.CreateStockInRequest) (*dto.StockInResponse, error) {
	if in.Code == c.failOn {
		return nil, fmt.Errorf("entrada %s rechazada", in.Code)
	}
	c.created = append(c.created, in)
	return &dto.StockInResponse{Code: in.Code}, nil
}

func buildBook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, book.SetCellValue(sheet, cell, val))
		}
	}
	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImport_FilasValidas(t *testing.T) {
	creator := &fakeCreator{}
	im := NewStockInImporter(creator, logger.Nop())

	buf := buildBook(t, [][]any{
		{"Codigo", "Producto", "Cantidad", "Fecha", "Bodega"},
		{"IN-001", "P1", "100", "2024-03-15", "W1"},
		{"IN-002", "P2", "50", "2024-03-16", ""},
	})

	result, err := im.Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, creator.created, 2)
	assert.Equal(t, "IN-001", creator.created[0].Code)
	assert.Equal(t, int64(100), creator.created[0].Quantity)
	assert.Equal(t, "W1", creator.created[0].WarehouseCode)
	assert.Equal(t, 2024, creator.created[0].Date.Year())
}

func TestImport_FilaInvalidaNoDetieneElResto(t *testing.T) {
	creator := &fakeCreator{}
	im := NewStockInImporter(creator, logger.Nop())

	buf := buildBook(t, [][]any{
		{"Codigo", "Producto", "Cantidad", "Fecha"},
		{"IN-001", "P1", "no-numerico", "2024-03-15"},
		{"IN-002", "P1", "50", "2024-03-16"},
	})

	result, err := im.Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
}

func TestImport_ErrorDelCasoDeUsoSeReportaPorFila(t *testing.T) {
	creator := &fakeCreator{failOn: "IN-001"}
	im := NewStockInImporter(creator, logger.Nop())

	buf := buildBook(t, [][]any{
		{"Codigo", "Producto", "Cantidad", "Fecha"},
		{"IN-001", "P1", "10", "2024-03-15"},
		{"IN-002", "P1", "20", "2024-03-16"},
	})

	result, err := im.Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
}

func TestImport_ColumnaRequeridaAusente(t *testing.T) {
	im := NewStockInImporter(&fakeCreator{}, logger.Nop())

	buf := buildBook(t, [][]any{
		{"Codigo", "Producto", "Fecha"},
		{"IN-001", "P1", "2024-03-15"},
	})

	_, err := im.Import(context.Background(), buf)
	assert.Error(t, err)
}

func TestImport_FilasEnBlancoSeOmiten(t *testing.T) {
	creator := &fakeCreator{}
	im := NewStockInImporter(creator, logger.Nop())

	buf := buildBook(t, [][]any{
		{"Codigo", "Producto", "Cantidad", "Fecha"},
		{"IN-001", "P1", "10", "2024-03-15"},
		{"", "", "", ""},
	})

	result, err := im.Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Imported)
}

func TestImport_ArchivoInvalido(t *testing.T) {
	im := NewStockInImporter(&fakeCreator{}, logger.Nop())
	_, err := im.Import(context.Background(), bytes.NewBufferString("no es un xlsx"))
	assert.Error(t, err)
}
