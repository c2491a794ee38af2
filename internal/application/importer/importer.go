package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// Formatos de fecha aceptados en la columna Fecha.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01-02-06", // serial de Excel formateado por defecto
}

// StockInCreator registra una entrada. Lo implementa el caso de uso de entradas.
type StockInCreator interface {
	Create(ctx context.Context, in dto.CreateStockInRequest) (*dto.StockInResponse, error)
}

// RowError error de una fila concreta del archivo (1-based, incluye encabezado).
type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

// Result resumen de una importación.
type Result struct {
	Total    int        `json:"total"`
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors,omitempty"`
}

// StockInImporter carga entradas de mercancía desde un libro XLSX. Cada fila se
// procesa de forma independiente: una fila inválida no detiene el resto.
type StockInImporter struct {
	schema  Schema
	creator StockInCreator
	log     *logger.Logger
}

// NewStockInImporter construye el importador con el esquema por defecto.
func NewStockInImporter(creator StockInCreator, log *logger.Logger) *StockInImporter {
	return &StockInImporter{schema: StockInSchema(), creator: creator, log: log}
}

// Import lee el libro y registra una entrada por cada fila de datos válida.
func (im *StockInImporter) Import(ctx context.Context, r io.Reader) (*Result, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("archivo XLSX inválido: %w", domain.ErrInvalidInput)
	}
	defer book.Close()

	sheet := im.schema.Sheet
	if sheet == "" {
		sheet = book.GetSheetName(0)
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("hoja %s: %w", sheet, domain.ErrInvalidInput)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("hoja %s vacía: %w", sheet, domain.ErrInvalidInput)
	}

	cols, err := im.mapHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		result.Total++
		req, err := im.buildRequest(row, cols)
		if err == nil {
			_, err = im.creator.Create(ctx, req)
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Err: err.Error()})
			im.log.Warn().Int("row", rowNum).Err(err).Msg("fila de importación descartada")
			continue
		}
		result.Imported++
	}
	return result, nil
}

// mapHeaders resuelve la posición de cada campo del esquema en la fila de
// encabezados. Los campos requeridos deben estar presentes.
func (im *StockInImporter) mapHeaders(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalize(h)] = i
	}
	cols := make(map[string]int, len(im.schema.Fields))
	for _, field := range im.schema.Fields {
		pos, ok := index[normalize(field.Column)]
		if !ok {
			if field.Required {
				return nil, fmt.Errorf("columna %s no encontrada: %w", field.Column, domain.ErrInvalidInput)
			}
			continue
		}
		cols[field.Target] = pos
	}
	return cols, nil
}

func (im *StockInImporter) buildRequest(row []string, cols map[string]int) (dto.CreateStockInRequest, error) {
	var req dto.CreateStockInRequest
	req.Code = cell(row, cols, targetCode)
	req.ProductCode = cell(row, cols, targetProduct)
	req.WarehouseCode = cell(row, cols, targetWarehouse)
	req.SupplierCode = cell(row, cols, targetSupplier)
	req.BillCode = cell(row, cols, targetBill)
	req.ContractCode = cell(row, cols, targetContract)

	if req.Code == "" {
		return req, fmt.Errorf("codigo vacío: %w", domain.ErrInvalidInput)
	}
	if req.ProductCode == "" {
		return req, fmt.Errorf("producto vacío: %w", domain.ErrInvalidInput)
	}

	qtyRaw := cell(row, cols, targetQuantity)
	qty, err := strconv.ParseInt(qtyRaw, 10, 64)
	if err != nil || qty <= 0 {
		return req, fmt.Errorf("cantidad inválida %q: %w", qtyRaw, domain.ErrInvalidInput)
	}
	req.Quantity = qty

	dateRaw := cell(row, cols, targetDate)
	date, err := parseDate(dateRaw)
	if err != nil {
		return req, err
	}
	req.Date = date
	return req, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q: %w", raw, domain.ErrInvalidInput)
}

func cell(row []string, cols map[string]int, target string) string {
	pos, ok := cols[target]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
