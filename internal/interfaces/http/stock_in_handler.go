package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/importer"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// StockInHandler maneja las peticiones HTTP de entradas de mercancía.
type StockInHandler struct {
	uc       *inventory.StockInUseCase
	importer *importer.StockInImporter
	log      *logger.Logger
}

// NewStockInHandler construye el handler.
func NewStockInHandler(uc *inventory.StockInUseCase, imp *importer.StockInImporter, log *logger.Logger) *StockInHandler {
	return &StockInHandler{uc: uc, importer: imp, log: log}
}

// Create godoc
// @Summary      Registrar entrada de mercancía
// @Tags         stock-in
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockInRequest  true  "code, product_code, quantity, date; bodega y referencias opcionales"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/stock-in [post]
func (h *StockInHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, "entrada registrada", out)
}

// GetByCode godoc
// @Summary      Obtener entrada por código
// @Tags         stock-in
// @Produce      json
// @Param        code  path  string  true  "Código de la entrada"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/stock-in/{code} [get]
func (h *StockInHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return fail(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "entrada")
	}
	return ok(c, "entrada encontrada", out)
}

// List godoc
// @Summary      Listar entradas
// @Tags         stock-in
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (máx 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.Response
// @Router       /api/stock-in [get]
func (h *StockInHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "entradas listadas", out)
}

// Update godoc
// @Summary      Actualizar entrada (patch parcial)
// @Tags         stock-in
// @Accept       json
// @Produce      json
// @Param        code  path  string                    true  "Código de la entrada"
// @Param        body  body  dto.UpdateStockInRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/stock-in/{code} [put]
func (h *StockInHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockInRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("code"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "entrada actualizada", out)
}

// Delete godoc
// @Summary      Eliminar entrada (revierte su efecto de inventario)
// @Tags         stock-in
// @Produce      json
// @Param        code  path  string  true  "Código de la entrada"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/stock-in/{code} [delete]
func (h *StockInHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("code")); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "entrada eliminada", nil)
}

// Import godoc
// @Summary      Importación masiva de entradas desde XLSX
// @Description  Procesa cada fila de forma independiente; devuelve el resumen
//               con las filas rechazadas y su motivo.
// @Tags         stock-in
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Libro XLSX con columnas Codigo, Producto, Cantidad, Fecha"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/stock-in/import [post]
func (h *StockInHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, h.log, invalidErr("archivo 'file' requerido"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, h.log, invalidErr("no se pudo abrir el archivo"))
	}
	defer file.Close()

	result, err := h.importer.Import(c.Context(), file)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "importación procesada", result)
}
