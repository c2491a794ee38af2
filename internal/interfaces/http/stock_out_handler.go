package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// StockOutHandler maneja las peticiones HTTP de salidas de mercancía.
type StockOutHandler struct {
	uc  *inventory.StockOutUseCase
	log *logger.Logger
}

// NewStockOutHandler construye el handler.
func NewStockOutHandler(uc *inventory.StockOutUseCase, log *logger.Logger) *StockOutHandler {
	return &StockOutHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar salida de mercancía
// @Description  Reparte la cantidad entre los registros del par (producto, bodega),
//               año más reciente primero. El desglose queda en la respuesta.
// @Tags         stock-out
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOutRequest  true  "code, product_code, quantity, date; bodega y referencias opcionales"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/stock-out [post]
func (h *StockOutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockOutRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, "salida registrada", out)
}

// GetByCode godoc
// @Summary      Obtener salida por código (incluye desglose)
// @Tags         stock-out
// @Produce      json
// @Param        code  path  string  true  "Código de la salida"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/stock-out/{code} [get]
func (h *StockOutHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return fail(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "salida")
	}
	return ok(c, "salida encontrada", out)
}

// List godoc
// @Summary      Listar salidas
// @Tags         stock-out
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (máx 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.Response
// @Router       /api/stock-out [get]
func (h *StockOutHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "salidas listadas", out)
}

// Update godoc
// @Summary      Actualizar salida (revierte y reasigna)
// @Tags         stock-out
// @Accept       json
// @Produce      json
// @Param        code  path  string                     true  "Código de la salida"
// @Param        body  body  dto.UpdateStockOutRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/stock-out/{code} [put]
func (h *StockOutHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockOutRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("code"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "salida actualizada", out)
}

// Delete godoc
// @Summary      Eliminar salida (restaura lo asignado)
// @Tags         stock-out
// @Produce      json
// @Param        code  path  string  true  "Código de la salida"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/stock-out/{code} [delete]
func (h *StockOutHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("code")); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "salida eliminada", nil)
}
